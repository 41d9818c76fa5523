// Package textgen generates short pieces of text. A best-effort remote
// requester is tried first; a local cryptographically-random synthesizer is
// the guaranteed fallback, so generation as a whole never fails.
package textgen

import (
	"context"
	"strings"
)

// Options carries per-call generation overrides. The zero value selects all
// defaults.
type Options struct {
	// Length is the target character count; 0 selects the default.
	Length int
	// Model overrides the remote model identifier.
	Model string
	// Temperature overrides the remote sampling temperature.
	Temperature *float64
}

// remoteSource is the orchestrator's seam to the remote service.
type remoteSource interface {
	Generate(ctx context.Context, opts Options) (string, bool)
}

// Generator composes the remote requester and the local synthesizer into a
// pure two-step fallback chain. The local synthesizer's success is an
// invariant the chain relies on; there is no third step.
type Generator struct {
	remote remoteSource
	local  *LocalSynthesizer
}

// NewGenerator creates a Generator. remote may be nil to run purely local.
func NewGenerator(remote *RemoteGenerator) *Generator {
	g := &Generator{local: NewLocalSynthesizer()}
	if remote != nil {
		g.remote = remote
	}
	return g
}

// Generate returns text of at most the requested length. Remote failures are
// absorbed here and only ever manifest as local synthesis; the result is
// never empty.
func (g *Generator) Generate(ctx context.Context, opts Options) string {
	if g.remote != nil {
		if text, ok := g.remote.Generate(ctx, opts); ok && strings.TrimSpace(text) != "" {
			return truncate(strings.TrimSpace(text), clampLength(opts.Length))
		}
	}
	return g.local.Generate(opts.Length)
}

// clampLength applies the default and the floor to a requested length.
func clampLength(n int) int {
	if n <= 0 {
		return DefaultLength
	}
	if n < minLength {
		return minLength
	}
	return n
}

// truncate cuts text to at most n characters. Strictly positional: it may
// cut mid-word, matching the writer-facing contract.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
