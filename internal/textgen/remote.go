package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultRemoteModel = "gemini-2.0-flash"
	defaultTemperature = 0.9
	defaultTimeout     = 60 * time.Second

	remoteSystemPrompt = "You are an assistant that returns a single short creative text fragment. " +
		"Produce one paragraph of imaginative text, roughly the requested length. " +
		"No lists or code, just plain text."
)

// RemoteConfig configures the remote requester. The credential is injected
// here by the caller; the requester never reads process-global state.
type RemoteConfig struct {
	APIKey      string
	Model       string
	BaseURL     string // override for testing against a local server
	Temperature float64
	Timeout     time.Duration
}

// RemoteGenerator issues a single best-effort request to the Gemini API for
// a paragraph of approximately the requested length.
//
// It is fail-soft by contract: a missing credential, a network error, an API
// error, or an empty completion all yield "no result" rather than an error.
// One attempt, no retries, no backoff.
type RemoteGenerator struct {
	cfg RemoteConfig
}

// NewRemoteGenerator creates a remote requester, filling config defaults.
func NewRemoteGenerator(cfg RemoteConfig) *RemoteGenerator {
	if cfg.Model == "" {
		cfg.Model = defaultRemoteModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &RemoteGenerator{cfg: cfg}
}

// Generate requests text of approximately opts.Length characters. The second
// return value reports whether a usable result was obtained; it is false,
// never an error, on any failure.
func (g *RemoteGenerator) Generate(ctx context.Context, opts Options) (string, bool) {
	if g.cfg.APIKey == "" {
		return "", false
	}

	target := clampLength(opts.Length)
	model := g.cfg.Model
	if opts.Model != "" {
		model = opts.Model
	}
	temperature := g.cfg.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", false
	}

	// Token budget derived from the character target.
	maxTokens := int32(float64(target)/3.5) + 20
	if maxTokens < minLength {
		maxTokens = minLength
	}

	prompt := fmt.Sprintf("Please write a random text of about %d characters.", target)
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(remoteSystemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(float32(temperature)),
			MaxOutputTokens:   maxTokens,
			CandidateCount:    1,
		})
	if err != nil {
		return "", false
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", false
	}
	return truncate(text, target), true
}
