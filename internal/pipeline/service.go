// Package pipeline composes text generation, file writing, content hashing,
// and event logging into the single run the CLI exposes.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"textforge/internal/fileio"
	"textforge/internal/logbook"
	"textforge/internal/textgen"
)

// emptyPlaceholder replaces a generation result that is blank after
// trimming, so the written file and the logged record are never empty.
const emptyPlaceholder = "(empty-generation)"

// TextGenerator is the pipeline's seam to text generation. The production
// implementation is textgen.Generator; its contract is that the result is
// never empty.
type TextGenerator interface {
	Generate(ctx context.Context, opts textgen.Options) string
}

// Request describes one pipeline run.
type Request struct {
	// FilePath is the target file for the generated text.
	FilePath string
	// Mode is append or replace; empty defaults to append.
	Mode fileio.Mode
	// Length is the target character count; 0 selects the default.
	Length int
	// Model and Temperature override the remote generator's defaults.
	Model       string
	Temperature *float64
	// Logbook configures event recording. A nil value or empty path
	// disables it.
	Logbook *logbook.Options
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Text is the exact text written to the file, without the trailing
	// newline the writer adds.
	Text string
	// FileHash is the SHA-256 hex digest of the written file.
	FileHash string
	// Record is the logbook record, nil when logging was disabled.
	Record *logbook.Record
}

// Service runs the generate, write, hash, log pipeline.
type Service struct {
	generator TextGenerator
	writer    *fileio.Writer
	hasher    *fileio.Hasher
	logger    *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(generator TextGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		writer:    fileio.NewWriter(),
		hasher:    fileio.NewHasher(),
		logger:    logger,
	}
}

// Run generates text, writes it to the target file, hashes the file, and
// appends a logbook record. Remote generation failures never surface here;
// writer, hasher, and logbook errors propagate wrapped.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.String("file", req.FilePath))

	text := s.generator.Generate(ctx, textgen.Options{
		Length:      req.Length,
		Model:       req.Model,
		Temperature: req.Temperature,
	})
	text = strings.TrimSpace(text)
	if text == "" {
		text = emptyPlaceholder
	}
	log.Debug("text generated", zap.Int("chars", utf8.RuneCountInString(text)))

	mode := req.Mode
	if mode == "" {
		mode = fileio.ModeAppend
	}
	if err := s.writer.Write(req.FilePath, mode, text); err != nil {
		return Result{}, fmt.Errorf("writing generated text: %w", err)
	}

	hash, err := s.hasher.Sum(req.FilePath, 0)
	if err != nil {
		return Result{}, fmt.Errorf("hashing %s: %w", req.FilePath, err)
	}
	log.Debug("file hashed", zap.String("sha256", hash))

	result := Result{Text: text, FileHash: hash}
	if req.Logbook != nil && req.Logbook.Path != "" {
		record, err := logbook.New(*req.Logbook).Append(text, hash)
		if err != nil {
			return Result{}, fmt.Errorf("recording generation event: %w", err)
		}
		result.Record = &record
		log.Debug("event recorded", zap.String("record_id", record.ID))
	}

	log.Info("generation complete",
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.String("sha256", hash))
	return result, nil
}

// HashFile computes the SHA-256 hex digest of an arbitrary file. A chunkSize
// of 0 selects the hasher's default.
func (s *Service) HashFile(path string, chunkSize int) (string, error) {
	return s.hasher.Sum(path, chunkSize)
}
