// Package fileio provides the file-level collaborators of the textforge
// pipeline: a small text writer and a streaming SHA-256 hasher.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Mode selects how Writer.Write treats an existing target file.
type Mode string

const (
	// ModeAppend adds the text as a new line at the end of the file.
	ModeAppend Mode = "append"
	// ModeReplace overwrites the file with the text.
	ModeReplace Mode = "replace"
)

// ErrInvalidMode is returned for any mode other than append or replace.
var ErrInvalidMode = errors.New("mode must be either 'append' or 'replace'")

// Writer persists generated text to a target path. Every write appends a
// trailing newline so the file stays line-oriented.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes text to path, creating the file and any missing parent
// directories. Mode append adds a line, mode replace overwrites the file.
func (w *Writer) Write(path string, mode Mode, text string) error {
	if mode != ModeAppend && mode != ModeReplace {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directories for %s: %w", path, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if mode == ModeAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}
	return nil
}
