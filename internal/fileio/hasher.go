package fileio

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the read buffer size used when no explicit chunk size
// is given. 128 KiB keeps memory bounded on arbitrarily large files.
const DefaultChunkSize = 128 * 1024

var (
	// ErrNotFound is returned when the path does not exist or is not a
	// regular file.
	ErrNotFound = errors.New("path does not exist or is not a regular file")
	// ErrInvalidChunkSize is returned for a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be a positive integer")
)

// Hasher computes streaming SHA-256 digests of files.
type Hasher struct {
	chunkSize int
}

// NewHasher creates a Hasher with the default chunk size.
func NewHasher() *Hasher {
	return &Hasher{chunkSize: DefaultChunkSize}
}

// Sum returns the SHA-256 hex digest of the file at path. A chunkSize of 0
// selects the default; negative values are rejected. The file is read in
// chunks, never loaded whole.
func (h *Hasher) Sum(path string, chunkSize int) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	size := chunkSize
	if size == 0 {
		size = h.chunkSize
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	digest := sha256.New()
	buf := make([]byte, size)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
