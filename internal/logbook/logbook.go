// Package logbook persists generation events as an append-only,
// line-delimited JSON log with optional deduplication by file hash.
//
// The log file is opened, appended to, and closed within the scope of a
// single Append call. Concurrent multi-process writers are not supported:
// no file locking is performed, so concurrent appenders risk interleaved
// lines.
package logbook

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// TimeMode selects the timezone used for record timestamps.
type TimeMode string

const (
	TimeLocal TimeMode = "local"
	TimeUTC   TimeMode = "utc"
)

var (
	// ErrUnknownEncoding is returned when the configured encoding name is
	// not a recognized character encoding.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrEncoding is returned when text cannot be represented in the
	// configured encoding.
	ErrEncoding = errors.New("text cannot be encoded")
)

// Options configures a Logbook. It is owned by the caller; the Logbook keeps
// no state beyond the file itself.
type Options struct {
	// Path is the destination log file.
	Path string
	// Encoding names the character encoding used to derive record IDs and
	// to write log lines. Defaults to utf-8.
	Encoding string
	// EnsureDir creates the parent directory of Path before appending.
	EnsureDir bool
	// DedupByHash skips the write when a previously written record carries
	// the same file hash.
	DedupByHash bool
	// TimeMode selects local or UTC timestamps. Defaults to local.
	TimeMode TimeMode

	now func() time.Time // test clock override
}

// Logbook appends generation records to a JSONL file, one self-contained
// JSON object per line.
type Logbook struct {
	opts Options
}

// New creates a Logbook for the given options.
func New(opts Options) *Logbook {
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}
	if opts.TimeMode == "" {
		opts.TimeMode = TimeLocal
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	return &Logbook{opts: opts}
}

// CreateRecord builds a record for text without writing it. The record ID is
// the SHA-256 hex digest of text encoded under the configured encoding, and
// Length is the character count of text. fileHash, when non-empty, is carried
// through as the record's hash field.
func (l *Logbook) CreateRecord(text, fileHash string) (Record, error) {
	encoded, err := l.encode(text)
	if err != nil {
		return Record{}, err
	}

	var hashField *string
	if fileHash != "" {
		hashField = &fileHash
	}

	sum := sha256.Sum256(encoded)
	return Record{
		ID:        hex.EncodeToString(sum[:]),
		Hash:      hashField,
		Text:      text,
		Length:    utf8.RuneCountInString(text),
		Encoding:  l.opts.Encoding,
		Timestamp: l.timestamp(),
	}, nil
}

// Append builds a record for text and appends it to the log file as a single
// JSON line. With DedupByHash enabled, a fileHash already present in the log
// makes Append return the freshly built record without writing anything.
func (l *Logbook) Append(text, fileHash string) (Record, error) {
	record, err := l.CreateRecord(text, fileHash)
	if err != nil {
		return Record{}, err
	}

	if l.opts.EnsureDir {
		dir := filepath.Dir(l.opts.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Record{}, fmt.Errorf("failed to create parent directory %s: %w", dir, err)
		}
	}

	if l.opts.DedupByHash {
		exists, err := l.hashExists(fileHash)
		if err != nil {
			return Record{}, err
		}
		if exists {
			return record, nil
		}
	}

	line, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("failed to serialize record: %w", err)
	}
	encodedLine, err := l.encode(string(line) + "\n")
	if err != nil {
		return Record{}, err
	}

	file, err := os.OpenFile(l.opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return Record{}, fmt.Errorf("failed to open logbook %s: %w", l.opts.Path, err)
	}
	defer file.Close()

	if _, err := file.Write(encodedLine); err != nil {
		return Record{}, fmt.Errorf("failed to append to logbook %s: %w", l.opts.Path, err)
	}
	return record, nil
}

// hashExists scans the existing log line by line for a record carrying the
// given file digest. Blank and unparseable lines are skipped; a missing log
// file means no duplicates.
func (l *Logbook) hashExists(digest string) (bool, error) {
	if digest == "" {
		return false, nil
	}

	file, err := os.Open(l.opts.Path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open logbook %s for scanning: %w", l.opts.Path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec scanRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if rec.digest() == digest {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to scan logbook %s: %w", l.opts.Path, err)
	}
	return false, nil
}

// encode converts text to bytes under the configured encoding.
func (l *Logbook) encode(text string) ([]byte, error) {
	enc, err := ianaindex.IANA.Encoding(l.opts.Encoding)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, l.opts.Encoding)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: not representable in %q: %v", ErrEncoding, l.opts.Encoding, err)
	}
	return out, nil
}

// timestamp returns an ISO-8601 timestamp with seconds precision, either in
// the local timezone with offset or in UTC with a Z suffix.
func (l *Logbook) timestamp() string {
	now := l.opts.now()
	if l.opts.TimeMode == TimeUTC {
		return now.UTC().Format("2006-01-02T15:04:05Z")
	}
	return now.Format("2006-01-02T15:04:05-07:00")
}
