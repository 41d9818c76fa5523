package logbook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Path:      filepath.Join(t.TempDir(), "logbook.jsonl"),
		EnsureDir: true,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestCreateRecordDerivesStableID(t *testing.T) {
	book := New(tempOptions(t))

	first, err := book.CreateRecord("identical text", "")
	require.NoError(t, err)
	second, err := book.CreateRecord("identical text", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (text, encoding) must derive the same id")
	assert.Regexp(t, `^[0-9a-f]{64}$`, first.ID)

	other, err := book.CreateRecord("different text", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestCreateRecordFields(t *testing.T) {
	opts := tempOptions(t)
	opts.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 30, 0, 0, time.FixedZone("EET", 2*3600))
	}
	book := New(opts)

	record, err := book.CreateRecord("héllo wörld", "abc123")
	require.NoError(t, err)

	assert.Equal(t, 11, record.Length, "length counts characters, not bytes")
	assert.Equal(t, "utf-8", record.Encoding)
	require.NotNil(t, record.Hash)
	assert.Equal(t, "abc123", *record.Hash)
	assert.Equal(t, "2026-08-29T10:30:00+02:00", record.Timestamp)
}

func TestCreateRecordUTCTimestamp(t *testing.T) {
	opts := tempOptions(t)
	opts.TimeMode = TimeUTC
	opts.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 30, 0, 500, time.FixedZone("EET", 2*3600))
	}
	book := New(opts)

	record, err := book.CreateRecord("text", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29T08:30:00Z", record.Timestamp)
}

func TestCreateRecordNilHashWhenAbsent(t *testing.T) {
	book := New(tempOptions(t))

	record, err := book.CreateRecord("text", "")
	require.NoError(t, err)
	assert.Nil(t, record.Hash)

	line, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(line), `"hash":null`)
}

func TestCreateRecordUnknownEncoding(t *testing.T) {
	opts := tempOptions(t)
	opts.Encoding = "klingon-8"
	book := New(opts)

	_, err := book.CreateRecord("text", "")
	require.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestCreateRecordUnrepresentableText(t *testing.T) {
	opts := tempOptions(t)
	opts.Encoding = "iso-8859-1"
	book := New(opts)

	// Latin-1 can represent accented latin but not Greek.
	_, err := book.CreateRecord("caffè", "")
	require.NoError(t, err)

	_, err = book.CreateRecord("λambda", "")
	require.ErrorIs(t, err, ErrEncoding)
}

func TestAppendWritesOneParseableLine(t *testing.T) {
	opts := tempOptions(t)
	book := New(opts)

	record, err := book.Append("some generated text", "deadbeef")
	require.NoError(t, err)

	lines := readLines(t, opts.Path)
	require.Len(t, lines, 1)

	var parsed Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parsed))
	if diff := cmp.Diff(record, parsed); diff != "" {
		t.Errorf("written record differs from returned record (-want +got):\n%s", diff)
	}
}

func TestAppendDedupSkipsMatchingHash(t *testing.T) {
	opts := tempOptions(t)
	opts.DedupByHash = true
	book := New(opts)

	_, err := book.Append("first", "samehash")
	require.NoError(t, err)
	record, err := book.Append("second", "samehash")
	require.NoError(t, err)

	// The record is still built and returned, just not written.
	assert.Equal(t, "second", record.Text)
	require.Len(t, readLines(t, opts.Path), 1)
}

func TestAppendDedupDisabledWritesDuplicates(t *testing.T) {
	opts := tempOptions(t)
	book := New(opts)

	_, err := book.Append("first", "samehash")
	require.NoError(t, err)
	_, err = book.Append("second", "samehash")
	require.NoError(t, err)

	require.Len(t, readLines(t, opts.Path), 2)
}

func TestAppendDedupSkipsCorruptLines(t *testing.T) {
	opts := tempOptions(t)
	opts.DedupByHash = true
	book := New(opts)

	_, err := book.Append("first", "hash-a")
	require.NoError(t, err)

	// Simulate a partial write between two valid records.
	file, err := os.OpenFile(opts.Path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = file.WriteString("{not valid json\n\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = book.Append("second", "hash-b")
	require.NoError(t, err)
	_, err = book.Append("third", "hash-a")
	require.NoError(t, err)

	// first + corrupt + blank + second; third deduplicated against first.
	require.Len(t, readLines(t, opts.Path), 4)
}

func TestAppendDedupAcceptsLegacyHexField(t *testing.T) {
	opts := tempOptions(t)
	opts.DedupByHash = true
	book := New(opts)

	legacy := `{"id":"x","hex":"oldhash","text":"old","length":3,"encoding":"utf-8","timestamp":"2020-01-01T00:00:00Z"}` + "\n"
	require.NoError(t, os.WriteFile(opts.Path, []byte(legacy), 0644))

	_, err := book.Append("new text", "oldhash")
	require.NoError(t, err)

	require.Len(t, readLines(t, opts.Path), 1, "legacy hex match must suppress the write")
}

func TestAppendDedupMissingFileMeansNoDuplicates(t *testing.T) {
	opts := tempOptions(t)
	opts.DedupByHash = true
	book := New(opts)

	_, err := book.Append("text", "somehash")
	require.NoError(t, err)
	require.Len(t, readLines(t, opts.Path), 1)
}

func TestAppendCreatesParentDirectory(t *testing.T) {
	opts := Options{
		Path:      filepath.Join(t.TempDir(), "deep", "nested", "logbook.jsonl"),
		EnsureDir: true,
	}

	_, err := New(opts).Append("text", "")
	require.NoError(t, err)
	require.Len(t, readLines(t, opts.Path), 1)
}

func TestAppendWithoutEnsureDirFailsOnMissingParent(t *testing.T) {
	opts := Options{
		Path: filepath.Join(t.TempDir(), "missing", "logbook.jsonl"),
	}

	_, err := New(opts).Append("text", "")
	require.Error(t, err)
}
