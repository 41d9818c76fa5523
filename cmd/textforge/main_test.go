package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short text", preview("short text"))
}

func TestPreviewLongTextShortened(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := preview(long)

	assert.True(t, strings.HasSuffix(got, " ..."))
	assert.LessOrEqual(t, len(got), previewWidth)
}

func TestCommandWiring(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "hash")

	for _, flag := range []string{"file", "mode", "length", "model", "temperature", "log", "dedup", "utc"} {
		require.NotNil(t, rootCmd.Flags().Lookup(flag), "missing flag %q", flag)
	}
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
