// Copyright © 2025 The Whisker authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ws")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckFileClean(t *testing.T) {
	path := writeScript(t, ":: Start\n    Hello.\n")
	rep, err := checkFile(path)
	require.NoError(t, err)
	assert.False(t, rep.HasErrors())
}

func TestCheckFileWithErrors(t *testing.T) {
	path := writeScript(t, "invalid\n:: Valid\n")
	rep, err := checkFile(path)
	require.NoError(t, err, "parse errors are diagnostics, not command failures")
	assert.True(t, rep.HasErrors())
}

func TestCheckFileMissing(t *testing.T) {
	_, err := checkFile(filepath.Join(t.TempDir(), "absent.ws"))
	assert.Error(t, err)
}

func TestCheckFileUnknownFormat(t *testing.T) {
	path := writeScript(t, ":: Start\n")
	orig := checkFormat
	checkFormat = "xml"
	defer func() { checkFormat = orig }()

	_, err := checkFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestCheckFileJSONFormat(t *testing.T) {
	path := writeScript(t, ":: Start\n")
	orig := checkFormat
	checkFormat = "json"
	defer func() { checkFormat = orig }()

	rep, err := checkFile(path)
	require.NoError(t, err)
	assert.False(t, rep.HasErrors())
}
