package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cslgen/internal/cli"
	"github.com/specialistvlad/cslgen/internal/translate"
	"github.com/stretchr/testify/require"
)

const singleParameter = `
search_space "single" {
  parameter "x" {
    type = int
    range {
      min = 0
      max = 3
    }
  }
  constraint "small" {
    expr = x < 3
  }
  specification {
    expr = small
  }
}
`

func TestRun_TranslatesToOutputFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	input := filepath.Join(dir, "single.csl")
	output := filepath.Join(dir, "single.py")
	require.NoError(t, os.WriteFile(input, []byte(singleParameter), 0600))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-csl", input, "-out", output})

	// --- Assert ---
	require.NoError(t, err)
	written, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, string(written), out.String(), "the rendered text is echoed to stdout")
	require.Contains(t, out.String(), "return [0, 1, 2, 3]")
	require.Contains(t, errOut.String(), "Translation written.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error writer")
	require.Empty(t, out.String())
}

func TestRun_MissingInputExitsWithUsage(t *testing.T) {
	t.Parallel()

	errOut := &bytes.Buffer{}
	err := run(&bytes.Buffer{}, errOut, nil)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, errOut.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "broken.csl")
	output := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(input, []byte("search_space \"s\" {\n  parameter \"x\" {\n"), 0600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-csl", input, "-out", output})

	var parseErr *translate.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, input, parseErr.File)
	require.NoFileExists(t, output)
}
