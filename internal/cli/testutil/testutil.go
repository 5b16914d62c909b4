// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/boardcheck/internal/cli/output"
)

// OverlapBoard has two overlapping front courtyards and one clean back
// footprint.
const OverlapBoard = `name: overlap
footprints:
  - reference: U1
    position: [5, 5]
    graphics:
      - {shape: rect, layer: F.CrtYd, start: [0, 0], end: [10, 10]}
  - reference: U2
    position: [10, 10]
    graphics:
      - {shape: rect, layer: F.CrtYd, start: [5, 5], end: [15, 15]}
  - reference: J1
    side: back
    position: [40, 40]
    graphics:
      - {shape: circle, layer: B.CrtYd, center: [40, 40], radius: 3}
`

// CleanBoard has two separated footprints.
const CleanBoard = `name: clean
footprints:
  - reference: R1
    graphics:
      - {shape: rect, layer: F.CrtYd, start: [0, 0], end: [2, 1]}
  - reference: R2
    graphics:
      - {shape: rect, layer: F.CrtYd, start: [5, 0], end: [7, 1]}
`

// MissingBoard has a footprint without a courtyard, a warning by default.
const MissingBoard = `name: missing
footprints:
  - reference: TP1
    graphics:
      - {shape: circle, layer: F.Fab, center: [0, 0], radius: 1}
`

// WriteBoard writes a board file into dir and returns its path.
func WriteBoard(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// SetupTestBoard creates a temporary directory holding board.yaml.
// It returns the directory and the board path.
func SetupTestBoard(t *testing.T, content string) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	return dir, WriteBoard(t, dir, "board.yaml", content)
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// StripANSI removes ANSI escape codes.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
