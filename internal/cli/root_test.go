package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boardcheck/internal/cli/testutil"
)

const malformedBoard = `name: malformed
footprints:
  - reference: R1
    graphics:
      - {shape: segment, layer: F.CrtYd, start: [0, 0], end: [1, 0]}
      - {shape: segment, layer: F.CrtYd, start: [1, 0], end: [1, 1]}
`

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = ExecuteArgs(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "boardcheck", cmd.Use)

	for _, flag := range []string{"config", "verbose", "output", "state", "lang"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"check", "watch", "providers", "history", "version", "completion"})
}

func TestExecute_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	overlap := testutil.WriteBoard(t, dir, "overlap.yaml", testutil.OverlapBoard)
	clean := testutil.WriteBoard(t, dir, "clean.yaml", testutil.CleanBoard)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "clean board", args: []string{"check", clean}, want: ExitOK},
		{name: "violations", args: []string{"check", overlap}, want: ExitViolations},
		{name: "missing board", args: []string{"check", filepath.Join(dir, "nope.yaml")}, want: ExitError},
		{name: "bad output flag", args: []string{"-o", "html", "check", clean}, want: ExitError},
		{name: "unknown command", args: []string{"frobnicate"}, want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, tt.want, code, stderr)
			if tt.want == ExitError {
				assert.Contains(t, stderr, "Error:")
			}
		})
	}
}

func TestExecute_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteBoard(t, dir, "boardcheck.yaml", "output: json\nstate_path: runs.db\n")
	board := testutil.WriteBoard(t, dir, "board.yaml", testutil.OverlapBoard)

	code, stdout, _ := run(t, "check", board, "--save")
	assert.Equal(t, ExitViolations, code)
	assert.Contains(t, stdout, `"run_id"`)
	assert.FileExists(t, filepath.Join(dir, "runs.db"))
}

func TestExecute_Language(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	board := testutil.WriteBoard(t, dir, "board.yaml", malformedBoard)

	code, stdout, _ := run(t, "--lang", "de", "-o", "markdown", "check", board)
	require.Equal(t, ExitViolations, code)
	assert.Contains(t, stdout, "Footprint hat eine fehlerhafte Sperrfläche (keine geschlossene Form)")
}

func TestExecute_VerboseLogs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	board := testutil.WriteBoard(t, dir, "board.yaml", testutil.CleanBoard)

	code, _, stderr := run(t, "-v", "check", board)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, "drc run complete")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := run(t, "version")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "boardcheck v"+Version)
}
