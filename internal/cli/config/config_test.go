package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "boardcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	flags.String("state", "", "")
	flags.String("lang", "", "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	res, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, res.FileUsed)

	cfg := res.Config
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, int64(5_000), cfg.DRC.MaxError)
	assert.Equal(t, int64(20_000), cfg.DRC.ChainingEpsilon)
	assert.False(t, cfg.Verbose)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
output: json
language: de
state_path: history.db
watch:
  debounce: 1s
drc:
  max_violations: 50
  parallelism: 2
  error_limits:
    courtyards_overlap: 3
  severities:
    missing_courtyard: ignore
  disabled_providers: [other]
`)

	res, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, res.FileUsed)

	cfg := res.Config
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.StatePath)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, 50, cfg.DRC.MaxViolations)
	assert.Equal(t, map[string]int{"courtyards_overlap": 3}, cfg.DRC.ErrorLimits)
	assert.Equal(t, map[string]drc.Severity{"missing_courtyard": drc.SeverityIgnore}, cfg.DRC.Severities)
	assert.Equal(t, []string{"other"}, cfg.DRC.DisabledProviders)

	ec := cfg.EngineConfig(nil)
	assert.Equal(t, map[drc.ErrorCode]int{drc.CodeOverlappingFootprints: 3}, ec.ErrorLimits)
	assert.Equal(t, map[drc.ErrorCode]drc.Severity{drc.CodeMissingCourtyard: drc.SeverityIgnore}, ec.Severities)
	assert.Equal(t, 2, ec.Parallelism)
	assert.Equal(t, "de", ec.Language)
}

func TestLoad_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "output: markdown\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	res, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, path, res.FileUsed)
	assert.Equal(t, "markdown", res.Config.OutputFormat)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), res.Config.StatePath)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: markdown\ndrc:\n  max_violations: 10\n")

	t.Setenv("BOARDCHECK_OUTPUT", "json")
	t.Setenv("BOARDCHECK_DRC_MAX_VIOLATIONS", "20")
	t.Setenv("BOARDCHECK_DRC_DISABLED_PROVIDERS", "a,b")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--output", "text", "--state", "x.db", "--lang", "de"}))

	res, err := Load(path, flags)
	require.NoError(t, err)

	cfg := res.Config
	assert.Equal(t, "text", cfg.OutputFormat, "flag beats env")
	assert.Equal(t, 20, cfg.DRC.MaxViolations, "env beats file")
	assert.Equal(t, []string{"a", "b"}, cfg.DRC.DisabledProviders)
	assert.Equal(t, "x.db", cfg.StatePath, "flag paths stay as given")
	assert.Equal(t, "de", cfg.Language)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad output",
			content: "output: html\n",
			wantErr: "OutputFormat",
		},
		{
			name:    "negative limit",
			content: "drc:\n  max_violations: -1\n",
			wantErr: "MaxViolations",
		},
		{
			name:    "zero max error",
			content: "drc:\n  max_error: 0\n",
			wantErr: "MaxError",
		},
		{
			name:    "unknown code",
			content: "drc:\n  error_limits:\n    shorts: 1\n",
			wantErr: `unknown error code "shorts"`,
		},
		{
			name:    "bad severity",
			content: "drc:\n  severities:\n    missing_courtyard: fatal\n",
			wantErr: "unable to decode config",
		},
		{
			name:    "bad language",
			content: "language: \"not a tag!\"\n",
			wantErr: "Language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "drc.max_violations", envKey("BOARDCHECK_DRC_MAX_VIOLATIONS"))
	assert.Equal(t, "watch.debounce", envKey("BOARDCHECK_WATCH_DEBOUNCE"))
	assert.Equal(t, "state_path", envKey("BOARDCHECK_STATE_PATH"))
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{OutputFormat: "json"}
	assert.Same(t, cfg, FromContext(WithConfig(ctx, cfg)))
}
