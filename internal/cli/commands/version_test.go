package commands

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"boardcheck v0.1.0", "Courtyard design rule checker"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"boardcheck vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestReadBuildInfo(t *testing.T) {
	t.Run("vcs settings", func(t *testing.T) {
		info := readBuildInfo(func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				GoVersion: "go1.24.11",
				Settings: []debug.BuildSetting{
					{Key: "vcs", Value: "git"},
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		})
		assert.Equal(t, buildInfo{
			GoVersion: "go1.24.11",
			Revision:  "0123456789abcdef0123",
			Time:      "2026-10-01T12:00:00Z",
			Modified:  true,
		}, info)

		buf := new(bytes.Buffer)
		writeVersion(buf, "1.2.3", info)
		assert.Contains(t, buf.String(), "boardcheck v1.2.3")
		assert.Contains(t, buf.String(), "go:     go1.24.11")
		assert.Contains(t, buf.String(), "commit: 0123456789ab (modified)")
		assert.Contains(t, buf.String(), "built:  2026-10-01T12:00:00Z")
	})

	t.Run("unavailable", func(t *testing.T) {
		info := readBuildInfo(func() (*debug.BuildInfo, bool) { return nil, false })
		assert.Equal(t, buildInfo{}, info)

		buf := new(bytes.Buffer)
		writeVersion(buf, "dev", info)
		assert.NotContains(t, buf.String(), "commit:")
		assert.NotContains(t, buf.String(), "go:")
	})
}
