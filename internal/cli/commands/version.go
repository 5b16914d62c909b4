package commands

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo is what the Go toolchain embedded in the binary.
type buildInfo struct {
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display boardcheck version and the Go toolchain and VCS revision it was built from.`,
		Run: func(cmd *cobra.Command, _ []string) {
			writeVersion(cmd.OutOrStdout(), version, readBuildInfo(debug.ReadBuildInfo))
		},
	}
}

func readBuildInfo(read func() (*debug.BuildInfo, bool)) buildInfo {
	bi, ok := read()
	if !ok {
		return buildInfo{}
	}
	info := buildInfo{GoVersion: bi.GoVersion}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func writeVersion(w io.Writer, version string, info buildInfo) {
	_, _ = fmt.Fprintf(w, "boardcheck v%s\n", version)
	_, _ = fmt.Fprintln(w, "Courtyard design rule checker for PCB layouts")
	if info.GoVersion != "" {
		_, _ = fmt.Fprintf(w, "  go:     %s\n", info.GoVersion)
	}
	if info.Revision != "" {
		rev := info.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if info.Modified {
			rev += " (modified)"
		}
		_, _ = fmt.Fprintf(w, "  commit: %s\n", rev)
	}
	if info.Time != "" {
		_, _ = fmt.Fprintf(w, "  built:  %s\n", info.Time)
	}
}
