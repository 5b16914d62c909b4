package commands

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boardcheck/internal/cli/output"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
	"github.com/leapstack-labs/boardcheck/pkg/drc/providers"
)

// NewProvidersCommand creates the providers command.
func NewProvidersCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List available test providers",
		Long: `List the registered design rule test providers, the constraints they
evaluate and whether the configuration enables them.`,
		Example: `  # List providers
  boardcheck providers

  # As JSON
  boardcheck providers -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd, format)
			infos, err := providerInfos(providers.NewRegistry(), cc.Cfg.DRC.DisabledProviders)
			if err != nil {
				return err
			}
			return cc.Renderer.RenderProviders(infos)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func providerInfos(reg *drc.Registry, disabled []string) ([]output.ProviderInfo, error) {
	names := reg.Names()
	infos := make([]output.ProviderInfo, 0, len(names))
	for _, name := range names {
		p, err := reg.New(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, output.ProviderInfo{
			Name:        p.Name(),
			Description: p.Description(),
			Constraints: p.MatchingConstraints(),
			Enabled:     !slices.Contains(disabled, name),
		})
	}
	return infos, nil
}
