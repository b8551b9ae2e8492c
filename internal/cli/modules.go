package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/typespec/internal/artifact"
)

// NewModulesCommand creates the modules command.
func NewModulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List modules stored in the artifact database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := artifact.OpenStore(rootOpts.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			modules, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, module := range modules {
				fmt.Fprintln(cmd.OutOrStdout(), module)
			}
			return nil
		},
	}
}
