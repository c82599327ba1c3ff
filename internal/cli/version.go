package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerbox/pkg/buildinfo"
)

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Version)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version only")

	return cmd
}
