package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/pkg/backpack"
)

const modulePath = "github.com/mesh-intelligence/backpack"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the backpack version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "backpack v%s\nmodule: %s\n", backpack.Version, modulePath)
			return nil
		},
	}
}
