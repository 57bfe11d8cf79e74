package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/internal/journal"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and journal",
		Long:  "Write a default config.yaml if none exists and create the journal database in the data directory.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	written, err := writeConfigIfMissing(current.configDir, current.dataDir)
	if err != nil {
		return sysErrorf("init: %w", err)
	}

	j, err := journal.Open(current.dataDir)
	if err != nil {
		return sysErrorf("init: %w", err)
	}
	if err := j.Close(); err != nil {
		return sysErrorf("init: close journal: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Backpack initialized successfully")
	if written {
		fmt.Fprintln(out, "  config:", current.configDir, "(created)")
	} else {
		fmt.Fprintln(out, "  config:", current.configDir)
	}
	fmt.Fprintln(out, "  data:  ", current.dataDir)
	return nil
}
