package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

const prompt = "backpack> "

func newShellCmd() *cobra.Command {
	var noPrompt bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive backpack session",
		Long: `Shell reads one command per line and runs it against a fresh, empty
backpack. Type "help" for the command list and "exit" to leave. The
backpack is discarded when the shell ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, noPrompt)
		},
	}
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "do not print the banner or prompt")
	return cmd
}

func runShell(cmd *cobra.Command, noPrompt bool) error {
	out := cmd.OutOrStdout()
	s, err := openSession(current, "shell", out)
	if err != nil {
		return err
	}
	defer s.close()

	if !noPrompt {
		fmt.Fprintf(out, "Backpack shell (%d slots). Type \"help\" for commands, \"exit\" to quit.\n", types.Capacity)
	}

	lines := newLineReader(cmd.InOrStdin())
	for {
		if !noPrompt {
			fmt.Fprint(out, prompt)
		}
		line, ok, err := lines.next()
		if err != nil {
			return sysErrorf("read input: %w", err)
		}
		if !ok {
			if !noPrompt {
				fmt.Fprintln(out)
			}
			break
		}
		if isExit(line) {
			break
		}
		if err := s.exec(line); err != nil {
			if exitCode(err) == exitSysError {
				return err
			}
			fmt.Fprintln(out, "error:", err)
		}
	}
	return s.close()
}
