package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

func newRunCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a file of backpack commands",
		Long: `Run executes each line of a command file against a fresh backpack, using
the same commands as the shell. Use "-" to read from standard input.
Rejected commands are reported and skipped unless --strict is set.

Example:
  backpack run loadout.txt
  backpack run --strict --json loadout.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first rejected command")
	return cmd
}

func runScript(cmd *cobra.Command, path string, strict bool) error {
	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
		source = path
	}

	out := cmd.OutOrStdout()
	s, err := openSession(current, source, out)
	if err != nil {
		return err
	}
	defer s.close()

	echo := current.cfg.Output == types.OutputText
	lines := newLineReader(in)
	for n := 1; ; n++ {
		line, ok, err := lines.next()
		if err != nil {
			return sysErrorf("read script: %w", err)
		}
		if !ok || isExit(line) {
			break
		}
		if echo && !isBlankOrComment(line) {
			fmt.Fprintf(out, "%s%s\n", prompt, line)
		}
		if err := s.exec(line); err != nil {
			if exitCode(err) == exitSysError {
				return err
			}
			if strict {
				return fmt.Errorf("line %d: %w", n, err)
			}
			fmt.Fprintf(out, "error: line %d: %v\n", n, err)
		}
	}
	return s.close()
}
