package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/internal/journal"
	"github.com/mesh-intelligence/backpack/pkg/types"
)

// sessionLast selects the most recent session.
const sessionLast = "last"

type historyOptions struct {
	session string
	export  string
	from    string
}

func newHistoryCmd() *cobra.Command {
	var opts historyOptions
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled sessions and their commands",
		Long: `History lists past sessions recorded in the journal. With --session it
shows that session's commands; "last" selects the most recent one.
--export writes the selected session as JSONL, and --from prints a
previously exported file without opening the journal.

Example:
  backpack history
  backpack history --session last
  backpack history --session last --export session.jsonl
  backpack history --from session.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.session, "session", "", `session ID to show, or "last"`)
	cmd.Flags().StringVar(&opts.export, "export", "", "write the session to this JSONL file")
	cmd.Flags().StringVar(&opts.from, "from", "", "read entries from an exported JSONL file")
	return cmd
}

func runHistory(cmd *cobra.Command, opts historyOptions) error {
	r := renderer{out: cmd.OutOrStdout(), mode: current.cfg.Output}

	if opts.from != "" {
		entries, err := journal.ReadExport(opts.from)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		return r.render(entries, func(w io.Writer) { printEntries(w, entries) })
	}
	if opts.export != "" && opts.session == "" {
		return errors.New("history: --export requires --session")
	}

	j, err := journal.Open(current.dataDir)
	if err != nil {
		return sysErrorf("history: %w", err)
	}
	defer j.Close()

	sessions, err := j.Sessions()
	if err != nil {
		return sysErrorf("history: %w", err)
	}
	if opts.session == "" {
		return r.render(sessions, func(w io.Writer) { printSessions(w, sessions) })
	}

	id := opts.session
	if id == sessionLast {
		if len(sessions) == 0 {
			return fmt.Errorf("history: %w: journal has no sessions", types.ErrSessionNotFound)
		}
		id = sessions[len(sessions)-1].SessionID
	}

	if opts.export != "" {
		n, err := j.ExportJSONL(opts.export, id)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, opts.export)
		return nil
	}

	entries, err := j.Entries(id)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return r.render(entries, func(w io.Writer) { printEntries(w, entries) })
}

func printSessions(w io.Writer, sessions []types.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return
	}
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		rows[i] = []string{s.SessionID, s.Source, s.StartedAt.Local().Format(time.DateTime), fmt.Sprint(s.Commands)}
	}
	printTable(w, []string{"SESSION", "SOURCE", "STARTED", "COMMANDS"}, rows)
	fmt.Fprintf(w, "Total: %d session(s)\n", len(sessions))
}

func printEntries(w io.Writer, entries []types.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No commands recorded.")
		return
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		line := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
		rows[i] = []string{fmt.Sprint(e.Seq), line, e.Outcome, e.Error}
	}
	printTable(w, []string{"SEQ", "COMMAND", "OUTCOME", "ERROR"}, rows)
}
