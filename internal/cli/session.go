package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/internal/journal"
	"github.com/mesh-intelligence/backpack/internal/logging"
	"github.com/mesh-intelligence/backpack/pkg/backpack"
	"github.com/mesh-intelligence/backpack/pkg/types"
)

// session owns one inventory for the lifetime of a shell or script run
// and executes command lines against it. Each session starts empty.
type session struct {
	inv     types.Inventory
	render  renderer
	logger  *slog.Logger
	journal *journal.Journal
	id      string
}

// openSession creates an empty inventory and, when journaling is enabled,
// registers the session in the journal under source.
func openSession(e env, source string, out io.Writer) (*session, error) {
	s := &session{
		inv:    backpack.New(),
		render: renderer{out: out, mode: e.cfg.Output},
		logger: e.logger,
	}
	if s.logger == nil {
		s.logger = logging.NewDiscard()
	}

	if e.cfg.Journal {
		j, err := journal.Open(e.dataDir)
		if err != nil {
			return nil, sysErrorf("open journal: %w", err)
		}
		id, err := j.Begin(source)
		if err != nil {
			j.Close()
			return nil, sysErrorf("begin session: %w", err)
		}
		s.journal = j
		s.id = id
		s.logger = s.logger.With("session", id)
	}

	s.logger.Debug("session started", "source", source, "journal", e.cfg.Journal)
	return s, nil
}

// exec runs one command line. Blank lines and lines starting with '#' are
// ignored. Rejected commands return the inventory error; a journal
// failure returns a sysError.
func (s *session) exec(line string) error {
	if isBlankOrComment(line) {
		return nil
	}

	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	root := s.commandTree()
	root.SetArgs(args)
	root.SetOut(s.render.out)
	root.SetErr(s.render.out)
	_, runErr := root.ExecuteC()

	name := strings.ToLower(args[0])
	if runErr != nil {
		s.logger.Info("command rejected", "command", name, "error", runErr)
	} else {
		s.logger.Debug("command ok", "command", name, "items", s.inv.Len(), "state", s.inv.State().String())
	}

	if err := s.record(name, args[1:], runErr); err != nil {
		return err
	}
	return runErr
}

// record journals a command outcome when a journal is attached.
func (s *session) record(command string, args []string, runErr error) error {
	if s.journal == nil {
		return nil
	}
	entry := types.JournalEntry{
		SessionID: s.id,
		Command:   command,
		Args:      args,
		Outcome:   types.OutcomeOK,
	}
	if runErr != nil {
		entry.Outcome = types.OutcomeRejected
		entry.Error = runErr.Error()
	}
	if _, err := s.journal.Record(entry); err != nil {
		return sysErrorf("journal: %w", err)
	}
	return nil
}

// close releases the journal. Idempotent.
func (s *session) close() error {
	if s.journal == nil {
		return nil
	}
	s.logger.Debug("session closed")
	return s.journal.Close()
}

func isBlankOrComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// isExit reports whether line ends an interactive session.
func isExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "0":
		return true
	}
	return false
}

// commandTree builds a fresh cobra tree bound to this session so flag and
// argument state never leaks between lines.
func (s *session) commandTree() *cobra.Command {
	root := &cobra.Command{
		Use:           "backpack>",
		Short:         "Backpack session commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		s.addCmd(),
		s.removeCmd(),
		s.listCmd(),
		s.sortCmd(),
		s.findCmd(),
		s.bfindCmd(),
	)
	return root
}

// joinName rebuilds a name given as several unquoted words.
func joinName(args []string) string {
	return strings.Join(args, " ")
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", types.ErrNotFound, types.NormalizeName(name))
}
