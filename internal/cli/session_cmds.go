package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

func (s *session) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <type> <quantity> <priority>",
		Short: "Add an item (quantity > 0, priority 1-5)",
		Long: `Add stores an item in the first free slot. Quote names or types that
contain spaces. Priority 5 is the most urgent.

Example:
  add Rifle Weapon 2 5
  add "First Aid" Heal 1 4`,
		Args: cobra.ExactArgs(4),
		// Negative numbers must reach validation rather than be read as flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.inv.Len() >= types.Capacity {
				return types.ErrFull
			}
			quantity, err := strconv.Atoi(strings.TrimSpace(args[2]))
			if err != nil {
				return fmt.Errorf("%w: %q", types.ErrInvalidQuantity, args[2])
			}
			priority, err := strconv.Atoi(strings.TrimSpace(args[3]))
			if err != nil {
				return fmt.Errorf("%w: %q", types.ErrInvalidPriority, args[3])
			}

			added, err := s.inv.Add(args[0], args[1], quantity, priority)
			if err != nil {
				return err
			}
			return s.render.render(added, func(w io.Writer) {
				fmt.Fprintf(w, "Added %q (%s x%d, priority %d).\n",
					added.Item.Name, added.Item.Type, added.Item.Quantity, added.Item.Priority)
			})
		},
	}
}

func (s *session) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an item by exact name",
		Args:    cobra.MinimumNArgs(1),
		// Names are free text; a leading '-' is part of the name.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := joinName(args)
			removed, err := s.inv.Remove(name)
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return notFound(name)
				}
				return err
			}
			return s.render.render(removed, func(w io.Writer) {
				fmt.Fprintf(w, "Removed %q.\n", removed.Name)
			})
		},
	}
}

func (s *session) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items in slot order with the sort state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := s.inv.List()
			return s.render.render(l, func(w io.Writer) {
				printListing(w, l)
			})
		},
	}
}

func (s *session) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <name|type|priority>",
		Short: "Sort by name, type (then name) or priority (5 first, then name)",
		Long: `Sort packs the items into the first slots ordered by the criterion and
reports how many comparisons the insertion sort made. Criteria may also
be given by number: 1 name, 2 type, 3 priority.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := types.ParseCriterion(args[0])
			if err != nil {
				return err
			}
			sorted, err := s.inv.Sort(c)
			if err != nil {
				return err
			}
			return s.render.render(sorted, func(w io.Writer) {
				printSorted(w, sorted)
			})
		},
	}
}

func (s *session) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "find <name>",
		Aliases: []string{"search"},
		Short:   "Find an item by sequential search",
		Args:    cobra.MinimumNArgs(1),
		// The query is free text, like the name it matches.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := joinName(args)
			found, err := s.inv.SearchSequential(name)
			if err != nil {
				return notFound(name)
			}
			return s.render.render(found, func(w io.Writer) {
				printFound(w, "sequential", found)
			})
		},
	}
}

func (s *session) bfindCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "bfind <name>",
		Aliases: []string{"bsearch"},
		Short:   "Find an item by binary search (requires sort name)",
		Args:    cobra.MinimumNArgs(1),
		// The query is free text, like the name it matches.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := joinName(args)
			found, err := s.inv.SearchBinary(name)
			switch {
			case errors.Is(err, types.ErrPreconditionViolated):
				return fmt.Errorf("%w; run \"sort name\" first", err)
			case err != nil:
				return notFound(name)
			}
			return s.render.render(found, func(w io.Writer) {
				printFound(w, "binary", found)
			})
		},
	}
}
