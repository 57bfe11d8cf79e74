package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// renderer writes command results in the configured output mode.
type renderer struct {
	out  io.Writer
	mode string
}

// render encodes v as JSON or YAML, or calls text for the text mode.
func (r renderer) render(v any, text func(w io.Writer)) error {
	switch r.mode {
	case types.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return sysErrorf("marshal output: %w", err)
		}
		fmt.Fprintln(r.out, string(data))
	case types.OutputYAML:
		enc := yaml.NewEncoder(r.out)
		defer enc.Close()
		if err := enc.Encode(v); err != nil {
			return sysErrorf("encode output: %w", err)
		}
	default:
		text(r.out)
	}
	return nil
}

// printTable writes rows through a tabwriter, trimming the padding that
// tabwriter leaves at the end of each line.
func printTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for line := range strings.SplitSeq(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func printListing(w io.Writer, l types.Listing) {
	fmt.Fprintf(w, "Backpack %d/%d - %s\n", l.Count, l.Capacity, l.State)
	if len(l.Items) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	rows := make([][]string, len(l.Items))
	for i, it := range l.Items {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			it.Name,
			it.Type,
			fmt.Sprint(it.Quantity),
			fmt.Sprint(it.Priority),
		}
	}
	printTable(w, []string{"ID", "NAME", "TYPE", "QTY", "PRIORITY"}, rows)
}

func printFound(w io.Writer, how string, f types.Found) {
	fmt.Fprintf(w, "Found %q (%s search)\n", f.Item.Name, how)
	fmt.Fprintf(w, "  type:     %s\n", f.Item.Type)
	fmt.Fprintf(w, "  quantity: %d\n", f.Item.Quantity)
	fmt.Fprintf(w, "  priority: %d\n", f.Item.Priority)
}

func printSorted(w io.Writer, s types.Sorted) {
	if s.Trivial {
		fmt.Fprintf(w, "Nothing to sort (0 or 1 item). Backpack marked %s.\n", s.Criterion.State())
		return
	}
	fmt.Fprintf(w, "Sorted by %s: %d comparisons.\n", s.Criterion, s.Comparisons)
}
