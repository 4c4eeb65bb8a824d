package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/undo"
	"github.com/boil-labs/boil/internal/userdata"
)

var undoYes bool

func init() {
	undoCmd.Flags().BoolVarP(&undoYes, "yes", "y", false, "Undo without asking")
	rootCmd.AddCommand(undoCmd)
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recently generated project, page or component",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUndo(app, cmd.OutOrStdout(), undoYes)
	},
}

func runUndo(e *env, w io.Writer, yes bool) error {
	history, err := e.historyStore()
	if err != nil {
		return err
	}
	entry, ok, err := undo.Peek(history)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Nothing to undo.")
		return nil
	}

	fmt.Fprintln(w, "Last generation:")
	printEntry(w, entry)
	fmt.Fprintln(w)

	confirmed, err := e.confirm(fmt.Sprintf("Delete %s?", entry.Path), yes, "pass --yes to undo")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(w, "Undo cancelled.")
		return nil
	}

	res, err := undo.Run(history, e.fs)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case undo.Stale:
		fmt.Fprintf(w, "%s no longer exists; removed it from history.\n", res.Entry.Path)
	case undo.Deleted:
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Removed %s %s", res.Entry.Type, output.StyleNoun.Render(res.Entry.Path))))
	case undo.NoHistory:
		fmt.Fprintln(w, "Nothing to undo.")
	}
	return nil
}

func printEntry(w io.Writer, entry userdata.HistoryEntry) {
	fmt.Fprintln(w, output.FormatField("Type", string(entry.Type)))
	fmt.Fprintln(w, output.FormatField("Name", entry.Name))
	fmt.Fprintln(w, output.FormatField("Path", entry.Path))
	if entry.Framework != "" {
		fmt.Fprintln(w, output.FormatField("Framework", entry.Framework))
	}
	fmt.Fprintln(w, output.FormatField("Created", entry.CreatedAt().Format("2006-01-02 15:04:05")))
}
