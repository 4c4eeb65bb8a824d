package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/userdata"
)

var historyClear bool

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Forget all recorded generations")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyClear {
			return runHistoryClear(app, cmd.OutOrStdout())
		}
		return runHistory(app, cmd.OutOrStdout())
	},
}

func runHistoryClear(e *env, w io.Writer) error {
	if err := e.resetStore(userdata.HistoryNamespace); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Fprintln(w, output.FormatCheckmark("History cleared"))
	return nil
}

func runHistory(e *env, w io.Writer) error {
	history, err := e.historyStore()
	if err != nil {
		return err
	}
	entries, err := history.All()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No generations recorded yet.")
		return nil
	}

	t := output.NewTable("#", "TYPE", "NAME", "FRAMEWORK", "CREATED", "PATH")
	for i, entry := range entries {
		t.Row(strconv.Itoa(i+1), string(entry.Type), entry.Name, orDash(entry.Framework),
			entry.CreatedAt().Format("2006-01-02 15:04"), entry.Path)
	}
	fmt.Fprintln(w, t.String())
	return nil
}
