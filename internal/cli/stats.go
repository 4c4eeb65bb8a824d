package cli

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/userdata"
)

var statsReset bool

func init() {
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "Clear all usage statistics")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local usage statistics",
	Long:  `Show how often each command and framework was used. Statistics never leave this machine.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsReset {
			return runStatsReset(app, cmd.OutOrStdout())
		}
		return runStats(app, cmd.OutOrStdout())
	},
}

func runStats(e *env, w io.Writer) error {
	if !e.settings.AnalyticsEnabled() {
		fmt.Fprintln(w, output.StyleWarning.Render(fmt.Sprintf(
			"Analytics are disabled. Enable them with '%s config set analytics true'.", branding.CLIName())))
	}

	analytics, err := e.analyticsStore()
	if err != nil {
		return err
	}
	st, err := analytics.Stats()
	if err != nil {
		return err
	}

	p := newPrinter()
	fmt.Fprintln(w, output.StyleSummary.Render("Usage statistics"))
	fmt.Fprintln(w, output.FormatField("Total generations", p.Sprintf("%d", st.TotalGenerations)))
	lastUsed := "never"
	if st.LastUsed > 0 {
		lastUsed = time.UnixMilli(st.LastUsed).Format("2006-01-02 15:04")
	}
	fmt.Fprintln(w, output.FormatField("Last used", lastUsed))

	if len(st.CommandUsage) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, countTable(p, "COMMAND", st.CommandUsage))
	}
	if len(st.FrameworkUsage) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, countTable(p, "FRAMEWORK", st.FrameworkUsage))
	}
	return nil
}

func runStatsReset(e *env, w io.Writer) error {
	if err := e.resetStore(userdata.AnalyticsNamespace); err != nil {
		return fmt.Errorf("clearing statistics: %w", err)
	}
	fmt.Fprintln(w, output.FormatCheckmark("Statistics cleared"))
	return nil
}

// newPrinter formats counts with thousands separators.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// countTable lists counts in descending order, ties broken by name.
func countTable(p *message.Printer, label string, counts map[string]int) string {
	names := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	t := output.NewTable(label, "USES")
	for _, n := range names {
		t.Row(n, p.Sprintf("%d", counts[n]))
	}
	return t.String()
}
