package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/scaffold"
	"github.com/boil-labs/boil/internal/userdata"
)

// Default output directories.
const (
	defaultPageDir      = "."
	defaultComponentDir = "./components"
)

var (
	pageFramework      string
	pageOutput         string
	componentFramework string
	componentOutput    string
)

func init() {
	generatePageCmd.Flags().StringVarP(&pageFramework, "framework", "f", "", "CSS framework (default: the default-framework setting)")
	generatePageCmd.Flags().StringVarP(&pageOutput, "output", "o", defaultPageDir, "Output directory")
	generateComponentCmd.Flags().StringVarP(&componentFramework, "framework", "f", "", "CSS framework (default: the default-framework setting)")
	generateComponentCmd.Flags().StringVarP(&componentOutput, "output", "o", defaultComponentDir, "Output directory")
	rootCmd.AddCommand(generatePageCmd)
	rootCmd.AddCommand(generateComponentCmd)
}

var generatePageCmd = &cobra.Command{
	Use:   "generate:page <type>",
	Short: "Generate a standalone page",
	Long: `Generate a standalone HTML page written to <output>/<type>.html.
An existing file of the same name is overwritten.

Page types: about, contact, landing, pricing, portfolio, login, register, dashboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneratePage(app, cmd.OutOrStdout(), args[0], pageFramework, pageOutput)
	},
}

var generateComponentCmd = &cobra.Command{
	Use:   "generate:component <type>",
	Short: "Generate a reusable component snippet",
	Long: `Generate an HTML component snippet written to <output>/<type>.html.
An existing file of the same name is overwritten.

Component types: navbar, hero, card, footer, sidebar, modal, form`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerateComponent(app, cmd.OutOrStdout(), args[0], componentFramework, componentOutput)
	},
}

func runGeneratePage(e *env, w io.Writer, pageType, framework, outDir string) error {
	pt, err := catalog.ParsePageType(pageType)
	if err != nil {
		return err
	}
	fw, err := e.framework(framework)
	if err != nil {
		return err
	}

	path := filepath.Join(e.abs(outDir), string(pt)+".html")
	if _, err := generator(e).Page(pt, fw, path); err != nil {
		return err
	}

	e.record(userdata.HistoryEntry{Type: userdata.EntryPage, Path: path, Framework: string(fw), Name: string(pt)})
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Generated %s page (%s) at %s",
		output.StyleNoun.Render(string(pt)), fw.DisplayName(), path)))
	return nil
}

func runGenerateComponent(e *env, w io.Writer, componentType, framework, outDir string) error {
	ct, err := catalog.ParseComponentType(componentType)
	if err != nil {
		return err
	}
	fw, err := e.framework(framework)
	if err != nil {
		return err
	}

	path := filepath.Join(e.abs(outDir), string(ct)+".html")
	if _, err := generator(e).Component(ct, fw, path); err != nil {
		return err
	}

	e.record(userdata.HistoryEntry{Type: userdata.EntryComponent, Path: path, Framework: string(fw), Name: string(ct)})
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Generated %s component (%s) at %s",
		output.StyleNoun.Render(string(ct)), fw.DisplayName(), path)))
	return nil
}

func generator(e *env) *scaffold.Generator {
	return scaffold.NewGenerator(e.fs, e.runner, scaffold.NewRenderer(e.now().Year()))
}
