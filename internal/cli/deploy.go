package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/deploy"
	"github.com/boil-labs/boil/internal/output"
)

var (
	deployBranch string
	deployDir    string
)

func init() {
	deployCmd.Flags().StringVarP(&deployBranch, "branch", "b", deploy.DefaultBranch, "Branch to publish to")
	deployCmd.Flags().StringVar(&deployDir, "dir", ".", "Project directory")
	rootCmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Publish the project to GitHub Pages",
	Long: `Commit any pending changes and publish the project directory to a
GitHub Pages branch with the gh-pages package (run through npx).
A git repository is initialized first when the directory is not one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(cmd.Context(), app, cmd.OutOrStdout(), deployDir, deployBranch)
	},
}

var stepMessages = map[deploy.Step]string{
	deploy.StepInitRepo:    "Initializing git repository",
	deploy.StepCommit:      "Committing changes",
	deploy.StepNothingToDo: "Working tree clean",
	deploy.StepPublish:     "Publishing",
}

func runDeploy(ctx context.Context, e *env, w io.Writer, dir, branch string) error {
	d := deploy.New(e.runner)
	d.OnStep = func(s deploy.Step) {
		output.Debug("deploy step", "step", string(s))
		if msg, ok := stepMessages[s]; ok {
			fmt.Fprintln(w, output.StyleDim.Render(msg+"..."))
		}
	}

	report, err := d.Deploy(ctx, deploy.Options{Dir: e.abs(dir), Branch: branch})
	if err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Deployed to branch %s", output.StyleNoun.Render(report.Branch))))
	return nil
}
