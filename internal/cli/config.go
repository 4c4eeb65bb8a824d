package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/config"
	"github.com/boil-labs/boil/internal/output"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.boil/config.yaml.

Known keys:
  analytics          Count command usage locally (true/false, default true)
  update-check       Check GitHub for new releases (true/false, default true)
  default-framework  Framework used when --framework is omitted`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(app, cmd.OutOrStdout(), args[0], args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(app, cmd.OutOrStdout(), args[0])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigList(app, cmd.OutOrStdout())
	},
}

func runConfigSet(e *env, w io.Writer, key, value string) error {
	if !config.IsKnownKey(key) {
		output.Warn("unknown config key; storing it anyway", "key", key)
	}
	if err := e.settings.Set(key, value); err != nil {
		return fmt.Errorf("setting config key %q: %w", key, err)
	}
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

func runConfigGet(e *env, w io.Writer, key string) error {
	value, ok := e.settings.Get(key)
	if !ok {
		return fmt.Errorf("config key %q is not set", key)
	}
	fmt.Fprintln(w, value)
	return nil
}

func runConfigList(e *env, w io.Writer) error {
	keys := e.settings.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "No settings.")
		return nil
	}
	t := output.NewTable("KEY", "VALUE")
	for _, k := range keys {
		v, _ := e.settings.Get(k)
		t.Row(k, fmt.Sprint(v))
	}
	fmt.Fprintln(w, t.String())
	return nil
}
