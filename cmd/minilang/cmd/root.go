package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hassan/minilang/internal/config"
)

var (
	cfgFile string
	noColor bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "minilang",
	Short: "minilang - front-end for the minilang language",
	Long: `minilang analyzes programs written in the minilang language:
it parses them, resolves every name against nested scopes, and checks
all types with int -> long -> double widening.

Commands:
  check   - parse and type-check source files
  tokens  - dump the token stream of a source file`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if noColor {
			cfg.Color = false
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./minilang.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}
