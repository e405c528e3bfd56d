// Package cmd implements the markgen CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/markgen/config"
)

type ctxKey string

const envKey ctxKey = "env"

// env is the per-invocation state shared by subcommands.
type env struct {
	v   *viper.Viper
	log *log.Logger
}

// NewRootCmd constructs the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "markgen",
		Short: "Generate reStructuredText and Markdown documents",
		Long: `markgen assembles documents from titles, sections, text, lists, images,
links and tables, and renders them as reStructuredText or Markdown.

Documents are described in YAML/JSON files, or read from the structure of an
HTML page.

Usage:
  markgen render <source> [flags]
  markgen config [show|generate]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}

			var logOut io.Writer = io.Discard
			if verbose {
				logOut = cmd.ErrOrStderr()
			}
			e := &env{v: v, log: log.New(logOut, "markgen: ", 0)}
			if f := v.ConfigFileUsed(); f != "" {
				e.log.Printf("config: using %s", f)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), envKey, e))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getEnv(cmd *cobra.Command) *env {
	e, _ := cmd.Context().Value(envKey).(*env)
	if e == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "internal error: configuration not loaded")
		os.Exit(1)
	}
	return e
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
