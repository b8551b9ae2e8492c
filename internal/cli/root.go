// Package cli implements the typespec inspection tool: documentation
// and introspection commands over stored compiled-module artifacts.
package cli

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/typespec/internal/config"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	Database string
	Verbose  bool
}

// NewRootCommand creates the typespec root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "typespec",
		Short: "Inspect typespec metadata of compiled modules",
		Long: `Inspect the typespec metadata stored in compiled-module artifacts.

Artifacts are read from a SQLite artifact database produced by the
compiler. Types, specs and callbacks are reconstructed back into their
surface syntax for display.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDatabase(), "path to the artifact database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(NewModulesCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	return cmd
}

// defaultDatabase resolves the artifact database path: the environment
// override wins over the built-in default. The --db flag beats both.
func defaultDatabase() string {
	if path := os.Getenv(config.DatabaseEnvVar); path != "" {
		return path
	}
	return config.DefaultDatabase
}

// useColor reports whether output to f should be colorized.
func useColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
