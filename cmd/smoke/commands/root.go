// Package commands implements the CLI commands for the smoke harness.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/smoke/internal/app"
	"go.trai.ch/smoke/internal/build"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/engine/harness"
)

// CLI represents the command line interface for smoke.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	exitCode int

	configPath    string
	workspaceRoot string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targetNames []string, opts app.RunOptions) (int, error)
	Plan(targetName string, opts app.RunOptions) ([]harness.Step, string, error)
	Targets(opts app.RunOptions) ([]domain.Target, error)
	History(opts app.RunOptions) ([]domain.RunRecord, string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "smoke",
		Short:         "Build a native library, generate its C header and run a C consumer against it",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "smoke.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&c.workspaceRoot, "workspace-root", "", "Directory for per-run workspaces (default: system temp dir)")

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newTargetsCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode returns the status the process should exit with after Execute.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options() app.RunOptions {
	return app.RunOptions{
		ConfigPath:    c.configPath,
		WorkspaceRoot: c.workspaceRoot,
	}
}
