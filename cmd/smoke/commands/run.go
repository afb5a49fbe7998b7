package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Smoke test the given targets, e.g. linux or windows",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			release, _ := cmd.Flags().GetBool("release")

			opts := c.options()
			opts.Release = release

			code, err := c.app.Run(cmd.Context(), args, opts)
			c.exitCode = code
			return err
		},
	}
	cmd.Flags().BoolP("release", "r", false, "Build the library with the release profile")
	return cmd
}
