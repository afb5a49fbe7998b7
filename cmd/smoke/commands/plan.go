package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/smoke/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <target>",
		Short: "Print the commands a run would execute, without running them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			release, _ := cmd.Flags().GetBool("release")

			opts := c.options()
			opts.Release = release

			steps, ws, err := c.app.Plan(args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, s := range steps {
				_, _ = fmt.Fprintf(out, "%s %s\n", style.Heading.Render(fmt.Sprintf("%d.", i+1)), s.Phase.Step())
				_, _ = fmt.Fprintf(out, "   %s\n", s.Describe(ws))
				if s.Invocation.Dir != "" {
					_, _ = fmt.Fprintf(out, "   %s\n", style.Muted.Render("in "+s.Invocation.Dir))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("release", "r", false, "Plan a release-profile build")
	return cmd
}
