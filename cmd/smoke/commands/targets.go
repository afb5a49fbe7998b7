package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/smoke/internal/ui/style"
)

func (c *CLI) newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the known target descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := c.app.Targets(c.options())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, style.Cell(style.Heading, "TARGET", 10)+
				style.Cell(style.Heading, "TRIPLE", 28)+
				style.Heading.Render("COMPILER"))
			for _, t := range targets {
				kind := style.Muted.Render(style.Circle + " native")
				if t.Cross {
					kind = style.Caution.Render(style.Dot + " cross")
				}
				line := style.Cell(style.Success, t.Name, 10) +
					style.Cell(style.Muted, t.Triple, 28) +
					strings.Join(t.Compiler, " ") + "  " + kind
				if len(t.Runner) > 0 {
					line += style.Muted.Render("  via " + strings.Join(t.Runner, " "))
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
