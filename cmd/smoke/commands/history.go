package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/ui/style"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show previous runs recorded in the run journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, path, err := c.app.History(c.options())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path == "" {
				_, _ = fmt.Fprintln(out, style.Muted.Render("Run journal is disabled. Set 'journal:' in smoke.yaml to record runs."))
				return nil
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, style.Muted.Render("No runs recorded in "+path))
				return nil
			}

			for _, rec := range records {
				icon := style.Success.Render(style.Check)
				switch {
				case !rec.Succeeded():
					icon = style.Failure.Render(style.Cross)
				case rec.ExitCode != 0:
					icon = style.Caution.Render(style.Warning)
				}

				phase := string(rec.Phase)
				if rec.FailedAt != "" {
					phase += " at " + string(rec.FailedAt)
				}

				_, _ = fmt.Fprintf(out, "%s %s%s%s%s %s\n",
					icon,
					style.Cell(style.Muted, rec.StartedAt.Local().Format(time.DateTime), 21),
					style.Cell(style.Heading, rec.Target, 10),
					style.Cell(style.Muted, "exit "+strconv.Itoa(rec.ExitCode), 10),
					phase,
					style.Muted.Render(rec.Duration().Round(time.Millisecond).String()+"  "+rec.Workspace),
				)
				if line := stepLine(rec); line != "" {
					_, _ = fmt.Fprintln(out, "  "+line)
				}
			}
			return nil
		},
	}
}

// stepLine renders the recorded step timings of a run, marking the step that failed.
func stepLine(rec domain.RunRecord) string {
	parts := make([]string, 0, len(rec.Steps))
	for _, span := range rec.Steps {
		part := strings.TrimPrefix(span.Name, rec.Target+"/") + " " + span.Duration().Round(time.Millisecond).String()
		if span.Error != "" {
			part = style.Failure.Render(style.Cross + " " + part)
		} else {
			part = style.Muted.Render(part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, style.Muted.Render(", "))
}
