package priority

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/scoring"
	priorityservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/priority"
	"github.com/spf13/cobra"
)

// PriorityCmd returns the priority parent command
func PriorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "Recompute and explain priority scores",
	}

	cmd.AddCommand(RecomputeCmd())
	cmd.AddCommand(ProjectCmd())
	cmd.AddCommand(InsightsCmd())

	return cmd
}

// RecomputeCmd returns the priority recompute subcommand
func RecomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute <task-id>",
		Short: "Rescore one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, args[0], "task", func(s priorityservice.Service, f *cli.OutputFormatter, id int) error {
				change, err := s.RecomputePriority(cmd.Context(), id)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(change.TaskID)
					return nil
				}
				return f.Success(change, func() string { return renderChange(*change) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// ProjectCmd returns the priority project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <project-id>",
		Short: "Rescore every task of a project",
		Long:  "Rescore every task of a project. A task that fails is reported and the rest continue.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, args[0], "project", func(s priorityservice.Service, f *cli.OutputFormatter, id int) error {
				res, err := s.RecomputeProjectPriorities(cmd.Context(), id)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(res.Updated)
					return nil
				}
				return f.Success(res, func() string { return renderProject(res) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// InsightsCmd returns the priority insights subcommand
func InsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <task-id>",
		Short: "Show how a task's priority score is made up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, args[0], "task", func(s priorityservice.Service, f *cli.OutputFormatter, id int) error {
				insights, err := s.GetPriorityInsights(cmd.Context(), id)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Printf("%.2f\n", insights.Total)
					return nil
				}
				return f.Success(insights, func() string { return renderInsights(insights) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func withService(cmd *cobra.Command, rawID, what string, fn func(priorityservice.Service, *cli.OutputFormatter, int) error) error {
	formatter := cli.FormatterFor(cmd)
	id, err := cli.ParseID(what, rawID)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	return fn(cliInstance.App.PriorityService, formatter, id)
}

func renderChange(c priorityservice.Change) string {
	arrow := fmt.Sprintf("%.2f -> %.2f", c.OldScore, c.NewScore)
	if !c.Changed {
		return styles.SubtitleStyle.Render(fmt.Sprintf("#%d %s unchanged (%.2f, %s)", c.TaskID, c.Title, c.NewScore, c.NewPriority))
	}
	return fmt.Sprintf("#%d %s  %s  %s -> %s", c.TaskID, c.Title, arrow,
		styles.LevelBadge(c.OldPriority), styles.LevelBadge(c.NewPriority))
}

func renderProject(res *priorityservice.ProjectRecompute) string {
	var b strings.Builder
	for _, c := range res.Results {
		if c.Error != "" {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("#%d failed: %s", c.TaskID, c.Error)))
		} else {
			b.WriteString(renderChange(c))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.Success(fmt.Sprintf("%d updated, %d unchanged, %d failed", res.Updated, res.Unchanged, res.Failed)))
	return b.String()
}

func renderInsights(in *priorityservice.Insights) string {
	row := func(name string, c scoring.Component) string {
		return fmt.Sprintf("%-11s %s %.2f x %.2f = %.3f", name, styles.Bar(c.Value/10, 20), c.Value, c.Weight, c.Weighted)
	}
	return styles.RenderCard(
		styles.TitleStyle.Render(fmt.Sprintf("#%d %s", in.TaskID, in.Title))+"  "+styles.LevelBadge(in.Label),
		"",
		row("urgency", in.Urgency),
		row("effort", in.Effort),
		row("dependency", in.Dependency),
		row("impact", in.Impact),
		"",
		styles.Field("Total", fmt.Sprintf("%.2f", in.Total)),
		styles.Field("Stored", fmt.Sprintf("%.2f (%s)", in.StoredScore, in.StoredPriority)),
		styles.Field("Blocks / blocked by", fmt.Sprintf("%d / %d", in.BlockingTasks, in.BlockedByTasks)),
	)
}
