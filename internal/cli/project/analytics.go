package project

import (
	"fmt"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/analytics"
	"github.com/spf13/cobra"
)

// RiskCmd returns the project risk subcommand
func RiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk <project-id>",
		Short: "Rate a project against its earliest open deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := cli.ParseID("project", args[0])
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				out, err := c.App.AnalyticsService.GetProjectDeadlineRisk(cmd.Context(), projectID)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(out.RiskLevel)
					return nil
				}
				return f.Success(out, func() string { return renderDeadlineRisk(out) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// OverviewCmd returns the project overview subcommand
func OverviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview <project-id>",
		Short: "Break a project's tasks down by status, priority, risk and assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := cli.ParseID("project", args[0])
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				out, err := c.App.AnalyticsService.GetProjectOverview(cmd.Context(), projectID)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(out, func() string { return renderOverview(out) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func renderDeadlineRisk(r *analytics.ProjectDeadlineRisk) string {
	deadline := "none"
	if r.EarliestDeadline != nil {
		deadline = fmt.Sprintf("%s (%d days)", r.EarliestDeadline, *r.DaysRemaining)
	}
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("Project #%d", r.ProjectID)) + "  " + styles.LevelBadge(string(r.RiskLevel)),
		"",
		styles.Field("Completion", fmt.Sprintf("%s %d%% (%d/%d)",
			styles.Bar(float64(r.ProgressPercentage)/100, 20), r.ProgressPercentage, r.CompletedTasks, r.TotalTasks)),
		styles.Field("Earliest deadline", deadline),
		styles.Section("Open tasks by risk"),
	}
	return styles.RenderCard(append(lines, levelCounts(r.TaskRisk)...)...)
}

func renderOverview(o *analytics.ProjectOverview) string {
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("Project #%d overview", o.ProjectID)),
		styles.Field("Tasks", o.TotalTasks),
		styles.Section("By status"),
	}
	for _, s := range o.ByStatus {
		lines = append(lines, fmt.Sprintf("  %-16s %d", s.Status, s.Count))
	}
	lines = append(lines, styles.Section("By priority"))
	for _, p := range o.PriorityDistribution {
		lines = append(lines, fmt.Sprintf("  %-16s %d", p.Priority, p.Count))
	}
	lines = append(lines, styles.Section("Open tasks by risk"))
	lines = append(lines, levelCounts(o.RiskDistribution)...)

	if len(o.Bottlenecks) > 0 {
		lines = append(lines, styles.Section("Days since last update"))
		for _, b := range o.Bottlenecks {
			lines = append(lines, fmt.Sprintf("  %-16s %.1f", b.Status, b.AvgDays))
		}
	}
	if len(o.TeamProductivity) > 0 {
		lines = append(lines, styles.Section("Finished by assignee"))
		for _, a := range o.TeamProductivity {
			who := "unassigned"
			if a.AssigneeID != nil {
				who = fmt.Sprintf("user %d", *a.AssigneeID)
			}
			lines = append(lines, fmt.Sprintf("  %-16s %d", who, a.CompletedTasks))
		}
	}
	if len(o.CompletionTrend) > 0 {
		days := make([]string, len(o.CompletionTrend))
		for i, d := range o.CompletionTrend {
			days[i] = fmt.Sprintf("%s:%d", d.Date, d.Count)
		}
		lines = append(lines, styles.Section("Completed per day"), "  "+strings.Join(days, "  "))
	}
	return styles.RenderCard(lines...)
}

func levelCounts(m map[risk.Level]int) []string {
	lines := make([]string, 0, len(m))
	for _, l := range risk.Levels() {
		lines = append(lines, fmt.Sprintf("  %s %d", styles.LevelBadge(string(l)), m[l]))
	}
	return lines
}
