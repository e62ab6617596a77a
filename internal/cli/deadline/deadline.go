package deadline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
	deadlineservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/deadline"
	"github.com/spf13/cobra"
)

// DeadlineCmd returns the deadline parent command
func DeadlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Assess deadline risk",
	}

	cmd.AddCommand(SweepCmd())
	cmd.AddCommand(InsightsCmd())

	return cmd
}

// SweepCmd returns the deadline sweep subcommand
func SweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one deadline sweep now",
		Long: `Assess every open task with a due date and write throttled deadline
warnings. The sweep runs in one transaction: on failure nothing is written.`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	summary := cliInstance.App.DeadlineService.RunDeadlineSweep(ctx)
	if summary.Error != "" {
		return formatter.Fail(errors.New("deadline sweep failed: " + summary.Error))
	}
	if formatter.Quiet {
		fmt.Println(summary.NotificationsCreated)
		return nil
	}
	return formatter.Success(summary, func() string { return renderSummary(summary) })
}

// InsightsCmd returns the deadline insights subcommand
func InsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <task-id>",
		Short: "Show a task's deadline risk and recommended actions",
		Args:  cobra.ExactArgs(1),
		RunE:  runInsights,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	taskID, err := cli.ParseID("task", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	insights, err := cliInstance.App.DeadlineService.GetTaskDeadlineInsights(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}
	if formatter.Quiet {
		fmt.Println(insights.Level)
		return nil
	}
	return formatter.Success(insights, func() string { return renderInsights(insights) })
}

func renderSummary(s deadlineservice.SweepSummary) string {
	lines := []string{
		styles.Success(fmt.Sprintf("Sweep finished in %s", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))),
		styles.Field("Tasks analyzed", s.TotalTasksAnalyzed),
		styles.Field("Overdue", s.OverdueTasks),
		styles.Field("Notifications created", s.NotificationsCreated),
	}
	for _, l := range risk.Levels() {
		lines = append(lines, fmt.Sprintf("  %s %d", styles.LevelBadge(string(l)), s.RiskBreakdown[l]))
	}
	return strings.Join(lines, "\n")
}

func renderInsights(in *deadlineservice.Insights) string {
	due := "none"
	if in.DueDate != nil {
		due = in.DueDate.String()
	}
	remaining := "n/a"
	if in.DaysRemaining != nil {
		remaining = fmt.Sprintf("%d", *in.DaysRemaining)
	}
	status := "none"
	if in.CurrentStatus != nil {
		status = *in.CurrentStatus
	}

	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("#%d %s", in.TaskID, in.Title)) + "  " + styles.LevelBadge(string(in.Level)),
		"",
		styles.Field("Due", due),
		styles.Field("Days remaining", remaining),
		styles.Field("Status", status),
		styles.Field("Risk score", fmt.Sprintf("%.2f", in.Score)),
		styles.Field("Progress", fmt.Sprintf("%s %.0f%% (expected %.0f%%)",
			styles.Bar(in.Progress, 20), in.Progress*100, in.ExpectedProgress*100)),
	}
	if len(in.Recommendations) > 0 {
		var md strings.Builder
		for _, r := range in.Recommendations {
			md.WriteString("- " + r + "\n")
		}
		lines = append(lines, styles.Section("Recommendations"), cli.RenderMarkdown(md.String(), styles.CardWidth-6))
	}
	return styles.RenderCard(lines...)
}
