package task

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/spf13/cobra"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks, highest priority first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	projectID, _ := cmd.Flags().GetInt("project")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	tasks, err := cliInstance.App.TaskService.ListTasksByProject(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].PriorityScore > tasks[j].PriorityScore
	})

	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Println(t.ID)
		}
		return nil
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return formatter.Success(tasks, func() string { return renderList(tasks) })
}

func renderList(tasks []*models.Task) string {
	if len(tasks) == 0 {
		return styles.SubtitleStyle.Render("No tasks")
	}
	var b strings.Builder
	for _, t := range tasks {
		due := "          "
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		fmt.Fprintf(&b, "%5d  %s  %5.2f  %s  %s\n",
			t.ID, due, t.PriorityScore, styles.LevelBadge(t.Priority), t.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
