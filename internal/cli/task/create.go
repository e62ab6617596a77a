package task

import (
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	taskservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/task"
	"github.com/spf13/cobra"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task. Its priority score is computed immediately and every
task it blocks or is blocked by is rescored.

Examples:
  # Simple task (human-readable output)
  synergy task create --title="Fix bug" --project=1

  # Quiet mode for bash capture
  TASK_ID=$(synergy task create --title="Fix bug" --project=1 --quiet)

  # Full example with all options
  synergy task create \
    --title="Add authentication" \
    --description="Implement JWT auth" \
    --project=1 \
    --due=2024-07-01 \
    --effort=4 --impact=5 \
    --blocked-by=3,4 --blocks=9 \
    --assignee=2
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Int("project", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().Int("status", 0, "Status ID (defaults to the project's default status)")
	cmd.Flags().Int("effort", 0, "Effort 1-5 (default 3)")
	cmd.Flags().Int("impact", 0, "Impact 1-5 (default 3)")
	cmd.Flags().String("blocks", "", "Comma separated IDs of tasks this task blocks")
	cmd.Flags().String("blocked-by", "", "Comma separated IDs of tasks blocking this task")
	cmd.Flags().Int("assignee", 0, "Assigned user ID")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	flags := cmd.Flags()

	title, _ := flags.GetString("title")
	projectID, _ := flags.GetInt("project")
	rawDescription, _ := flags.GetString("description")
	effort, _ := flags.GetInt("effort")
	impact, _ := flags.GetInt("impact")

	req := taskservice.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       title,
		EffortScore: effort,
		ImpactScore: impact,
	}

	description, err := cli.ReadDescription(rawDescription)
	if err != nil {
		return formatter.Fail(err)
	}
	req.Description = description

	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		if req.DueDate, err = cli.ParseDueDate(raw); err != nil {
			return formatter.Fail(err)
		}
	}
	if flags.Changed("status") {
		v, _ := flags.GetInt("status")
		req.StatusID = &v
	}
	if flags.Changed("assignee") {
		v, _ := flags.GetInt("assignee")
		req.AssignedTo = &v
	}
	if raw, _ := flags.GetString("blocks"); raw != "" {
		if req.DependencyMap, err = cli.ParseIDList(raw); err != nil {
			return formatter.Fail(err)
		}
	}
	if raw, _ := flags.GetString("blocked-by"); raw != "" {
		if req.BlockedBy, err = cli.ParseIDList(raw); err != nil {
			return formatter.Fail(err)
		}
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

	res, err := cliInstance.App.TaskService.CreateTask(ctx, req)
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'synergy task list --project=<id>' to see valid task IDs")
	}

	if formatter.Quiet {
		return formatter.Success(res.Task, nil)
	}
	return formatter.Success(res, func() string { return renderResult("created", res) })
}
