package task

import (
	"errors"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	taskservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/task"
	"github.com/spf13/cobra"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update task fields or dependencies. Only the flags given are changed.
Passing --blocks="" or --blocked-by="" clears that list.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New task title")
	cmd.Flags().String("description", "", "New task description (use - for stdin)")
	cmd.Flags().String("due", "", "New due date, YYYY-MM-DD")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().Int("status", 0, "New status ID")
	cmd.Flags().Bool("clear-status", false, "Remove the status")
	cmd.Flags().Int("effort", 0, "New effort 1-5")
	cmd.Flags().Int("impact", 0, "New impact 1-5")
	cmd.Flags().Int("assignee", 0, "New assigned user ID")
	cmd.Flags().Bool("clear-assignee", false, "Remove the assignee")
	cmd.Flags().String("blocks", "", "Replace the IDs of tasks this task blocks")
	cmd.Flags().String("blocked-by", "", "Replace the IDs of tasks blocking this task")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	flags := cmd.Flags()

	taskID, err := cli.ParseID("task", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	req := taskservice.UpdateTaskRequest{TaskID: taskID}
	changed := false

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		req.Title = &v
		changed = true
	}
	if flags.Changed("description") {
		raw, _ := flags.GetString("description")
		v, err := cli.ReadDescription(raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Description = &v
		changed = true
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		if req.DueDate, err = cli.ParseDueDate(raw); err != nil {
			return formatter.Fail(err)
		}
		changed = true
	}
	if flags.Changed("status") {
		v, _ := flags.GetInt("status")
		req.StatusID = &v
		changed = true
	}
	if flags.Changed("effort") {
		v, _ := flags.GetInt("effort")
		req.EffortScore = &v
		changed = true
	}
	if flags.Changed("impact") {
		v, _ := flags.GetInt("impact")
		req.ImpactScore = &v
		changed = true
	}
	if flags.Changed("assignee") {
		v, _ := flags.GetInt("assignee")
		req.AssignedTo = &v
		changed = true
	}
	if flags.Changed("blocks") {
		raw, _ := flags.GetString("blocks")
		ids, err := cli.ParseIDList(raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.DependencyMap = &ids
		changed = true
	}
	if flags.Changed("blocked-by") {
		raw, _ := flags.GetString("blocked-by")
		ids, err := cli.ParseIDList(raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.BlockedBy = &ids
		changed = true
	}
	req.ClearDueDate, _ = flags.GetBool("clear-due")
	req.ClearStatus, _ = flags.GetBool("clear-status")
	req.ClearAssignee, _ = flags.GetBool("clear-assignee")
	changed = changed || req.ClearDueDate || req.ClearStatus || req.ClearAssignee

	if !changed {
		return formatter.Fail(&cli.CommandError{
			Code: cli.ExitUsage,
			Err:  errors.New("at least one field flag must be specified"),
		})
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

	res, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(res.Task, nil)
	}
	return formatter.Success(res, func() string { return renderResult("updated", res) })
}
