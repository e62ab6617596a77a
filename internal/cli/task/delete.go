package task

import (
	"fmt"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and detach it from its neighbours",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	update, err := cliInstance.App.TaskService.DeleteTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}
	if formatter.Quiet {
		fmt.Println(taskID)
		return nil
	}
	return formatter.Success(update, func() string {
		return styles.Success(fmt.Sprintf("Task %d deleted, rescored %s", taskID, idList(update.Rescored)))
	})
}
