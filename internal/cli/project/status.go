package project

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	statusservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/status"
	"github.com/spf13/cobra"
)

// StatusCmd returns the project status command group
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage a project's workflow statuses",
	}
	cmd.AddCommand(StatusAddCmd())
	cmd.AddCommand(StatusDefaultCmd())
	cmd.AddCommand(StatusUpdateCmd())
	cmd.AddCommand(StatusDeleteCmd())
	return cmd
}

// StatusAddCmd returns the project status add subcommand
func StatusAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a status to a project's workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := cli.ParseID("project", args[0])
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			flags := cmd.Flags()
			req := statusservice.CreateStatusRequest{ProjectID: projectID}
			req.Name, _ = flags.GetString("name")
			req.Description, _ = flags.GetString("description")
			req.Color, _ = flags.GetString("color")
			req.IsDefault, _ = flags.GetBool("default")
			if flags.Changed("position") {
				v, _ := flags.GetInt("position")
				req.Position = &v
			}

			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				st, err := c.App.StatusService.CreateStatus(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(st, func() string {
					return styles.Success(fmt.Sprintf("Status %d %q added at position %d", st.ID, st.Name, st.Position))
				})
			})
		},
	}

	cmd.Flags().String("name", "", "Status name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Status description")
	cmd.Flags().String("color", "", "Hex color #RRGGBB")
	cmd.Flags().Int("position", 0, "Workflow position (default: last)")
	cmd.Flags().Bool("default", false, "Make this the default status for new tasks")
	cli.AddOutputFlags(cmd)
	return cmd
}

// StatusDefaultCmd returns the project status default subcommand
func StatusDefaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default <project-id> <status-id>",
		Short: "Make a status the project's default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			projectID, err := cli.ParseID("project", args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			statusID, err := cli.ParseID("status", args[1])
			if err != nil {
				return formatter.Fail(err)
			}
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				if err := c.App.StatusService.SetDefault(cmd.Context(), projectID, statusID); err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(statusID)
					return nil
				}
				return f.Success(map[string]int{"project_id": projectID, "status_id": statusID}, func() string {
					return styles.Success(fmt.Sprintf("Status %d is now the default", statusID))
				})
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// StatusUpdateCmd returns the project status update subcommand
func StatusUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <status-id>",
		Short: "Rename, recolor or move a status",
		Long: `Update a status. Only the given flags change. Renaming a status can change
the estimated progress, and so the deadline risk, of every task in it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			statusID, err := cli.ParseID("status", args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			flags := cmd.Flags()
			req := statusservice.UpdateStatusRequest{StatusID: statusID}
			if flags.Changed("name") {
				v, _ := flags.GetString("name")
				req.Name = &v
			}
			if flags.Changed("description") {
				v, _ := flags.GetString("description")
				req.Description = &v
			}
			if flags.Changed("color") {
				v, _ := flags.GetString("color")
				req.Color = &v
			}
			if flags.Changed("position") {
				v, _ := flags.GetInt("position")
				req.Position = &v
			}
			if flags.Changed("default") {
				v, _ := flags.GetBool("default")
				req.IsDefault = &v
			}
			if req.Name == nil && req.Description == nil && req.Color == nil && req.Position == nil && req.IsDefault == nil {
				return formatter.Fail(&cli.CommandError{
					Code: cli.ExitUsage,
					Err:  errors.New("at least one field flag must be specified"),
				})
			}

			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				st, err := c.App.StatusService.UpdateStatus(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(st, func() string {
					return styles.Success(fmt.Sprintf("Status %d %q updated", st.ID, st.Name))
				})
			})
		},
	}

	cmd.Flags().String("name", "", "New status name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("color", "", "Hex color #RRGGBB")
	cmd.Flags().Int("position", 0, "Workflow position")
	cmd.Flags().Bool("default", false, "Make this the default status for new tasks")
	cli.AddOutputFlags(cmd)
	return cmd
}

// StatusDeleteCmd returns the project status delete subcommand
func StatusDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <status-id>",
		Short: "Delete a status",
		Long:  "Delete a status. A status that still holds tasks is only deleted with --force, which leaves those tasks without a status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			statusID, err := cli.ParseID("status", args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			force, _ := cmd.Flags().GetBool("force")

			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				detached, err := c.App.StatusService.DeleteStatus(cmd.Context(), statusID, force)
				if errors.Is(err, statusservice.ErrStatusInUse) {
					return f.FailWithSuggestion(err, "Move its tasks first, or pass --force")
				}
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(map[string]int{"status_id": statusID, "detached_tasks": detached}, func() string {
					msg := fmt.Sprintf("Status %d deleted", statusID)
					if detached > 0 {
						msg += fmt.Sprintf(", %d task(s) left without a status", detached)
					}
					return styles.Success(msg)
				})
			})
		},
	}
	cmd.Flags().Bool("force", false, "Delete even if tasks still use the status")
	cli.AddOutputFlags(cmd)
	return cmd
}
