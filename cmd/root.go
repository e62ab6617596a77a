package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/deadline"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/notification"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/priority"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/project"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/task"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/user"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the synergy command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	root := &cobra.Command{
		Use:   "synergy",
		Short: "Synergy - task priorities, dependencies and deadline warnings",
		Long: `Synergy keeps a project's tasks ordered by a weighted priority score,
tracks which tasks block which, and warns assignees before deadlines slip.

Run "synergy serve" for the HTTP API and scheduled deadline sweeps, or use
the task, priority, deadline and notifications commands directly.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				level = cfg.Logging.Level
			}
			logCloser, err = logging.Init(logging.Options{
				Level:  level,
				Format: cfg.Logging.Format,
				File:   cfg.Logging.File,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser == nil {
				return
			}
			if err := logCloser.Close(); err != nil {
				slog.Error("error closing log file", "error", err)
			}
		},
	}

	root.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(task.TaskCmd())
	root.AddCommand(priority.PriorityCmd())
	root.AddCommand(deadline.DeadlineCmd())
	root.AddCommand(notification.NotificationCmd())
	root.AddCommand(project.ProjectCmd())
	root.AddCommand(user.UserCmd())
	root.AddCommand(ServeCmd())
	root.AddCommand(ConfigCmd())

	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
