package notification

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	notificationservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/notification"
	"github.com/spf13/cobra"
)

// NotificationCmd returns the notifications parent command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "notif"},
		Short:   "Read and manage notifications",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ReadCmd())
	cmd.AddCommand(ReadAllCmd())
	cmd.AddCommand(StatsCmd())

	return cmd
}

func requireUser(cmd *cobra.Command) {
	cmd.Flags().Int("user", 0, "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
}

func withCLI(cmd *cobra.Command, fn func(s notificationservice.Service, f *cli.OutputFormatter) error) error {
	formatter := cli.FormatterFor(cmd)
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()
	return fn(cliInstance.App.NotificationService, formatter)
}

// ListCmd returns the notifications list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			req := notificationservice.ListRequest{}
			req.UserID, _ = flags.GetInt("user")
			req.UnreadOnly, _ = flags.GetBool("unread")
			req.Type, _ = flags.GetString("type")
			req.Priority, _ = flags.GetString("priority")
			req.Limit, _ = flags.GetInt("limit")
			req.Offset, _ = flags.GetInt("offset")
			if flags.Changed("project") {
				v, _ := flags.GetInt("project")
				req.ProjectID = &v
			}

			return withCLI(cmd, func(s notificationservice.Service, f *cli.OutputFormatter) error {
				page, err := s.List(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					for _, n := range page.Notifications {
						fmt.Println(n.ID)
					}
					return nil
				}
				if page.Notifications == nil {
					page.Notifications = []*models.Notification{}
				}
				return f.Success(page, func() string { return renderPage(page) })
			})
		},
	}

	requireUser(cmd)
	cmd.Flags().Bool("unread", false, "Only unread notifications")
	cmd.Flags().String("type", "", "Filter by type: general or deadline_warning")
	cmd.Flags().String("priority", "", "Filter by priority: low, medium, high, critical")
	cmd.Flags().Int("project", 0, "Filter by project ID")
	cmd.Flags().Int("limit", 0, fmt.Sprintf("Page size (default %d, max %d)", notificationservice.DefaultLimit, notificationservice.MaxLimit))
	cmd.Flags().Int("offset", 0, "Page offset")
	cli.AddOutputFlags(cmd)
	return cmd
}

// ReadCmd returns the notifications read subcommand
func ReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID("notification", args[0])
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			return withCLI(cmd, func(s notificationservice.Service, f *cli.OutputFormatter) error {
				n, err := s.MarkRead(cmd.Context(), id)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(n, func() string { return styles.Success(fmt.Sprintf("Notification %d marked as read", n.ID)) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// ReadAllCmd returns the notifications read-all subcommand
func ReadAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every unread notification of a user as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetInt("user")
			typ, _ := cmd.Flags().GetString("type")
			return withCLI(cmd, func(s notificationservice.Service, f *cli.OutputFormatter) error {
				n, err := s.MarkAllRead(cmd.Context(), userID, typ)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(n)
					return nil
				}
				return f.Success(map[string]int64{"updated": n}, func() string {
					return styles.Success(fmt.Sprintf("%d notifications marked as read", n))
				})
			})
		},
	}
	requireUser(cmd)
	cmd.Flags().String("type", "", "Only this type")
	cli.AddOutputFlags(cmd)
	return cmd
}

// StatsCmd returns the notifications stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a user's notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetInt("user")
			return withCLI(cmd, func(s notificationservice.Service, f *cli.OutputFormatter) error {
				stats, err := s.Stats(cmd.Context(), userID)
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(stats.Unread)
					return nil
				}
				return f.Success(stats, func() string { return renderStats(stats) })
			})
		},
	}
	requireUser(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func renderPage(page *notificationservice.Page) string {
	if len(page.Notifications) == 0 {
		return styles.SubtitleStyle.Render("No notifications")
	}
	var b strings.Builder
	for _, n := range page.Notifications {
		marker := " "
		if !n.IsRead {
			marker = "•"
		}
		fmt.Fprintf(&b, "%s %4d  %s  %s  %s\n", marker, n.ID,
			n.CreatedAt.Format("2006-01-02 15:04"), styles.LevelBadge(n.Priority), n.Title)
	}
	footer := fmt.Sprintf("%d shown, %d total, %d unread", len(page.Notifications), page.TotalCount, page.UnreadCount)
	if page.HasMore {
		footer += ", more available"
	}
	b.WriteString(styles.SubtitleStyle.Render(footer))
	return b.String()
}

func renderStats(s *models.NotificationStats) string {
	lines := []string{
		styles.Field("Total", s.Total),
		styles.Field("Unread", s.Unread),
		styles.Field("Unread deadline warnings", s.UnreadDeadline),
		styles.Field("Last 7 days", s.RecentWeek),
		styles.Field("Last 30 days", s.RecentMonth),
	}
	for _, level := range []string{"critical", "high", "medium", "low"} {
		if n := s.ByPriority[level]; n > 0 {
			lines = append(lines, fmt.Sprintf("  %s %d", styles.LevelBadge(level), n))
		}
	}
	return strings.Join(lines, "\n")
}
