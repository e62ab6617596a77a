package project

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	projectservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/project"
	statusservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/status"
	"github.com/spf13/cobra"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their workflows, and report on their progress",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(AddMemberCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(RiskCmd())
	cmd.AddCommand(OverviewCmd())

	return cmd
}

func withCLI(cmd *cobra.Command, fn func(c *cli.CLI, f *cli.OutputFormatter) error) error {
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
	return fn(cliInstance, formatter)
}

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a project. Unless --empty is given the workflow is seeded with
To-Do (default), In Progress, Review and Done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			req := projectservice.CreateProjectRequest{}
			req.Name, _ = flags.GetString("name")
			req.Description, _ = flags.GetString("description")
			req.SkipDefaultStatuses, _ = flags.GetBool("empty")
			if flags.Changed("owner") {
				v, _ := flags.GetInt("owner")
				req.CreatedBy = &v
			}

			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				p, err := c.App.ProjectService.CreateProject(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(p, func() string { return styles.Success(fmt.Sprintf("Project %d %q created", p.ID, p.Name)) })
			})
		},
	}

	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().Int("owner", 0, "Creating user ID, added to the team")
	cmd.Flags().Bool("empty", false, "Do not seed default statuses")
	cli.AddOutputFlags(cmd)
	return cmd
}

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				projects, err := c.App.ProjectService.ListProjects(cmd.Context())
				if err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					for _, p := range projects {
						fmt.Println(p.ID)
					}
					return nil
				}
				if projects == nil {
					projects = []*models.Project{}
				}
				return f.Success(projects, func() string {
					if len(projects) == 0 {
						return styles.SubtitleStyle.Render("No projects")
					}
					var b strings.Builder
					for _, p := range projects {
						fmt.Fprintf(&b, "%4d  %s\n", p.ID, p.Name)
					}
					return strings.TrimRight(b.String(), "\n")
				})
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

type projectView struct {
	*models.Project
	Members  []int                      `json:"members"`
	Statuses []statusservice.StatusView `json:"statuses"`
}

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project with its team and workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID("project", args[0])
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				ctx := cmd.Context()
				p, err := c.App.ProjectService.GetProject(ctx, id)
				if err != nil {
					return f.Fail(err)
				}
				members, err := c.App.ProjectService.ListMembers(ctx, id)
				if err != nil {
					return f.Fail(err)
				}
				statuses, err := c.App.StatusService.ListStatuses(ctx, id)
				if err != nil {
					return f.Fail(err)
				}
				if members == nil {
					members = []int{}
				}
				view := projectView{Project: p, Members: members, Statuses: statusservice.Describe(c.App.Estimator, statuses)}
				if f.Quiet {
					fmt.Println(p.ID)
					return nil
				}
				return f.Success(view, func() string { return renderProject(view) })
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// AddMemberCmd returns the project add-member subcommand
func AddMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-member <project-id> <user-id>",
		Short: "Add a user to a project's team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			projectID, err := cli.ParseID("project", args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			userID, err := cli.ParseID("user", args[1])
			if err != nil {
				return formatter.Fail(err)
			}
			return withCLI(cmd, func(c *cli.CLI, f *cli.OutputFormatter) error {
				if err := c.App.ProjectService.AddMember(cmd.Context(), projectID, userID); err != nil {
					return f.Fail(err)
				}
				if f.Quiet {
					fmt.Println(userID)
					return nil
				}
				return f.Success(map[string]int{"project_id": projectID, "user_id": userID}, func() string {
					return styles.Success(fmt.Sprintf("User %d added to project %d", userID, projectID))
				})
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func renderProject(v projectView) string {
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("#%d %s", v.ID, v.Name)),
	}
	if v.Description != "" {
		lines = append(lines, styles.SubtitleStyle.Render(v.Description))
	}
	members := make([]string, len(v.Members))
	for i, m := range v.Members {
		members[i] = fmt.Sprintf("%d", m)
	}
	if len(members) == 0 {
		members = []string{"none"}
	}
	lines = append(lines, "", styles.Field("Members", strings.Join(members, ", ")), styles.Section("Workflow"))
	for _, s := range v.Statuses {
		line := fmt.Sprintf("%4d  %s  %s %3.0f%%", s.ID, styles.ColoredText(s.Name, s.Color), styles.Bar(s.Progress, 10), s.Progress*100)
		if s.IsDefault {
			line += "  (default)"
		}
		if s.IsDone {
			line += "  (done)"
		}
		lines = append(lines, line)
	}
	return styles.RenderCard(lines...)
}
