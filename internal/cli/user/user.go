package user

import (
	"fmt"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	userservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/user"
	"github.com/spf13/cobra"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	return cmd
}

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")

			cliInstance, err := cli.GetCLIFromContext(cmd.Context())
			if err != nil {
				return formatter.Fail(err)
			}
			defer func() {
				if err := cliInstance.Close(); err != nil {
					slog.Error("Error closing CLI", "error", err)
				}
			}()

			u, err := cliInstance.App.UserService.CreateUser(cmd.Context(), userservice.CreateUserRequest{Email: email, Name: name})
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(u, func() string {
				return styles.Success(fmt.Sprintf("User %d %s <%s> created", u.ID, u.Name, u.Email))
			})
		},
	}

	cmd.Flags().String("email", "", "Email address (required)")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("name", "", "Display name (default: the email's local part)")
	cli.AddOutputFlags(cmd)
	return cmd
}

// ShowCmd returns the user show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			id, err := cli.ParseID("user", args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			cliInstance, err := cli.GetCLIFromContext(cmd.Context())
			if err != nil {
				return formatter.Fail(err)
			}
			defer func() {
				if err := cliInstance.Close(); err != nil {
					slog.Error("Error closing CLI", "error", err)
				}
			}()

			u, err := cliInstance.App.UserService.GetUser(cmd.Context(), id)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(u, func() string {
				return styles.RenderCard(
					styles.TitleStyle.Render(u.Name),
					styles.Field("ID", u.ID),
					styles.Field("Email", u.Email),
					styles.Field("Joined", u.CreatedAt.Format("2006-01-02")),
				)
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}
