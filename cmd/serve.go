package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/launcher"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled deadline sweep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("no-sweep") {
				cfg.Sweep.Enabled = false
			}

			// Set up signal handling for graceful shutdown
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return launcher.Serve(ctx, cfg)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().Bool("no-sweep", false, "Do not run the scheduled deadline sweep")
	return cmd
}
