package cmd

import (
	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard showing the dispenser
slots, reminders, and recent notifications.

Keyboard Controls:
  r - Refresh data
  n - Mark notifications read
  q - Quit dashboard

Examples:
  talkdoc dashboard
  talkdoc dash`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		InventoryRepo: ctx.InventoryRepo,
		ReminderRepo:  ctx.ReminderRepo,
		Center:        ctx.Center,
	}

	return tui.Run(config)
}
