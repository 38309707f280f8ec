package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/parser"
)

// Notification command flags.
var (
	notificationsFlagSince string
)

// notificationsCmd represents the notifications command.
var notificationsCmd = &cobra.Command{
	Use:     "notifications [command]",
	Aliases: []string{"notif", "n"},
	Short:   "View the notification log",
	Long: `View in-app notifications, newest first.

Unread notifications are marked with a dot. Use 'read' to mark
everything as read.

Examples:
  talkdoc notifications
  talkdoc notifications --since yesterday
  talkdoc notifications read`,
	RunE: runNotificationsList,
}

// notificationsListCmd lists notifications.
var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  runNotificationsList,
}

// notificationsReadCmd marks all notifications as read.
var notificationsReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Mark all notifications as read",
	RunE:  runNotificationsRead,
}

func init() {
	notificationsCmd.PersistentFlags().StringVar(&notificationsFlagSince, "since", "",
		"Only show notifications since (e.g. 'yesterday', 'last monday', '2026-08-01')")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)

	rootCmd.AddCommand(notificationsCmd)
}

// runNotificationsList handles listing notifications.
func runNotificationsList(cmd *cobra.Command, args []string) error {
	var notifications []*model.Notification
	var err error

	if notificationsFlagSince != "" {
		result := parser.ParseTimestamp(notificationsFlagSince)
		if result.Error != nil {
			return fmt.Errorf("could not parse --since: %w", result.Error)
		}
		notifications, err = ctx.Center.ListSince(result.Time)
	} else {
		notifications, err = ctx.Center.List()
	}
	if err != nil {
		return err
	}

	unread, err := ctx.Center.Unread()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewNotificationsResponse(notifications, unread))
	}

	ctx.CLIFormatter().PrintNotifications(notifications)
	return nil
}

// runNotificationsRead handles marking all notifications as read.
func runNotificationsRead(cmd *cobra.Command, args []string) error {
	if err := ctx.Center.MarkAllRead(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.StatusOutput{
			Status:  "ok",
			Message: "all notifications marked read",
		})
	}

	ctx.CLIFormatter().Success("All notifications marked read")
	return nil
}
