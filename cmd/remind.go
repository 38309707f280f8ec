package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/parser"
	"github.com/masonpham16/TalkDoc/internal/runtime"
	"github.com/masonpham16/TalkDoc/internal/scheduler"
)

// Remind command flags.
var (
	remindAddFlagSlot  string
	remindAddFlagDays  []string
	remindAddFlagTimes []string
	remindListSlot     string
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:     "remind [command]",
	Aliases: []string{"r", "rem"},
	Short:   "Manage medication reminders",
	Long: `Create and manage medication reminders.

Each reminder is tied to a dispenser slot and fires on the selected
days at the selected times. The item name is captured when the
reminder is created.

Time formats:
  - 12-hour: "8:05 AM", "12 pm"
  - 24-hour: "14:30"

Examples:
  talkdoc remind add --slot B1 --day Mon --day Wed --time "8:00 AM"
  talkdoc remind add --slot T2 --day Sun --time 9:00 --time 21:00
  talkdoc remind list
  talkdoc remind delete abc123`,
	RunE: runRemindList,
}

// remindAddCmd creates a reminder.
var remindAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a reminder",
	Long: `Create a reminder for the medication in a slot.

The slot must hold an item, and at least one day and one time are
required.

Examples:
  talkdoc remind add --slot B1 --day Mon --day Wed --time "8:00 AM"
  talkdoc remind add -s T2 -d Sun -t 9:00 -t 21:00`,
	RunE: runRemindAdd,
}

// remindListCmd lists reminders.
var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE:  runRemindList,
}

// remindDeleteCmd deletes a reminder.
var remindDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a reminder by ID or ID prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemindDelete,
}

func init() {
	// Create reminder flags
	remindAddCmd.Flags().StringVarP(&remindAddFlagSlot, "slot", "s", "",
		"Dispenser slot (B1-B4, T1-T4)")
	remindAddCmd.Flags().StringArrayVarP(&remindAddFlagDays, "day", "d", nil,
		"Day of week (Mon..Sun), repeatable")
	remindAddCmd.Flags().StringArrayVarP(&remindAddFlagTimes, "time", "t", nil,
		"Time of day (e.g. '8:00 AM' or '20:00'), repeatable")
	_ = remindAddCmd.MarkFlagRequired("slot")

	// List flags
	remindListCmd.Flags().StringVarP(&remindListSlot, "slot", "s", "",
		"Filter by slot")

	// Dynamic completion
	remindDeleteCmd.ValidArgsFunction = completeReminderArgs

	// Add subcommands
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindDeleteCmd)

	rootCmd.AddCommand(remindCmd)
}

// completeReminderArgs provides completion for reminder IDs.
func completeReminderArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Initialize context for completion
	if ctx == nil {
		opts := runtime.DefaultOptions()
		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer ctx.Close()
	}

	reminders, err := ctx.ReminderRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var suggestions []string
	for _, r := range reminders {
		shortID := r.ShortID()
		if strings.HasPrefix(shortID, toComplete) {
			suggestions = append(suggestions, fmt.Sprintf("%s\t%s (%s)", shortID, r.ItemName, r.Slot))
		}
	}

	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// runRemindAdd handles creating a new reminder.
func runRemindAdd(cmd *cobra.Command, args []string) error {
	slot, err := model.ParseSlot(remindAddFlagSlot)
	if err != nil {
		return err
	}

	days := make([]model.Day, 0, len(remindAddFlagDays))
	for _, raw := range remindAddFlagDays {
		day, err := model.ParseDay(raw)
		if err != nil {
			return err
		}
		days = append(days, day)
	}

	times := make([]string, 0, len(remindAddFlagTimes))
	for _, raw := range remindAddFlagTimes {
		result := parser.ParseClock(raw)
		if !result.Valid {
			return errors.NewValidationErrorWithField("time", raw,
				"Invalid time", "Try formats like '8:05 AM', '12 pm', or '14:30'.")
		}
		times = append(times, result.Time24)
	}

	author := scheduler.NewAuthor(ctx.InventoryRepo, ctx.ReminderRepo, ctx.Center)
	reminder, err := author.Create(slot, days, times)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewReminderOutput(reminder))
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Reminder %s: %s (%s)", reminder.ShortID(),
		cli.ItemName(reminder.ItemName), reminder.Slot))

	clock := make([]string, len(reminder.Times))
	for i, t := range reminder.Times {
		clock[i] = parser.ToAmPm(t)
	}
	dayTags := make([]string, len(reminder.Days))
	for i, d := range reminder.Days {
		dayTags[i] = string(d)
	}
	ctx.Formatter.Printf("  %s at %s\n", strings.Join(dayTags, ", "), strings.Join(clock, ", "))
	return nil
}

// runRemindList handles listing reminders.
func runRemindList(cmd *cobra.Command, args []string) error {
	var reminders []*model.Reminder
	var err error

	if remindListSlot != "" {
		slot, perr := model.ParseSlot(remindListSlot)
		if perr != nil {
			return perr
		}
		reminders, err = ctx.ReminderRepo.ListForSlot(slot)
	} else {
		reminders, err = ctx.ReminderRepo.List()
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewRemindersResponse(reminders))
	}

	ctx.CLIFormatter().PrintReminders(reminders)
	return nil
}

// runRemindDelete handles deleting a reminder.
func runRemindDelete(cmd *cobra.Command, args []string) error {
	author := scheduler.NewAuthor(ctx.InventoryRepo, ctx.ReminderRepo, ctx.Center)
	reminder, err := author.Delete(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "deleted",
			"id":     reminder.ID(),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Deleted reminder %s: %s (%s)", reminder.ShortID(),
		cli.ItemName(reminder.ItemName), reminder.Slot))
	return nil
}
