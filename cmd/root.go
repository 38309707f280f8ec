// Package cmd provides the CLI commands for TalkDoc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/daemon"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "talkdoc",
	Short: "Medication manager for an 8-slot smart dispenser",
	Long: `TalkDoc manages medication inventory, reminders, and the dispenser
from the command line.

Examples:
  talkdoc inventory set B1 "Aspirin" 30
  talkdoc remind add --slot B1 --day Mon --day Wed --time "8:00 AM"
  talkdoc notifications
  talkdoc chat "can I take aspirin with food?"
  talkdoc dispense B1
  talkdoc daemon start`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		if flagDebug {
			logging.InitDebug()
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show a status overview
		return runStatus(cmd, args)
	},
}

// runStatus shows an overview of the dispenser and reminder state.
func runStatus(cmd *cobra.Command, args []string) error {
	inv := ctx.InventoryRepo.Load()
	reminders, err := ctx.ReminderRepo.List()
	if err != nil {
		return err
	}
	unread, err := ctx.Center.Unread()
	if err != nil {
		return err
	}

	d := daemon.NewDaemon(nil, ctx.Config)
	status := d.GetStatus()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"daemon_running": status.Running,
			"filled_slots":   len(inv.FilledSlots()),
			"reminders":      len(reminders),
			"unread":         unread,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title("TalkDoc")
	if status.Running {
		cli.Success(fmt.Sprintf("Reminder daemon running (PID %d)", status.PID))
	} else {
		cli.Muted("Reminder daemon not running. Start with: talkdoc daemon start")
	}
	ctx.Formatter.Printf("  Slots filled: %d/8\n", len(inv.FilledSlots()))
	ctx.Formatter.Printf("  Reminders:    %d\n", len(reminders))
	if unread {
		cli.Warning("You have unread notifications. See: talkdoc notifications")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("talkdoc %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.JSONFormatter().PrintError("error", err.Error(), runtime.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	os.Exit(1)
}
