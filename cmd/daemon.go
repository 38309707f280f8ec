package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/daemon"
	"github.com/masonpham16/TalkDoc/internal/notify"
)

// Daemon command flags.
var (
	daemonStartFlagForeground bool
	daemonLogsFlagTail        int
)

// daemonCmd represents the daemon command.
var daemonCmd = &cobra.Command{
	Use:     "daemon [command]",
	Aliases: []string{"d", "bg"},
	Short:   "Manage the reminder daemon",
	Long: `Manage the TalkDoc background daemon that checks reminders every
minute and records notifications when they fire.

Examples:
  talkdoc daemon start
  talkdoc daemon status
  talkdoc daemon stop
  talkdoc daemon logs --tail 20`,
	RunE: runDaemonStatus,
}

// daemonStartCmd starts the daemon.
var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reminder daemon",
	Long: `Start the TalkDoc reminder daemon.

The daemon fires in-app notifications at the exact reminder minute and
forwards them to any configured webhooks.

Examples:
  talkdoc daemon start               # Start in background
  talkdoc daemon start --foreground  # Start in foreground (for debugging)`,
	RunE: runDaemonStart,
}

// daemonStopCmd stops the daemon.
var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the reminder daemon",
	RunE:  runDaemonStop,
}

// daemonStatusCmd shows daemon status.
var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

// daemonLogsCmd shows daemon logs.
var daemonLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View daemon logs",
	RunE:  runDaemonLogs,
}

func init() {
	daemonStartCmd.Flags().BoolVar(&daemonStartFlagForeground, "foreground", false,
		"Run in foreground (don't daemonize)")

	daemonLogsCmd.Flags().IntVarP(&daemonLogsFlagTail, "tail", "n", 20,
		"Number of lines to show")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonLogsCmd)

	rootCmd.AddCommand(daemonCmd)
}

// runDaemonStart handles the daemon start command.
func runDaemonStart(cmd *cobra.Command, args []string) error {
	if !daemonStartFlagForeground {
		// Background mode - spawn child process without holding the
		// database lock
		d := daemon.NewDaemon(nil, config.Load())
		d.SetDebug(flagDebug)

		if d.IsRunning() {
			status := d.GetStatus()
			return fmt.Errorf("daemon is already running (PID: %d)", status.PID)
		}

		pid, err := d.StartBackground()
		if err != nil {
			return err
		}

		fmt.Println("Starting talkdoc daemon...")
		fmt.Printf("Daemon started (PID: %d)\n", pid)
		return nil
	}

	// Foreground mode - ctx is initialized
	d := daemon.NewDaemon(ctx.DB, ctx.Config)
	d.SetDebug(ctx.Debug)

	if d.IsRunning() {
		status := d.GetStatus()
		return fmt.Errorf("daemon is already running (PID: %d)", status.PID)
	}

	dispatcher := notify.NewDispatcher(ctx.WebhookRepo, ctx.Config.HTTP)
	if !dispatcher.HasEnabledWebhooks() && !ctx.IsJSON() {
		ctx.Formatter.Println("Note: no webhooks configured; notifications stay in-app.")
		ctx.Formatter.Println("")
	}

	if !ctx.IsJSON() {
		ctx.Formatter.Printf("Starting talkdoc daemon (foreground mode)...\n")
	}
	return d.Start(context.Background())
}

// runDaemonStop handles the daemon stop command.
func runDaemonStop(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil, ctx.Config)

	if !d.IsRunning() {
		fmt.Println("Daemon is not running")
		return nil
	}

	status := d.GetStatus()
	pid := status.PID

	fmt.Println("Stopping talkdoc daemon...")

	if err := d.Stop(); err != nil {
		return err
	}

	fmt.Printf("Daemon stopped (was PID: %d)\n", pid)
	return nil
}

// runDaemonStatus handles the daemon status command.
func runDaemonStatus(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil, ctx.Config)
	status := d.GetStatus()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"running": status.Running,
			"pid":     status.PID,
			"uptime":  status.Uptime,
		})
	}

	fmt.Println("TalkDoc Daemon Status")
	fmt.Println("")

	if status.Running {
		fmt.Printf("  Status:    running\n")
		fmt.Printf("  PID:       %d\n", status.PID)
		fmt.Printf("  Uptime:    %s\n", status.Uptime)
	} else {
		fmt.Printf("  Status:    stopped\n")
		fmt.Println("")
		fmt.Println("Start with: talkdoc daemon start")
	}

	return nil
}

// runDaemonLogs handles the daemon logs command.
func runDaemonLogs(cmd *cobra.Command, args []string) error {
	logPath := daemon.GetLogPath()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Println("No log file found.")
		fmt.Printf("Log path: %s\n", logPath)
		return nil
	}

	lines, err := tailFile(logPath, daemonLogsFlagTail)
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}

	return nil
}

// tailFile reads the last n lines from a file.
func tailFile(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
