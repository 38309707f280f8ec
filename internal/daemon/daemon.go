package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/scheduler"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// startupWait is how long StartBackground waits before verifying the
// child wrote its PID file.
const startupWait = 500 * time.Millisecond

// killTimeout bounds how long Stop waits for a clean exit before
// force-killing.
const killTimeout = 5 * time.Second

// Daemon runs the reminder scheduler in the background.
type Daemon struct {
	pidFile   *PIDFile
	scheduler *scheduler.Scheduler
	db        *storage.DB
	cfg       *config.Config
	startedAt time.Time
	debug     bool
}

// Status represents the daemon status.
type Status struct {
	Running   bool      `json:"running"`
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
}

// NewDaemon creates a new daemon manager.
func NewDaemon(db *storage.DB, cfg *config.Config) *Daemon {
	return &Daemon{
		pidFile: NewPIDFile(),
		db:      db,
		cfg:     cfg,
	}
}

// SetDebug enables debug mode.
func (d *Daemon) SetDebug(debug bool) {
	d.debug = debug
}

// GetStatus returns the current daemon status.
func (d *Daemon) GetStatus() *Status {
	status := &Status{}

	pid := d.pidFile.GetRunningPID()
	if pid > 0 {
		status.Running = true
		status.PID = pid

		if state, err := d.readState(); err == nil {
			status.StartedAt = state.StartedAt
			status.Uptime = formatUptime(time.Since(state.StartedAt))
		}
	}

	return status
}

// IsRunning returns true if the daemon is running.
func (d *Daemon) IsRunning() bool {
	return d.pidFile.IsRunning()
}

// Start runs the daemon in the foreground until a shutdown signal.
func (d *Daemon) Start(ctx context.Context) error {
	if d.IsRunning() {
		return ErrAlreadyRunning
	}

	if err := d.pidFile.Write(); err != nil {
		return err
	}

	d.startedAt = time.Now()
	if err := d.writeState(&State{StartedAt: d.startedAt}); err != nil {
		d.pidFile.Remove()
		return err
	}

	reminderRepo := storage.NewReminderRepo(d.db)
	firedRepo := storage.NewFiredRepo(d.db)
	webhookRepo := storage.NewWebhookRepo(d.db)
	center := notify.NewCenter(storage.NewNotificationRepo(d.db))
	dispatcher := notify.NewDispatcher(webhookRepo, d.cfg.HTTP)

	checker := scheduler.NewReminderChecker(reminderRepo, firedRepo, center, dispatcher)
	d.scheduler = scheduler.NewScheduler(d.cfg.Scheduler, checker, firedRepo)

	if err := d.scheduler.Start(); err != nil {
		d.pidFile.Remove()
		return err
	}

	sigHandler := NewSignalHandler()
	sigHandler.Setup()
	defer sigHandler.Cleanup()

	logging.Logger().Info("daemon started", "pid", os.Getpid())

	sig := sigHandler.Wait(ctx)
	if sig != nil {
		logging.Logger().Info("received signal", "signal", sig.String())
	}

	d.scheduler.Stop()
	d.pidFile.Remove()
	d.removeState()

	return nil
}

// StartBackground starts the daemon as a detached child process.
func (d *Daemon) StartBackground() (int, error) {
	if d.IsRunning() {
		return d.pidFile.GetRunningPID(), ErrAlreadyRunning
	}

	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	args := []string{"daemon", "start", "--foreground"}
	if d.debug {
		args = append(args, "--debug")
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdin = nil

	logPath := GetLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			cmd.Stdout = logFile
			cmd.Stderr = logFile
		}
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}

	time.Sleep(startupWait)

	if !d.pidFile.IsRunning() {
		if errMsg := d.readLastLogError(); errMsg != "" {
			return 0, fmt.Errorf("daemon failed to start: %s", errMsg)
		}
		return 0, fmt.Errorf("daemon failed to start (check logs: %s)", logPath)
	}

	return cmd.Process.Pid, nil
}

// readLastLogError scans the tail of the log file for an error line.
func (d *Daemon) readLastLogError() string {
	data, err := os.ReadFile(GetLogPath())
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}

	for i := len(lines) - 1; i >= start; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(strings.ToLower(line), "error") ||
			strings.Contains(line, "failed to") {
			return line
		}
	}
	return ""
}

// Stop stops the running daemon.
func (d *Daemon) Stop() error {
	pid := d.pidFile.GetRunningPID()
	if pid == 0 {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(os.Interrupt); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to stop daemon: %w", err)
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := process.Wait()
		done <- err
	}()

	select {
	case <-done:
	case <-time.After(killTimeout):
		process.Kill()
	}

	d.pidFile.Remove()
	d.removeState()

	return nil
}

// State holds persistent daemon state.
type State struct {
	StartedAt time.Time `json:"started_at"`
}

func getStatePath() string {
	return filepath.Join(xdg.StateHome, AppName, "daemon.json")
}

func (d *Daemon) writeState(state *State) error {
	path := getStatePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (d *Daemon) readState() (*State, error) {
	data, err := os.ReadFile(getStatePath())
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (d *Daemon) removeState() {
	if err := os.Remove(getStatePath()); err != nil && !os.IsNotExist(err) {
		logging.Logger().Warn("failed to remove daemon state file", "error", err, "path", getStatePath())
	}
}

// GetLogPath returns the path to the daemon log file.
func GetLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, "daemon.log")
}

// formatUptime formats a duration as uptime.
func formatUptime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	if hours > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}
