// Package runtime provides application runtime context for TalkDoc.
package runtime

import (
	"os"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter
	Config    *config.Config

	// Repositories
	InventoryRepo    *storage.InventoryRepo
	ReminderRepo     *storage.ReminderRepo
	NotificationRepo *storage.NotificationRepo
	FiredRepo        *storage.FiredRepo
	WebhookRepo      *storage.WebhookRepo

	// Center is the in-app notification log.
	Center *notify.Center

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	if envPath := os.Getenv(config.EnvDatabase); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	notificationRepo := storage.NewNotificationRepo(db)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:               db,
		Formatter:        formatter,
		Config:           config.Load(),
		InventoryRepo:    storage.NewInventoryRepo(db),
		ReminderRepo:     storage.NewReminderRepo(db),
		NotificationRepo: notificationRepo,
		FiredRepo:        storage.NewFiredRepo(db),
		WebhookRepo:      storage.NewWebhookRepo(db),
		Center:           notify.NewCenter(notificationRepo),
		Debug:            opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}
