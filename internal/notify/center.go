package notify

import (
	"time"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// Center is the in-app notification log. Appending raises the unread
// flag; MarkAllRead clears it and flips every record to read.
type Center struct {
	repo *storage.NotificationRepo
}

// NewCenter creates a notification center backed by the given repository.
func NewCenter(repo *storage.NotificationRepo) *Center {
	return &Center{repo: repo}
}

// Append records a notification and raises the unread flag.
func (c *Center) Append(n *model.Notification) error {
	return c.repo.Create(n)
}

// List returns all notifications, newest first.
func (c *Center) List() ([]*model.Notification, error) {
	return c.repo.List()
}

// ListSince returns notifications created at or after the cutoff,
// newest first.
func (c *Center) ListSince(cutoff time.Time) ([]*model.Notification, error) {
	return c.repo.ListSince(cutoff)
}

// MarkAllRead flips every notification to read and clears the unread
// flag.
func (c *Center) MarkAllRead() error {
	return c.repo.MarkAllRead()
}

// Unread reports whether anything has arrived since the last
// MarkAllRead.
func (c *Center) Unread() (bool, error) {
	return c.repo.Unread()
}
