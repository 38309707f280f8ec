package storage

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/masonpham16/TalkDoc/internal/model"
)

// NotificationRepo provides operations for the notification log and
// its unread flag.
type NotificationRepo struct {
	db *DB
}

// NewNotificationRepo creates a new notification repository.
func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create persists a notification and raises the unread flag.
func (r *NotificationRepo) Create(n *model.Notification) error {
	if n.Key == "" {
		n.Key = model.GenerateNotificationKey(uuid.New().String())
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := r.db.Set(n); err != nil {
		return err
	}
	return r.setUnread(true)
}

// List retrieves all notifications, newest first.
func (r *NotificationRepo) List() ([]*model.Notification, error) {
	// The prefix ends with ":" so the unread flag key
	// ("notifications:unread") is not swept up by the scan.
	notifications, err := GetAllByPrefix(r.db, model.PrefixNotification+":", func() *model.Notification {
		return &model.Notification{}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// ListSince retrieves notifications created at or after the cutoff,
// newest first.
func (r *NotificationRepo) ListSince(cutoff time.Time) ([]*model.Notification, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var result []*model.Notification
	for _, n := range all {
		if !n.CreatedAt.Before(cutoff) {
			result = append(result, n)
		}
	}
	return result, nil
}

// MarkAllRead flips every stored notification to read and clears the
// unread flag. Already-read records are rewritten unchanged.
func (r *NotificationRepo) MarkAllRead() error {
	all, err := r.List()
	if err != nil {
		return err
	}

	for _, n := range all {
		if n.Read {
			continue
		}
		n.Read = true
		if err := r.db.Set(n); err != nil {
			return err
		}
	}
	return r.setUnread(false)
}

// Unread reports whether any notification has arrived since the last
// MarkAllRead. A missing flag reads as false.
func (r *NotificationRepo) Unread() (bool, error) {
	data, err := r.db.GetBytes(model.KeyUnreadFlag)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return string(data) == "1", nil
}

func (r *NotificationRepo) setUnread(v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	return r.db.SetBytes(model.KeyUnreadFlag, []byte(val))
}
