package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

// ReminderRepo provides operations for Reminder entities.
type ReminderRepo struct {
	db *DB
}

// NewReminderRepo creates a new reminder repository.
func NewReminderRepo(db *DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// Create persists a new reminder, generating its key when absent.
func (r *ReminderRepo) Create(reminder *model.Reminder) error {
	if reminder.Key == "" {
		reminder.Key = model.GenerateReminderKey(uuid.New().String())
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	return r.db.Set(reminder)
}

// Get retrieves a reminder by key.
func (r *ReminderRepo) Get(key string) (*model.Reminder, error) {
	reminder := &model.Reminder{}
	if err := r.db.Get(key, reminder); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

// AmbiguousMatchError is returned when multiple reminders match an ID
// prefix.
type AmbiguousMatchError struct {
	Matches int
}

func (e *AmbiguousMatchError) Error() string {
	return "multiple reminders match the given ID"
}

// GetByID retrieves a reminder by full ID or unambiguous ID prefix.
func (r *ReminderRepo) GetByID(id string) (*model.Reminder, error) {
	if id == "" {
		return nil, errors.ErrReminderNotFound
	}

	reminders, err := r.List()
	if err != nil {
		return nil, err
	}

	var matches []*model.Reminder
	for _, rem := range reminders {
		if rem.ID() == id {
			return rem, nil
		}
		if strings.HasPrefix(rem.ID(), id) {
			matches = append(matches, rem)
		}
	}

	if len(matches) == 0 {
		return nil, errors.ErrReminderNotFound
	}
	if len(matches) > 1 {
		return nil, &AmbiguousMatchError{Matches: len(matches)}
	}
	return matches[0], nil
}

// List retrieves all reminders, newest first. The ordering reproduces
// the prepend semantics of the persisted list this layout replaces.
func (r *ReminderRepo) List() ([]*model.Reminder, error) {
	reminders, err := GetAllByPrefix(r.db, model.PrefixReminder+":", func() *model.Reminder {
		return &model.Reminder{}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].CreatedAt.After(reminders[j].CreatedAt)
	})
	return reminders, nil
}

// ListForSlot retrieves all reminders targeting a slot, newest first.
func (r *ReminderRepo) ListForSlot(slot model.Slot) ([]*model.Reminder, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var result []*model.Reminder
	for _, rem := range all {
		if rem.Slot == slot {
			result = append(result, rem)
		}
	}
	return result, nil
}

// Delete removes a reminder by key.
func (r *ReminderRepo) Delete(key string) error {
	return r.db.Delete(key)
}

// Exists checks if a reminder exists.
func (r *ReminderRepo) Exists(key string) (bool, error) {
	return r.db.Exists(key)
}
