package storage

import (
	"time"

	"github.com/masonpham16/TalkDoc/internal/model"
)

// FiredRepo records which (reminder, day, time, date) combinations
// have already produced a notification, so the minute check never
// fires the same occurrence twice. Values are the RFC3339 firing time,
// which PruneOlderThan uses to expire stale marks.
type FiredRepo struct {
	db *DB
}

// NewFiredRepo creates a new fired-occurrence repository.
func NewFiredRepo(db *DB) *FiredRepo {
	return &FiredRepo{db: db}
}

func firedKey(occurrence string) string {
	return model.PrefixFired + ":" + occurrence
}

// Mark records that an occurrence fired at the given time.
func (r *FiredRepo) Mark(occurrence string, at time.Time) error {
	return r.db.SetBytes(firedKey(occurrence), []byte(at.Format(time.RFC3339)))
}

// Seen reports whether an occurrence has already fired.
func (r *FiredRepo) Seen(occurrence string) (bool, error) {
	return r.db.Exists(firedKey(occurrence))
}

// PruneOlderThan removes marks whose recorded firing time is before
// the cutoff. Marks with unparseable values are removed too.
func (r *FiredRepo) PruneOlderThan(cutoff time.Time) (int, error) {
	keys, err := r.db.ListByPrefix(model.PrefixFired + ":")
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, key := range keys {
		data, err := r.db.GetBytes(key)
		if err != nil {
			if IsErrKeyNotFound(err) {
				continue
			}
			return pruned, err
		}

		at, parseErr := time.Parse(time.RFC3339, string(data))
		if parseErr == nil && !at.Before(cutoff) {
			continue
		}
		if err := r.db.Delete(key); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

// Count returns the number of stored marks.
func (r *FiredRepo) Count() (int, error) {
	keys, err := r.db.ListByPrefix(model.PrefixFired + ":")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
