package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDocumentRoundTrip(t *testing.T) {
	db := openTestDB(t)

	inv := model.EmptyInventory()
	inv[model.SlotB2] = &model.InventoryItem{Name: "Aspirin", Quantity: 12}
	require.NoError(t, SaveDocument(db, model.KeyInventory, inv))

	got := LoadDocument(db, model.KeyInventory, model.EmptyInventory())
	require.NotNil(t, got[model.SlotB2])
	assert.Equal(t, "Aspirin", got[model.SlotB2].Name)
	assert.Equal(t, 12, got[model.SlotB2].Quantity)
}

func TestDocumentMalformedYieldsDefault(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetBytes(model.KeyInventory, []byte("{not json")))

	got := LoadDocument(db, model.KeyInventory, model.EmptyInventory())
	for _, slot := range model.Slots() {
		assert.Nil(t, got[slot])
	}
}

func TestDocumentMissingYieldsDefault(t *testing.T) {
	db := openTestDB(t)

	got := LoadDocument(db, "no-such-document", model.EmptyInventory())
	assert.Len(t, got, 8)
}

func TestInventoryRepoSetAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepo(db)

	require.NoError(t, repo.Set(model.SlotT1, model.InventoryItem{Name: "  Ibuprofen  ", Quantity: 30}))

	item, err := repo.Get(model.SlotT1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Ibuprofen", item.Name, "name should be stored trimmed")
	assert.Equal(t, 30, item.Quantity)

	empty, err := repo.Get(model.SlotT2)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestInventoryRepoInvalidInputLeavesDocumentUnchanged(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepo(db)

	require.NoError(t, repo.Set(model.SlotB1, model.InventoryItem{Name: "Metformin", Quantity: 60}))

	err := repo.Set(model.SlotB1, model.InventoryItem{Name: "   ", Quantity: 5})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	err = repo.Set(model.SlotB1, model.InventoryItem{Name: "Metformin", Quantity: -1})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	item, err := repo.Get(model.SlotB1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Metformin", item.Name)
	assert.Equal(t, 60, item.Quantity)
}

func TestInventoryRepoClear(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepo(db)

	require.NoError(t, repo.Set(model.SlotB3, model.InventoryItem{Name: "Lisinopril", Quantity: 14}))
	require.NoError(t, repo.Clear(model.SlotB3))

	item, err := repo.Get(model.SlotB3)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestInventoryRepoInvalidSlot(t *testing.T) {
	db := openTestDB(t)
	repo := NewInventoryRepo(db)

	_, err := repo.Get(model.Slot("Z9"))
	assert.ErrorIs(t, err, errors.ErrInvalidSlot)

	err = repo.Set(model.Slot("Z9"), model.InventoryItem{Name: "x", Quantity: 1})
	assert.ErrorIs(t, err, errors.ErrInvalidSlot)
}

func TestReminderRepoCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	rem := &model.Reminder{
		Slot:     model.SlotB1,
		ItemName: "Aspirin",
		Days:     []model.Day{model.Mon, model.Wed},
		Times:    []string{"08:00", "20:00"},
	}
	require.NoError(t, repo.Create(rem))
	assert.NotEmpty(t, rem.Key)
	assert.False(t, rem.CreatedAt.IsZero())

	got, err := repo.Get(rem.Key)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", got.ItemName)
	assert.Equal(t, model.SlotB1, got.Slot)
	assert.Equal(t, []model.Day{model.Mon, model.Wed}, got.Days)
	assert.Equal(t, []string{"08:00", "20:00"}, got.Times)
}

func TestReminderRepoGetMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	_, err := repo.Get(model.GenerateReminderKey("does-not-exist"))
	assert.ErrorIs(t, err, errors.ErrReminderNotFound)
}

func TestReminderRepoListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	base := time.Now()
	for i, name := range []string{"first", "second", "third"} {
		rem := &model.Reminder{
			Slot:      model.SlotB1,
			ItemName:  name,
			Days:      []model.Day{model.Mon},
			Times:     []string{"08:00"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(rem))
	}

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].ItemName)
	assert.Equal(t, "second", list[1].ItemName)
	assert.Equal(t, "first", list[2].ItemName)
}

func TestReminderRepoGetByIDPrefix(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	rem := &model.Reminder{
		Key:      model.GenerateReminderKey("abcdef01-0000-0000-0000-000000000000"),
		Slot:     model.SlotT4,
		ItemName: "Vitamin D",
		Days:     []model.Day{model.Sun},
		Times:    []string{"09:00"},
	}
	require.NoError(t, repo.Create(rem))

	got, err := repo.GetByID("abcdef")
	require.NoError(t, err)
	assert.Equal(t, rem.Key, got.Key)

	_, err = repo.GetByID("zzz")
	assert.ErrorIs(t, err, errors.ErrReminderNotFound)
}

func TestReminderRepoGetByIDAmbiguous(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	for _, id := range []string{"aa11", "aa22"} {
		rem := &model.Reminder{
			Key:      model.GenerateReminderKey(id),
			Slot:     model.SlotB1,
			ItemName: "x",
			Days:     []model.Day{model.Mon},
			Times:    []string{"08:00"},
		}
		require.NoError(t, repo.Create(rem))
	}

	_, err := repo.GetByID("aa")
	require.Error(t, err)
	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Matches)
}

func TestReminderRepoDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewReminderRepo(db)

	rem := &model.Reminder{
		Slot:     model.SlotB2,
		ItemName: "Aspirin",
		Days:     []model.Day{model.Fri},
		Times:    []string{"12:00"},
	}
	require.NoError(t, repo.Create(rem))
	require.NoError(t, repo.Delete(rem.Key))

	_, err := repo.Get(rem.Key)
	assert.ErrorIs(t, err, errors.ErrReminderNotFound)
}

func TestNotificationRepoCreateRaisesUnread(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepo(db)

	unread, err := repo.Unread()
	require.NoError(t, err)
	assert.False(t, unread, "fresh database should read as no unread")

	require.NoError(t, repo.Create(model.NewNotification("Reminder scheduled", "Aspirin (B1)")))

	unread, err = repo.Unread()
	require.NoError(t, err)
	assert.True(t, unread)
}

func TestNotificationRepoMarkAllRead(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepo(db)

	require.NoError(t, repo.Create(model.NewNotification("a", "b")))
	require.NoError(t, repo.Create(model.NewNotification("c", "d")))
	require.NoError(t, repo.MarkAllRead())

	unread, err := repo.Unread()
	require.NoError(t, err)
	assert.False(t, unread)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}

func TestNotificationRepoListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepo(db)

	base := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		n := model.NewNotification(title, "body")
		n.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(n))
	}

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Title)
	assert.Equal(t, "oldest", list[2].Title)
}

func TestNotificationRepoListSince(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepo(db)

	base := time.Now()
	old := model.NewNotification("old", "body")
	old.CreatedAt = base.Add(-2 * time.Hour)
	require.NoError(t, repo.Create(old))

	recent := model.NewNotification("recent", "body")
	recent.CreatedAt = base
	require.NoError(t, repo.Create(recent))

	list, err := repo.ListSince(base.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "recent", list[0].Title)
}

func TestNotificationRepoListSkipsUnreadFlag(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepo(db)

	require.NoError(t, repo.Create(model.NewNotification("only", "one")))

	list, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFiredRepoMarkAndSeen(t *testing.T) {
	db := openTestDB(t)
	repo := NewFiredRepo(db)

	occ := "some-id|Mon|08:00|2026-08-24"
	seen, err := repo.Seen(occ)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.Mark(occ, time.Now()))

	seen, err = repo.Seen(occ)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestFiredRepoPruneOlderThan(t *testing.T) {
	db := openTestDB(t)
	repo := NewFiredRepo(db)

	now := time.Now()
	require.NoError(t, repo.Mark("stale", now.Add(-15*24*time.Hour)))
	require.NoError(t, repo.Mark("fresh", now))
	require.NoError(t, db.SetBytes(firedKey("garbage"), []byte("not a timestamp")))

	pruned, err := repo.PruneOlderThan(now.Add(-14 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, pruned, "stale and unparseable marks should go")

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	seen, err := repo.Seen("fresh")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestWebhookRepoCreateGetDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewWebhookRepo(db)

	w := model.NewWebhook("caregiver", model.WebhookTypeDiscord, "https://discord.com/api/webhooks/1/x")
	require.NoError(t, repo.Create(w))

	got, err := repo.Get("caregiver")
	require.NoError(t, err)
	assert.Equal(t, model.WebhookTypeDiscord, got.Type)
	assert.True(t, got.Enabled)

	err = repo.Create(model.NewWebhook("caregiver", model.WebhookTypeSlack, "https://hooks.slack.com/x"))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	require.NoError(t, repo.Delete("caregiver"))
	_, err = repo.Get("caregiver")
	assert.ErrorIs(t, err, errors.ErrWebhookNotFound)

	err = repo.Delete("caregiver")
	assert.ErrorIs(t, err, errors.ErrWebhookNotFound)
}

func TestWebhookRepoListEnabled(t *testing.T) {
	db := openTestDB(t)
	repo := NewWebhookRepo(db)

	on := model.NewWebhook("on", model.WebhookTypeGeneric, "https://example.com/hook")
	require.NoError(t, repo.Create(on))

	off := model.NewWebhook("off", model.WebhookTypeGeneric, "https://example.com/hook2")
	off.Enabled = false
	require.NoError(t, repo.Create(off))

	enabled, err := repo.ListEnabled()
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "on", enabled[0].Name)
}

func TestWebhookRepoUpdateLastUsed(t *testing.T) {
	db := openTestDB(t)
	repo := NewWebhookRepo(db)

	require.NoError(t, repo.Create(model.NewWebhook("hook", model.WebhookTypeSlack, "https://hooks.slack.com/x")))

	require.NoError(t, repo.UpdateLastUsed("hook", errors.New("boom")))
	w, err := repo.Get("hook")
	require.NoError(t, err)
	assert.Equal(t, "boom", w.LastError)
	assert.False(t, w.LastUsed.IsZero())

	require.NoError(t, repo.UpdateLastUsed("hook", nil))
	w, err = repo.Get("hook")
	require.NoError(t, err)
	assert.Empty(t, w.LastError)
}
