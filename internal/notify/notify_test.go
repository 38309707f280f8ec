package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

func testHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		RetryDelays: []time.Duration{0, 10 * time.Millisecond, 10 * time.Millisecond},
	}
}

func sampleNotification() *model.Notification {
	n := model.NewNotification("Time to take your pill", "Aspirin (B1) — 8:00 AM (now)")
	n.CreatedAt = time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	return n.WithMeta(&model.NotificationMeta{
		ReminderID: "abc123",
		Slot:       model.SlotB1,
		ItemName:   "Aspirin",
		Day:        model.Mon,
		Time:       "08:00",
	})
}

func TestGetFormatter(t *testing.T) {
	assert.IsType(t, &DiscordFormatter{}, GetFormatter(model.WebhookTypeDiscord))
	assert.IsType(t, &SlackFormatter{}, GetFormatter(model.WebhookTypeSlack))
	assert.IsType(t, &GenericFormatter{}, GetFormatter(model.WebhookTypeGeneric))
	assert.IsType(t, &GenericFormatter{}, GetFormatter("unknown"))
}

func TestDiscordFormatter(t *testing.T) {
	data, err := (&DiscordFormatter{}).Format(sampleNotification())
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	embeds, ok := payload["embeds"].([]any)
	require.True(t, ok)
	require.Len(t, embeds, 1)

	embed := embeds[0].(map[string]any)
	assert.Equal(t, "Time to take your pill", embed["title"])
	assert.Equal(t, "Aspirin (B1) — 8:00 AM (now)", embed["description"])

	fields := embed["fields"].([]any)
	assert.Len(t, fields, 3)
}

func TestSlackFormatter(t *testing.T) {
	data, err := (&SlackFormatter{}).Format(sampleNotification())
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "*Time to take your pill*", payload["text"])
	blocks := payload["blocks"].([]any)
	assert.GreaterOrEqual(t, len(blocks), 3)
}

func TestGenericFormatterDefault(t *testing.T) {
	data, err := (&GenericFormatter{}).Format(sampleNotification())
	require.NoError(t, err)

	var payload genericPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "Time to take your pill", payload.Title)
	assert.Equal(t, "2026-08-24T08:00:00Z", payload.Timestamp)
	require.NotNil(t, payload.Meta)
	assert.Equal(t, model.SlotB1, payload.Meta.Slot)
}

func TestGenericFormatterTemplate(t *testing.T) {
	f := NewGenericFormatter(`{"text":"{{.Title}}: {{.ItemName}} in {{.Slot}}"}`)
	data, err := f.Format(sampleNotification())
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Time to take your pill: Aspirin in B1"}`, string(data))
}

func TestHTTPClientSuccess(t *testing.T) {
	var gotContentType, gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(testHTTPConfig())
	result := client.Send(context.Background(), srv.URL, "application/json", []byte("{}"))

	require.NoError(t, result.Error)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "TalkDoc/1.0", gotUserAgent)
}

func TestHTTPClientRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(testHTTPConfig())
	result := client.Send(context.Background(), srv.URL, "application/json", []byte("{}"))

	require.NoError(t, result.Error)
	assert.Equal(t, 3, result.Attempts)
}

func TestHTTPClientDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewHTTPClient(testHTTPConfig())
	result := client.Send(context.Background(), srv.URL, "application/json", []byte("{}"))

	require.Error(t, result.Error)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCenterAppendAndMarkAllRead(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	center := NewCenter(storage.NewNotificationRepo(db))

	require.NoError(t, center.Append(sampleNotification()))

	unread, err := center.Unread()
	require.NoError(t, err)
	assert.True(t, unread)

	list, err := center.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)

	require.NoError(t, center.MarkAllRead())
	unread, err = center.Unread()
	require.NoError(t, err)
	assert.False(t, unread)
}

func TestDispatcherSendsToEnabledWebhooks(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := storage.NewWebhookRepo(db)
	require.NoError(t, repo.Create(model.NewWebhook("a", model.WebhookTypeGeneric, srv.URL)))
	off := model.NewWebhook("b", model.WebhookTypeGeneric, srv.URL)
	off.Enabled = false
	require.NoError(t, repo.Create(off))

	d := NewDispatcher(repo, testHTTPConfig())
	results := d.SendNotification(context.Background(), sampleNotification())

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, int32(1), calls.Load())

	w, err := repo.Get("a")
	require.NoError(t, err)
	assert.False(t, w.LastUsed.IsZero())
	assert.Empty(t, w.LastError)
}

func TestDispatcherNoWebhooks(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d := NewDispatcher(storage.NewWebhookRepo(db), testHTTPConfig())
	assert.Nil(t, d.SendNotification(context.Background(), sampleNotification()))
	assert.False(t, d.HasEnabledWebhooks())
}
