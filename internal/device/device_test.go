package device

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(config.DeviceConfig{BaseURL: baseURL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.DeviceConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestDispense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dispense", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req dispenseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, model.SlotB2, req.Slot)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"slot":"B2","angle":45}`))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Dispense(context.Background(), model.SlotB2)
	require.NoError(t, err)
	assert.Equal(t, model.SlotB2, result.Slot)
	assert.Equal(t, 45, result.Angle)
}

func TestDispenseInvalidSlot(t *testing.T) {
	_, err := testClient(t, "http://unused.invalid").Dispense(context.Background(), model.Slot("Z9"))
	assert.ErrorIs(t, err, errors.ErrInvalidSlot)
}

func TestDispenseControllerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error":"servo jammed"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Dispense(context.Background(), model.SlotT1)
	require.Error(t, err)

	var upstream *errors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "servo jammed", upstream.Message)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
}

func TestDispenseConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(t, srv.URL).Dispense(context.Background(), model.SlotB1)
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	assert.NoError(t, testClient(t, srv.URL).Health(context.Background()))
}

func TestHealthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testClient(t, srv.URL).Health(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUpstream(err))
}
