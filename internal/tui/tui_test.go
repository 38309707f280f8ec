package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

func newDashboard(t *testing.T) *DashboardModel {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewDashboardModel(DashboardConfig{
		InventoryRepo: storage.NewInventoryRepo(db),
		ReminderRepo:  storage.NewReminderRepo(db),
		Center:        notify.NewCenter(storage.NewNotificationRepo(db)),
	})
}

func TestDashboardQuit(t *testing.T) {
	m := newDashboard(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardWindowSize(t *testing.T) {
	m := newDashboard(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	dm := updated.(*DashboardModel)
	assert.Equal(t, 100, dm.width)
	assert.Equal(t, 40, dm.height)
}

func TestDashboardViewBeforeSize(t *testing.T) {
	m := newDashboard(t)
	assert.Equal(t, "Loading...", m.View())
}

func TestDashboardViewRendersSlots(t *testing.T) {
	m := newDashboard(t)
	require.NoError(t, m.inventoryRepo.Set(model.SlotB1, model.InventoryItem{Name: "Aspirin", Quantity: 30}))

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(refreshMsg{})

	view := m.View()
	assert.Contains(t, view, "Aspirin")
	assert.Contains(t, view, "B1")
	assert.Contains(t, view, "(empty)")
	assert.Contains(t, view, "TalkDoc Dashboard")
}

func TestDashboardMarkReadKey(t *testing.T) {
	m := newDashboard(t)
	require.NoError(t, m.center.Append(model.NewNotification("Time to take your pill", "Aspirin (B1) — 8:00 AM (now)")))

	m.Update(refreshMsg{})
	assert.True(t, m.unread)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.False(t, m.unread)

	unread, err := m.center.Unread()
	require.NoError(t, err)
	assert.False(t, unread)
}

func TestDashboardRefreshKey(t *testing.T) {
	m := newDashboard(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, "Refreshed", m.message)
}
