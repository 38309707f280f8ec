package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/model"
)

func newBufferFormatter() (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter()
	f.Writer = &buf
	f.ColorMode = ColorNever
	return f, &buf
}

func TestIsColorEnabled(t *testing.T) {
	f, _ := newBufferFormatter()

	f.ColorMode = ColorAlways
	assert.True(t, f.IsColorEnabled())

	f.ColorMode = ColorNever
	assert.False(t, f.IsColorEnabled())

	// Auto with a non-file writer is off
	f.ColorMode = ColorAuto
	assert.False(t, f.IsColorEnabled())
}

func TestCLIMessages(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.Success("saved")
	cli.Error("broken")
	cli.Warning("careful")

	out := buf.String()
	assert.Contains(t, out, "✓ saved")
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "⚠ careful")
}

func TestPrintInventory(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	inv := model.EmptyInventory()
	inv[model.SlotB1] = &model.InventoryItem{Name: "Aspirin", Quantity: 30}

	cli.PrintInventory(inv)

	out := buf.String()
	assert.Contains(t, out, "Aspirin")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "(empty)")
	for _, slot := range model.Slots() {
		assert.Contains(t, out, string(slot))
	}
}

func TestPrintReminders(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintReminders([]*model.Reminder{
		{
			Key:      model.GenerateReminderKey("abcdef12-uuid"),
			Slot:     model.SlotT3,
			ItemName: "Metformin",
			Days:     []model.Day{model.Mon, model.Fri},
			Times:    []string{"08:00", "20:30"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "abcdef")
	assert.Contains(t, out, "T3")
	assert.Contains(t, out, "Metformin")
	assert.Contains(t, out, "Mon,Fri")
	assert.Contains(t, out, "8:00 AM, 8:30 PM")
}

func TestPrintRemindersEmpty(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintReminders(nil)
	assert.Contains(t, buf.String(), "No reminders.")
}

func TestPrintNotifications(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	unread := model.NewNotification("Time to take your pill", "Aspirin (B1) — 8:00 AM (now)")
	read := model.NewNotification("Reminder scheduled", "Aspirin (B1) — Mon @ 8:00 AM")
	read.Read = true

	cli.PrintNotifications([]*model.Notification{unread, read})

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "●"), "unread entries are marked")
	assert.True(t, strings.HasPrefix(lines[2], " "), "read entries are not")
}

func TestNewInventoryResponse(t *testing.T) {
	inv := model.EmptyInventory()
	inv[model.SlotB2] = &model.InventoryItem{Name: "Ibuprofen", Quantity: 12}

	resp := NewInventoryResponse(inv)
	require.Len(t, resp.Slots, 8)
	assert.True(t, resp.Slots[0].Empty)
	assert.Equal(t, model.SlotB2, resp.Slots[1].Slot)
	assert.Equal(t, "Ibuprofen", resp.Slots[1].Name)
	assert.False(t, resp.Slots[1].Empty)
}

func TestNewRemindersResponse(t *testing.T) {
	resp := NewRemindersResponse([]*model.Reminder{
		{
			Key:       model.GenerateReminderKey("id-1"),
			Slot:      model.SlotB1,
			ItemName:  "Aspirin",
			Days:      []model.Day{model.Mon},
			Times:     []string{"08:00"},
			CreatedAt: time.Now(),
		},
	})
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "id-1", resp.Reminders[0].ID)
}

func TestFormatRelative(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", FormatRelative(now))
	assert.Equal(t, "5m ago", FormatRelative(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", FormatRelative(now.Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", FormatRelative(now.Add(-49*time.Hour)))
}
