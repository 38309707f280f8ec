package output

import (
	"time"

	"github.com/masonpham16/TalkDoc/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintError writes an ErrorResponse.
func (j *JSONFormatter) PrintError(status, message, suggestion string) error {
	return j.JSON(&ErrorResponse{
		Status:     status,
		Error:      message,
		Suggestion: suggestion,
	})
}

// SlotOutput represents one slot in JSON output.
type SlotOutput struct {
	Slot     model.Slot `json:"slot"`
	Name     string     `json:"name,omitempty"`
	Quantity int        `json:"quantity,omitempty"`
	Empty    bool       `json:"empty"`
}

// InventoryResponse represents the inventory in JSON.
type InventoryResponse struct {
	Slots []SlotOutput `json:"slots"`
}

// NewInventoryResponse creates an InventoryResponse with all 8 slots
// in display order.
func NewInventoryResponse(inv model.Inventory) *InventoryResponse {
	out := &InventoryResponse{Slots: make([]SlotOutput, 0, len(model.Slots()))}
	for _, slot := range model.Slots() {
		item := inv[slot]
		if item == nil {
			out.Slots = append(out.Slots, SlotOutput{Slot: slot, Empty: true})
			continue
		}
		out.Slots = append(out.Slots, SlotOutput{
			Slot:     slot,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}
	return out
}

// ReminderOutput represents a reminder in JSON output.
type ReminderOutput struct {
	ID        string      `json:"id"`
	Slot      model.Slot  `json:"slot"`
	ItemName  string      `json:"item_name"`
	Days      []model.Day `json:"days"`
	Times     []string    `json:"times"`
	CreatedAt string      `json:"created_at"`
}

// NewReminderOutput creates a ReminderOutput from a Reminder.
func NewReminderOutput(r *model.Reminder) *ReminderOutput {
	return &ReminderOutput{
		ID:        r.ID(),
		Slot:      r.Slot,
		ItemName:  r.ItemName,
		Days:      r.Days,
		Times:     r.Times,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// RemindersResponse represents the reminder list in JSON.
type RemindersResponse struct {
	Reminders []*ReminderOutput `json:"reminders"`
	Count     int               `json:"count"`
}

// NewRemindersResponse creates a RemindersResponse.
func NewRemindersResponse(reminders []*model.Reminder) *RemindersResponse {
	out := make([]*ReminderOutput, len(reminders))
	for i, r := range reminders {
		out[i] = NewReminderOutput(r)
	}
	return &RemindersResponse{Reminders: out, Count: len(out)}
}

// NotificationOutput represents a notification in JSON output.
type NotificationOutput struct {
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	CreatedAt string                  `json:"created_at"`
	Read      bool                    `json:"read"`
	Meta      *model.NotificationMeta `json:"meta,omitempty"`
}

// NotificationsResponse represents the notification log in JSON.
type NotificationsResponse struct {
	Notifications []*NotificationOutput `json:"notifications"`
	Count         int                   `json:"count"`
	Unread        bool                  `json:"unread"`
}

// NewNotificationsResponse creates a NotificationsResponse.
func NewNotificationsResponse(notifications []*model.Notification, unread bool) *NotificationsResponse {
	out := make([]*NotificationOutput, len(notifications))
	for i, n := range notifications {
		out[i] = &NotificationOutput{
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
			Read:      n.Read,
			Meta:      n.Meta,
		}
	}
	return &NotificationsResponse{Notifications: out, Count: len(out), Unread: unread}
}

// DispenseOutput represents a dispense result in JSON.
type DispenseOutput struct {
	Status string     `json:"status"`
	Slot   model.Slot `json:"slot"`
	Angle  int        `json:"angle"`
}

// ChatOutput represents a chat reply in JSON.
type ChatOutput struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// StatusOutput represents a generic success in JSON.
type StatusOutput struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
