package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/parser"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	inventory     model.Inventory
	reminders     []*model.Reminder
	notifications []*model.Notification
	unread        bool

	// Repositories
	inventoryRepo *storage.InventoryRepo
	reminderRepo  *storage.ReminderRepo
	center        *notify.Center

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval  time.Duration
	maxNotifications int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	InventoryRepo    *storage.InventoryRepo
	ReminderRepo     *storage.ReminderRepo
	Center           *notify.Center
	RefreshInterval  time.Duration
	MaxNotifications int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.MaxNotifications == 0 {
		config.MaxNotifications = 5
	}

	return &DashboardModel{
		inventoryRepo:    config.InventoryRepo,
		reminderRepo:     config.ReminderRepo,
		center:           config.Center,
		refreshInterval:  config.RefreshInterval,
		maxNotifications: config.MaxNotifications,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		// The reminder daemon may have fired; pick up new notifications
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil

	case "n":
		if err := m.center.MarkAllRead(); err != nil {
			m.err = err
		} else {
			m.setMessage("Notifications marked read", 2*time.Second)
			m.loadData()
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, m.renderSlots())
	sections = append(sections, m.renderReminders())
	sections = append(sections, m.renderNotifications())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header with the unread badge.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("TalkDoc Dashboard")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	timeStr := StyleSubtitle.Render(now)

	parts := []string{title, "  ", timeStr}
	if m.unread {
		parts = append(parts, "  ", StyleUnread.Render("● new notifications"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

// renderSlots renders the 8 dispenser slots as two rows of four.
func (m *DashboardModel) renderSlots() string {
	renderRow := func(slots []model.Slot) string {
		boxes := make([]string, 0, len(slots))
		for _, slot := range slots {
			item := m.inventory[slot]
			label := StyleSlotLabel.Render(string(slot))
			var body string
			box := StyleSlotBox
			if item == nil {
				body = StyleEmpty.Render("(empty)")
			} else {
				body = StyleItem.Render(item.Name) + "\n" +
					StyleSubtitle.Render(fmt.Sprintf("qty %d", item.Quantity))
				box = StyleFilledSlotBox
			}
			boxes = append(boxes, box.Render(label+"\n"+body))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}

	top := renderRow([]model.Slot{model.SlotT1, model.SlotT2, model.SlotT3, model.SlotT4})
	bottom := renderRow([]model.Slot{model.SlotB1, model.SlotB2, model.SlotB3, model.SlotB4})
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// renderReminders renders the reminder list.
func (m *DashboardModel) renderReminders() string {
	content := StyleTitle.Render("Reminders") + "\n"
	if len(m.reminders) == 0 {
		content += StyleSubtitle.Render("No reminders.")
	} else {
		for _, r := range m.reminders {
			days := ""
			for i, d := range r.Days {
				if i > 0 {
					days += ","
				}
				days += string(d)
			}
			times := ""
			for i, t := range r.Times {
				if i > 0 {
					times += ", "
				}
				times += parser.ToAmPm(t)
			}
			content += fmt.Sprintf("%s %s  %s  %s\n",
				StyleItem.Render(r.ItemName),
				StyleSubtitle.Render("("+string(r.Slot)+")"),
				days, times)
		}
	}
	return StyleSectionBox.Render(content)
}

// renderNotifications renders the most recent notifications.
func (m *DashboardModel) renderNotifications() string {
	content := StyleTitle.Render("Notifications") + "\n"
	if len(m.notifications) == 0 {
		content += StyleSubtitle.Render("Nothing yet.")
	} else {
		shown := m.notifications
		if len(shown) > m.maxNotifications {
			shown = shown[:m.maxNotifications]
		}
		for _, n := range shown {
			marker := "  "
			if !n.Read {
				marker = StyleUnread.Render("● ")
			}
			content += fmt.Sprintf("%s%s  %s\n", marker,
				StyleSubtitle.Render(n.CreatedAt.Local().Format("15:04")),
				n.Body)
		}
	}
	return StyleSectionBox.Render(content)
}

// loadData loads all data from repositories.
func (m *DashboardModel) loadData() {
	m.inventory = m.inventoryRepo.Load()

	reminders, err := m.reminderRepo.List()
	if err != nil {
		m.err = err
		return
	}
	m.reminders = reminders

	notifications, err := m.center.List()
	if err != nil {
		m.err = err
		return
	}
	m.notifications = notifications

	unread, err := m.center.Unread()
	if err != nil {
		m.err = err
		return
	}
	m.unread = unread

	m.err = nil
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
