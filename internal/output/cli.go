package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/parser"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#2EB8A6") // Teal
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleItem = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleUnread = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// ItemName formats an inventory item name.
func (c *CLIFormatter) ItemName(name string) string {
	if c.IsColorEnabled() {
		return styleItem.Render(name)
	}
	return name
}

// PrintInventory prints the full 8-slot inventory.
func (c *CLIFormatter) PrintInventory(inv model.Inventory) {
	rows := make([]TableRow, 0, len(model.Slots()))
	for _, slot := range model.Slots() {
		item := inv[slot]
		if item == nil {
			rows = append(rows, TableRow{Columns: []string{string(slot), "(empty)", ""}})
			continue
		}
		rows = append(rows, TableRow{Columns: []string{
			string(slot), item.Name, fmt.Sprintf("%d", item.Quantity),
		}})
	}
	c.PrintTable([]string{"SLOT", "ITEM", "QTY"}, rows)
}

// PrintReminders prints a reminder list.
func (c *CLIFormatter) PrintReminders(reminders []*model.Reminder) {
	if len(reminders) == 0 {
		c.Muted("No reminders.")
		c.Muted("Use 'talkdoc remind add --slot <slot> --day <day> --time <time>' to create one.")
		return
	}

	rows := make([]TableRow, 0, len(reminders))
	for _, r := range reminders {
		days := make([]string, len(r.Days))
		for i, d := range r.Days {
			days[i] = string(d)
		}
		times := make([]string, len(r.Times))
		for i, t := range r.Times {
			times[i] = parser.ToAmPm(t)
		}
		rows = append(rows, TableRow{Columns: []string{
			r.ShortID(),
			string(r.Slot),
			r.ItemName,
			strings.Join(days, ","),
			strings.Join(times, ", "),
		}})
	}
	c.PrintTable([]string{"ID", "SLOT", "ITEM", "DAYS", "TIMES"}, rows)
}

// PrintNotifications prints the notification log, newest first.
func (c *CLIFormatter) PrintNotifications(notifications []*model.Notification) {
	if len(notifications) == 0 {
		c.Muted("No notifications.")
		return
	}

	for _, n := range notifications {
		marker := " "
		title := n.Title
		if !n.Read {
			marker = "●"
			if c.IsColorEnabled() {
				title = styleUnread.Render(title)
			}
		}
		c.Printf("%s %s  %s\n", marker, FormatTimeShort(n.CreatedAt), title)
		c.Printf("    %s\n", truncate(n.Body, terminalWidth()-4))
	}
}

// terminalWidth returns the width of the attached terminal, or 80 when
// output is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// PrintDispensed prints the result of a dispense request.
func (c *CLIFormatter) PrintDispensed(slot model.Slot, angle int) {
	c.Success(fmt.Sprintf("Dispensed slot %s (rotated to %d°)", slot, angle))
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(headerLine.String()))
	} else {
		c.Println(headerLine.String())
	}

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}
