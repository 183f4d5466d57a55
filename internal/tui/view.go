package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/rule"
	"github.com/xujingshi/LifeTrack/internal/timeline"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

// logDays is how far back the log tab looks
const logDays = 14

var tabNames = []string{"Today", "Log", "Stats"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateAddItem:
		content = m.viewAddItem()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateLog:
		content = m.viewLog()
	case StateStats:
		content = m.viewStats()
	default:
		content = m.viewToday()
	}

	sections := []string{m.viewTabs(), "", content}
	if m.errMsg != "" {
		sections = append(sections, "", dangerStyle.Render(m.errMsg))
	}
	sections = append(sections, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewTabs() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if SessionState(i) == m.state || (m.state >= tabCount && SessionState(i) == m.previousState) {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewToday() string {
	if len(m.items) == 0 {
		return mutedStyle.Render("No items yet. Press 'a' to add one.")
	}

	now := time.Now()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", now.Format("Monday, January 2")))

	for i, item := range m.items {
		_, checked := m.todayByItem[item.ID]
		due := rule.IsDue(item.Rule, dateutil.Day(item.CreatedAt), dateutil.Day(now))

		marker := "[ ]"
		style := lipgloss.NewStyle()
		switch {
		case checked:
			marker = "[x]"
			style = doneStyle
		case !due:
			marker = " - "
			style = mutedStyle
		}

		line := fmt.Sprintf("%s %s  %s", marker, item.Name, mutedStyle.Render(validation.FormatRule(item.Rule)))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func (m Model) viewLog() string {
	if len(m.items) == 0 {
		return mutedStyle.Render("No items yet.")
	}

	today := time.Now()
	start := today.AddDate(0, 0, -(logDays - 1))

	nameWidth := 0
	for _, item := range m.items {
		if len(item.Name) > nameWidth {
			nameWidth = len(item.Name)
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Last %d days\n\n", logDays))

	// Header marks Mondays with the day of month.
	b.WriteString(strings.Repeat(" ", nameWidth+2))
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Monday {
			b.WriteString(fmt.Sprintf("%2d", d.Day()))
		} else {
			b.WriteString(" .")
		}
	}
	b.WriteString("\n")

	for _, item := range m.items {
		statuses := timeline.Build(item, m.byItem[item.ID], dateutil.Day(start), dateutil.Day(today), dateutil.Day(today))
		b.WriteString(fmt.Sprintf("%-*s  ", nameWidth, item.Name))
		for _, s := range statuses {
			switch s.Class {
			case constants.DayCompleted:
				b.WriteString(doneStyle.Render(" x"))
			case constants.DayMissed:
				b.WriteString(missedStyle.Render(" !"))
			case constants.DayNotDue:
				b.WriteString(mutedStyle.Render(" ."))
			default:
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewStats() string {
	o := m.overall

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Period: %s (p to cycle)\n\n", m.period))
	b.WriteString(fmt.Sprintf("Check-ins:       %d\n", o.TotalCheckIns))
	b.WriteString(fmt.Sprintf("Active days:     %d\n", o.ActiveDays))
	b.WriteString(fmt.Sprintf("Completion rate: %.0f%%\n", o.CompletionRate*100))
	b.WriteString(fmt.Sprintf("Current streak:  %d\n", o.CurrentStreak))
	b.WriteString(fmt.Sprintf("Longest streak:  %d\n", o.LongestStreak))

	if len(o.Rankings) > 0 {
		b.WriteString("\nTop items\n")
		limit := len(o.Rankings)
		if limit > 5 {
			limit = 5
		}
		for i := 0; i < limit; i++ {
			r := o.Rankings[i]
			name := r.ItemName
			if r.Total == 0 {
				b.WriteString(fmt.Sprintf("  %d. %s  %d check-ins\n", i+1, name, r.Completed))
			} else {
				b.WriteString(fmt.Sprintf("  %d. %s  %.0f%% (%d/%d)\n", i+1, name, r.Rate*100, r.Completed, r.Total))
			}
		}
	}

	return b.String()
}

func (m Model) viewAddItem() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}

func (m Model) viewConfirmDelete() string {
	name := m.itemToDeleteID
	for _, item := range m.items {
		if item.ID == m.itemToDeleteID {
			name = item.Name
			break
		}
	}
	return fmt.Sprintf("%s\n\n%s",
		dangerStyle.Render(fmt.Sprintf("Delete %q and its history?", name)),
		"y to confirm, n to cancel")
}
