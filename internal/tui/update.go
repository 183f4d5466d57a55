package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

var errEmptyName = errors.New("name cannot be empty")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateAddItem:
			return m.updateAddItem(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	if m.state == StateAddItem && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Period):
		switch m.period {
		case constants.PeriodWeek:
			m.period = constants.PeriodMonth
		case constants.PeriodMonth:
			m.period = constants.PeriodYear
		default:
			m.period = constants.PeriodWeek
		}
		m.reload()

	case key.Matches(msg, m.keys.Toggle):
		if m.state == StateToday {
			m.toggleToday()
		}

	case key.Matches(msg, m.keys.Add):
		m.itemForm = &ItemFormModel{Rule: "daily", Kind: "check"}
		m.form = newItemForm(m.itemForm)
		m.previousState = m.state
		m.state = StateAddItem
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if m.state == StateToday && m.cursor < len(m.items) {
			m.itemToDeleteID = m.items[m.cursor].ID
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateAddItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.addItemFromForm()
		m.state = m.previousState
		m.form = nil
	}

	return m, cmd
}

func (m *Model) addItemFromForm() {
	rule, err := validation.ParseRule(m.itemForm.Rule)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	settings, _ := m.store.GetSettings()
	item := models.Item{
		ID:         uuid.New().String(),
		OwnerID:    settings.OwnerID,
		Name:       m.itemForm.Name,
		Rule:       rule,
		RecordKind: constants.RecordKind(m.itemForm.Kind),
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := m.store.AddItem(item); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.reload()
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.store.DeleteItem(m.itemToDeleteID); err != nil {
			m.errMsg = err.Error()
		}
		m.itemToDeleteID = ""
		m.state = m.previousState
		m.reload()
	case "n", "N", "esc", "q":
		m.itemToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

// toggleToday flips the current item's check-in for today
func (m *Model) toggleToday() {
	if m.cursor >= len(m.items) {
		return
	}
	item := m.items[m.cursor]
	today := dateutil.FormatDay(time.Now())

	if _, checked := m.todayByItem[item.ID]; checked {
		if err := m.store.DeleteRecord(item.ID, today); err != nil {
			m.errMsg = err.Error()
			return
		}
	} else {
		record := models.Record{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Day:       today,
			CreatedAt: time.Now().UTC(),
		}
		if err := m.store.SaveRecord(record); err != nil {
			m.errMsg = err.Error()
			return
		}
	}

	m.reload()
}
