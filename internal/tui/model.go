package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/stats"
	"github.com/xujingshi/LifeTrack/internal/storage"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateLog
	StateStats
	StateAddItem
	StateConfirmDelete
)

// tabCount is the number of cycle-able top-level tabs
const tabCount = 3

type ItemFormModel struct {
	Name string
	Rule string
	Kind string
}

type Model struct {
	store         storage.Provider
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	items       []models.Item
	todayByItem map[string]models.Record
	byItem      map[string][]models.Record
	cursor      int

	period  constants.Period
	overall models.OverallStats

	form     *huh.Form
	itemForm *ItemFormModel

	itemToDeleteID string

	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store:  store,
		state:  StateToday,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		period: constants.PeriodWeek,
	}

	if settings, err := store.GetSettings(); err == nil && settings.DefaultPeriod != "" {
		m.period = constants.Period(settings.DefaultPeriod)
	}

	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload refreshes items, records, and statistics from the store
func (m *Model) reload() {
	m.errMsg = ""

	items, err := m.store.GetAllItems(false)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}

	today := dateutil.FormatDay(time.Now())
	m.todayByItem = make(map[string]models.Record)
	if records, err := m.store.GetRecordsForDay(today); err == nil {
		for _, r := range records {
			m.todayByItem[r.ItemID] = r
		}
	}

	m.byItem = make(map[string][]models.Record)
	if records, err := m.store.GetAllRecords(); err == nil {
		for _, r := range records {
			m.byItem[r.ItemID] = append(m.byItem[r.ItemID], r)
		}
	}

	m.overall = stats.Overall(m.items, m.byItem, m.period, time.Now())
}

// newItemForm builds the huh form used by the add-item state
func newItemForm(f *ItemFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if s == "" {
						return errEmptyName
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Rule").
				Options(
					huh.NewOption("Every day", "daily"),
					huh.NewOption("Weekdays", "weekday"),
					huh.NewOption("Weekends", "weekend"),
					huh.NewOption("Free (no schedule)", "free"),
					huh.NewOption("Every 2 days", "every:2"),
					huh.NewOption("Every 3 days", "every:3"),
				).
				Value(&f.Rule),
			huh.NewSelect[string]().
				Title("Record kind").
				Options(
					huh.NewOption("Simple check", "check"),
					huh.NewOption("Check with note", "note"),
					huh.NewOption("Numeric value", "value"),
				).
				Value(&f.Kind),
		),
	)
}
