package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateItemName ConflictType = "duplicate_item_name"
	ConflictInvalidRule       ConflictType = "invalid_rule"
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictMissingItemID     ConflictType = "missing_item_id"
)

// Conflict represents a detected problem in stored items
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Item names involved
	ItemIDs     []string // IDs of items involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates stored items for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateItems checks items for duplicate names, malformed rules, and invalid
// scheduled times. Soft-deleted items are skipped.
func (v *Validator) ValidateItems(items []models.Item) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, item := range items {
		if item.DeletedAt != nil {
			continue
		}

		if item.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingItemID,
				Description: fmt.Sprintf("Item \"%s\" has no ID", item.Name),
				Items:       []string{item.Name},
			})
		}

		if item.Name != "" {
			nameCount[item.Name] = append(nameCount[item.Name], item.ID)
		}

		if item.ScheduledTime != "" {
			if _, err := time.Parse(constants.ClockFormat, item.ScheduledTime); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("Item \"%s\" has invalid scheduled time: %s", item.Name, item.ScheduledTime),
					Items:       []string{item.Name},
					ItemIDs:     []string{item.ID},
				})
			}
		}

		if err := CheckRule(item.Rule); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRule,
				Description: fmt.Sprintf("Item \"%s\" has an invalid rule: %v", item.Name, err),
				Items:       []string{item.Name},
				ItemIDs:     []string{item.ID},
			})
		}
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateItemName,
				Description: fmt.Sprintf("Duplicate item name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				ItemIDs:     ids,
			})
		}
	}

	return result
}

// CheckRule verifies that a rule is internally consistent. The evaluation
// engine tolerates malformed rules by falling back, but stored items should
// never carry one.
func CheckRule(r models.Rule) error {
	switch r.Kind {
	case constants.RuleDaily, constants.RuleWeekday, constants.RuleWeekend, constants.RuleFree:
		return nil
	case constants.RuleCustom:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("custom rule has no weekdays")
		}
		return nil
	case constants.RuleInterval:
		if r.IntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 day, got %d", r.IntervalDays)
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}

// weekdayNames maps lowercase weekday tokens to time.Weekday values. ISO
// numbers are also accepted: 1 is Monday through 7 for Sunday.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated weekday list such as "mon,wed,fri" or
// "1,3,5". The result is deduplicated and sorted Sunday first.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}

		if wd, ok := weekdayNames[token]; ok {
			seen[wd] = true
			continue
		}

		n, err := strconv.Atoi(token)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("unknown weekday %q", token)
		}
		// ISO numbering: 7 wraps to Sunday.
		seen[time.Weekday(n % 7)] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}

	weekdays := make([]time.Weekday, 0, len(seen))
	for wd := range seen {
		weekdays = append(weekdays, wd)
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })
	return weekdays, nil
}

// ParseRule parses a rule specification string from the command line:
// "daily", "weekday", "weekend", "free", "every:N", or "custom:mon,wed,fri".
func ParseRule(spec string) (models.Rule, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")

	switch constants.RuleKind(strings.ToLower(kind)) {
	case constants.RuleDaily:
		return models.Rule{Kind: constants.RuleDaily}, nil
	case constants.RuleWeekday:
		return models.Rule{Kind: constants.RuleWeekday}, nil
	case constants.RuleWeekend:
		return models.Rule{Kind: constants.RuleWeekend}, nil
	case constants.RuleFree:
		return models.Rule{Kind: constants.RuleFree}, nil
	case constants.RuleCustom:
		weekdays, err := ParseWeekdays(arg)
		if err != nil {
			return models.Rule{}, fmt.Errorf("custom rule: %w", err)
		}
		return models.Rule{Kind: constants.RuleCustom, Weekdays: weekdays}, nil
	case constants.RuleInterval, "every":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return models.Rule{}, fmt.Errorf("interval rule needs a day count, got %q", arg)
		}
		if n < 1 {
			return models.Rule{}, fmt.Errorf("interval must be at least 1 day, got %d", n)
		}
		return models.Rule{Kind: constants.RuleInterval, IntervalDays: n}, nil
	default:
		return models.Rule{}, fmt.Errorf("unknown rule %q", spec)
	}
}

// FormatRule renders a rule for display
func FormatRule(r models.Rule) string {
	switch r.Kind {
	case constants.RuleDaily:
		return "every day"
	case constants.RuleWeekday:
		return "weekdays"
	case constants.RuleWeekend:
		return "weekends"
	case constants.RuleFree:
		return "free"
	case constants.RuleCustom:
		if len(r.Weekdays) == 0 {
			return "every day"
		}
		names := make([]string, len(r.Weekdays))
		for i, wd := range r.Weekdays {
			names[i] = wd.String()[:3]
		}
		return strings.Join(names, "/")
	case constants.RuleInterval:
		if r.IntervalDays <= 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", r.IntervalDays)
	default:
		return string(r.Kind)
	}
}
