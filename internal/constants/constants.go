package constants

// RuleKind represents the recurrence rule variant of a check-in item
type RuleKind string

// RecordKind represents what a check-in record captures
type RecordKind string

// DayClass represents the derived classification of a single calendar day
type DayClass string

// Period represents a reporting window for statistics
type Period string

const (
	AppName            = "lifetrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lifetrack/lifetrack.db"
	Version            = "v0.3.0"

	// DayFormat is the standard calendar-date format used throughout the application (YYYY-MM-DD)
	DayFormat = "2006-01-02"

	// MonthFormat is the year-month format used by calendar views (YYYY-MM)
	MonthFormat = "2006-01"

	// ClockFormat is the standard time-of-day format (HH:MM)
	ClockFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifetrack-"
	BackupFileSuffix = ".db"

	// Rule kinds
	RuleDaily    RuleKind = "daily"
	RuleWeekday  RuleKind = "weekday"
	RuleWeekend  RuleKind = "weekend"
	RuleCustom   RuleKind = "custom"
	RuleInterval RuleKind = "interval"
	RuleFree     RuleKind = "free"

	// Record kinds
	RecordCheck RecordKind = "check"
	RecordNote  RecordKind = "note"
	RecordValue RecordKind = "value"

	// Day classifications
	DayCompleted      DayClass = "completed"
	DayMissed         DayClass = "missed"
	DayNotDue         DayClass = "not_due"
	DayBeforeCreation DayClass = "before_creation"
	DayFuture         DayClass = "future"

	// Reporting windows
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)
