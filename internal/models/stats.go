package models

// TrendPoint is one day's slice of a trend series. Value carries the recorded
// numeric value for numeric items in per-item statistics, nil otherwise.
type TrendPoint struct {
	Day       string   `json:"day"`
	Completed int      `json:"completed"`
	Due       int      `json:"due"`
	Value     *float64 `json:"value,omitempty"`
}

// ItemRanking is one item's row in the completion-rate ranking list
type ItemRanking struct {
	ItemID    string  `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Completed int     `json:"completed_count"`
	Total     int     `json:"total_count"`
	Rate      float64 `json:"completion_rate"`
}

// OverallStats aggregates all of an owner's items over a reporting window
type OverallStats struct {
	TotalCheckIns       int           `json:"total_check_ins"`
	ActiveDays          int           `json:"active_days"`
	CompletionRate      float64       `json:"completion_rate"`
	CurrentStreak       int           `json:"current_streak"`
	LongestStreak       int           `json:"longest_streak"`
	BestWeekday         int           `json:"best_weekday"` // 0 = Sunday
	WeekdayDistribution [7]int        `json:"weekday_distribution"`
	Trend               []TrendPoint  `json:"trend_data"`
	Rankings            []ItemRanking `json:"item_rankings"`
}

// ItemStats is the detailed statistics view of a single item over a window
type ItemStats struct {
	Period         string       `json:"period"`
	DueDays        int          `json:"due_days"`
	CompletedDays  int          `json:"completed_days"`
	CompletionRate float64      `json:"completion_rate"`
	CurrentStreak  int          `json:"current_streak"`
	LongestStreak  int          `json:"longest_streak"`
	BestWeekday    int          `json:"best_weekday"` // 0 = Sunday, -1 when no completions
	Trend          []TrendPoint `json:"trend_data"`
	AvgValue       *float64     `json:"avg_value,omitempty"`
	MaxValue       *float64     `json:"max_value,omitempty"`
	MinValue       *float64     `json:"min_value,omitempty"`
}
