package types

// Trend classifies the last week's average mood against the week before.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// HourBucket is the average mood for one hour of the day.
type HourBucket struct {
	Hour    int     `json:"hour"`
	AvgMood float64 `json:"avg_mood"`
	Count   int64   `json:"count"`
}

// DayBucket is the average mood for one day of the week.
type DayBucket struct {
	Weekday int     `json:"weekday"` // 0 = Sunday, matching time.Weekday
	Name    string  `json:"name"`
	AvgMood float64 `json:"avg_mood"`
	Count   int64   `json:"count"`
}

type KeywordTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Add merges o into t.
func (t *KeywordTally) Add(o KeywordTally) {
	t.Positive += o.Positive
	t.Negative += o.Negative
	t.Neutral += o.Neutral
}

type KeywordStats struct {
	KeywordTally
	Recent KeywordTally `json:"recent"`
	Older  KeywordTally `json:"older"`
	// NotesScanned is the number of note-bearing entries inspected.
	NotesScanned int `json:"notes_scanned"`
}

type JoyStats struct {
	Count  int64    `json:"count"`
	Recent []string `json:"recent"`
}

type CycleSummary struct {
	Entries int64   `json:"entries"`
	AvgMood float64 `json:"avg_mood"`
}

// StatsSummary is the snapshot behind the mood score, the insights and the chat context.
type StatsSummary struct {
	WindowDays    int           `json:"window_days"`
	TotalEntries  int64         `json:"total_entries"`
	AvgMood       float64       `json:"avg_mood"`
	MinMood       float64       `json:"min_mood"`
	MaxMood       float64       `json:"max_mood"`
	GoodDays      int64         `json:"good_days"`
	CurrentStreak int           `json:"current_streak"`
	Trend         Trend         `json:"trend"`
	RecentAvg     float64       `json:"recent_avg"`
	PreviousAvg   float64       `json:"previous_avg"`
	RecentCount   int64         `json:"recent_count"`
	BestHour      *HourBucket   `json:"best_hour"`
	WorstHour     *HourBucket   `json:"worst_hour"`
	BestDay       *DayBucket    `json:"best_day"`
	WorstDay      *DayBucket    `json:"worst_day"`
	Keywords      KeywordStats  `json:"keywords"`
	Joys          JoyStats      `json:"joys"`
	Cycle         *CycleSummary `json:"cycle"`
	MoodScore     int           `json:"mood_score"`
}

// EmptySummary is the zeroed summary used when statistics are unavailable.
func EmptySummary(windowDays int) *StatsSummary {
	return &StatsSummary{
		WindowDays: windowDays,
		Trend:      TrendStable,
		Joys:       JoyStats{Recent: []string{}},
	}
}

type InsightsResponse struct {
	Insights  []string `json:"insights"`
	MoodScore int      `json:"mood_score"`
}

const (
	ChatSourceLLM      = "llm"
	ChatSourceFallback = "fallback"
)

type ChatResponse struct {
	Response string `json:"response"`
	Source   string `json:"source"`
}
