package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"gorm.io/gorm"
)

const (
	statsWindowDays = 30
	trendWindowDays = 7
	// trendMinSamples is the fewest recent entries that can move the trend off stable.
	trendMinSamples  = 3
	trendDelta       = 0.5
	minHourSamples   = 2
	minDaySamples    = 3
	keywordNoteLimit = 100
	recentJoysLimit  = 5
	streakLookback   = 366
)

var weekdayNames = [7]string{
	"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота",
}

// Substring stems, matched against the lower-cased note.
var (
	positiveKeywords = []string{
		"хорош", "отлич", "счаст", "радост", "рада", "прекрас", "люблю", "весел",
		"спокой", "успе", "благодар", "вдохнов",
		"good", "great", "happy", "love", "calm", "joy", "awesome", "grateful",
	}
	negativeKeywords = []string{
		"плох", "груст", "устал", "тревог", "раздраж", "стресс", "болит", "одинок",
		"депресс", "зло", "печал", "страх",
		"bad", "sad", "tired", "anxious", "stress", "angry", "lonely", "upset",
	}
	neutralKeywords = []string{
		"нормальн", "обычн", "так себе", "ничего особ", "средн",
		"okay", "normal", "fine", "usual", "average",
	}
)

// StatsService folds a user's records into a StatsSummary.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

type moodAggregateRow struct {
	Total    int64
	AvgMood  *float64
	MinMood  *float64
	MaxMood  *float64
	GoodDays int64
}

type periodRow struct {
	Total   int64
	AvgMood *float64
}

type hourRow struct {
	Hour    int
	AvgMood float64
	Samples int64
}

type datedMood struct {
	Date string
	Mood float64
}

type datedNote struct {
	Date string
	Note string
}

// Summarize computes the user's statistics snapshot. All queries share one
// connection, which is returned to the pool before Summarize returns.
func (s *StatsService) Summarize(ctx context.Context, userID uuid.UUID) (*types.StatsSummary, error) {
	today := s.now()
	summary := types.EmptySummary(statsWindowDays)

	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		// Fresh statement per query, same connection.
		conn = conn.Session(&gorm.Session{NewDB: true})

		steps := []struct {
			name string
			run  func(*gorm.DB, uuid.UUID, time.Time, *types.StatsSummary) error
		}{
			{"window", aggregateWindow},
			{"trend", aggregateTrend},
			{"hours", aggregateHours},
			{"weekdays", aggregateWeekdays},
			{"keywords", aggregateKeywords},
			{"joys", aggregateJoys},
			{"cycle", aggregateCycle},
			{"streak", aggregateStreak},
		}
		for _, step := range steps {
			if err := step.run(conn, userID, today, summary); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	summary.MoodScore = ComputeMoodScore(summary)
	return summary, nil
}

func aggregateWindow(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	var row moodAggregateRow
	err := conn.Raw(`
		SELECT
			COUNT(*) AS total,
			AVG(mood) AS avg_mood,
			MIN(mood) AS min_mood,
			MAX(mood) AS max_mood,
			COUNT(CASE WHEN mood >= ? THEN 1 END) AS good_days
		FROM mood_entries
		WHERE user_id = ? AND date >= ? AND date <= ?`,
		models.GoodMoodThreshold, userID, daysBefore(today, statsWindowDays-1), daysBefore(today, 0)).Scan(&row).Error
	if err != nil {
		return err
	}

	sum.TotalEntries = row.Total
	sum.AvgMood = round1(deref(row.AvgMood))
	sum.MinMood = deref(row.MinMood)
	sum.MaxMood = deref(row.MaxMood)
	sum.GoodDays = row.GoodDays
	return nil
}

func aggregateTrend(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	recent, err := periodAverage(conn, userID, daysBefore(today, trendWindowDays-1), daysBefore(today, 0))
	if err != nil {
		return err
	}
	prior, err := periodAverage(conn, userID, daysBefore(today, 2*trendWindowDays-1), daysBefore(today, trendWindowDays))
	if err != nil {
		return err
	}

	sum.RecentCount = recent.Total
	sum.RecentAvg = round1(deref(recent.AvgMood))
	sum.PreviousAvg = round1(deref(prior.AvgMood))
	sum.Trend = classifyTrend(recent, prior)
	return nil
}

func periodAverage(conn *gorm.DB, userID uuid.UUID, from, to string) (periodRow, error) {
	var row periodRow
	err := conn.Raw(`
		SELECT COUNT(*) AS total, AVG(mood) AS avg_mood
		FROM mood_entries
		WHERE user_id = ? AND date >= ? AND date <= ?`, userID, from, to).Scan(&row).Error
	return row, err
}

func classifyTrend(recent, prior periodRow) types.Trend {
	if recent.Total < trendMinSamples || prior.Total == 0 {
		return types.TrendStable
	}
	delta := deref(recent.AvgMood) - deref(prior.AvgMood)
	switch {
	case delta >= trendDelta:
		return types.TrendImproving
	case delta <= -trendDelta:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

func aggregateHours(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	var rows []hourRow
	err := conn.Raw(`
		SELECT hour, AVG(mood) AS avg_mood, COUNT(*) AS samples
		FROM hourly_moods
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY hour
		HAVING COUNT(*) >= ?
		ORDER BY hour`, userID, daysBefore(today, statsWindowDays-1), daysBefore(today, 0), minHourSamples).Scan(&rows).Error
	if err != nil {
		return err
	}

	// Compare unrounded averages; only the reported value is rounded.
	var best, worst *hourRow
	for i := range rows {
		r := &rows[i]
		if best == nil || r.AvgMood > best.AvgMood {
			best = r
		}
		if worst == nil || r.AvgMood < worst.AvgMood {
			worst = r
		}
	}
	if best != nil {
		sum.BestHour = &types.HourBucket{Hour: best.Hour, AvgMood: round1(best.AvgMood), Count: best.Samples}
		sum.WorstHour = &types.HourBucket{Hour: worst.Hour, AvgMood: round1(worst.AvgMood), Count: worst.Samples}
	}
	return nil
}

// aggregateWeekdays groups in Go since weekday extraction differs per SQL dialect.
func aggregateWeekdays(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	var rows []datedMood
	err := conn.Model(&models.MoodEntry{}).
		Select("date", "mood").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, daysBefore(today, statsWindowDays-1), daysBefore(today, 0)).
		Scan(&rows).Error
	if err != nil {
		return err
	}

	var totals [7]float64
	var counts [7]int64
	for _, r := range rows {
		d, err := types.ParseDate(r.Date)
		if err != nil {
			continue
		}
		wd := d.Weekday()
		totals[wd] += r.Mood
		counts[wd]++
	}

	best, worst := -1, -1
	var avgs [7]float64
	for wd := range totals {
		if counts[wd] < minDaySamples {
			continue
		}
		avgs[wd] = totals[wd] / float64(counts[wd])
		if best < 0 || avgs[wd] > avgs[best] {
			best = wd
		}
		if worst < 0 || avgs[wd] < avgs[worst] {
			worst = wd
		}
	}
	if best >= 0 {
		sum.BestDay = dayBucket(best, avgs[best], counts[best])
		sum.WorstDay = dayBucket(worst, avgs[worst], counts[worst])
	}
	return nil
}

func dayBucket(wd int, avg float64, count int64) *types.DayBucket {
	return &types.DayBucket{
		Weekday: wd,
		Name:    weekdayNames[wd],
		AvgMood: round1(avg),
		Count:   count,
	}
}

func aggregateKeywords(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	var notes []datedNote
	err := conn.Model(&models.MoodEntry{}).
		Select("date", "note").
		Where("user_id = ? AND note IS NOT NULL AND note <> ''", userID).
		Order("date DESC").
		Limit(keywordNoteLimit).
		Scan(&notes).Error
	if err != nil {
		return err
	}

	recentFrom := daysBefore(today, trendWindowDays-1)
	stats := types.KeywordStats{}
	for _, n := range notes {
		tally := ClassifyNote(n.Note)
		stats.KeywordTally.Add(tally)
		if n.Date >= recentFrom {
			stats.Recent.Add(tally)
		} else {
			stats.Older.Add(tally)
		}
	}
	stats.NotesScanned = len(notes)
	sum.Keywords = stats
	return nil
}

// ClassifyNote reports which keyword categories occur in note. Each category
// counts at most once, and a note may hit several categories.
func ClassifyNote(note string) types.KeywordTally {
	text := strings.ToLower(note)
	var t types.KeywordTally
	if containsAny(text, positiveKeywords) {
		t.Positive = 1
	}
	if containsAny(text, negativeKeywords) {
		t.Negative = 1
	}
	if containsAny(text, neutralKeywords) {
		t.Neutral = 1
	}
	return t
}

func containsAny(text string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(text, stem) {
			return true
		}
	}
	return false
}

func aggregateJoys(conn *gorm.DB, userID uuid.UUID, _ time.Time, sum *types.StatsSummary) error {
	var count int64
	if err := conn.Model(&models.Joy{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	recent := []string{}
	if err := conn.Model(&models.Joy{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(recentJoysLimit).
		Pluck("text", &recent).Error; err != nil {
		return err
	}
	sum.Joys = types.JoyStats{Count: count, Recent: recent}
	return nil
}

func aggregateCycle(conn *gorm.DB, userID uuid.UUID, _ time.Time, sum *types.StatsSummary) error {
	var user models.User
	err := conn.Select("id", "gender").Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !user.IsFemale() {
		return nil
	}

	var row periodRow
	if err := conn.Raw(`
		SELECT COUNT(*) AS total, AVG(mood) AS avg_mood
		FROM cycle_entries
		WHERE user_id = ?`, userID).Scan(&row).Error; err != nil {
		return err
	}
	sum.Cycle = &types.CycleSummary{Entries: row.Total, AvgMood: round1(deref(row.AvgMood))}
	return nil
}

// aggregateStreak counts consecutive logged days ending today, or ending
// yesterday while today is still open.
func aggregateStreak(conn *gorm.DB, userID uuid.UUID, today time.Time, sum *types.StatsSummary) error {
	var dates []string
	if err := conn.Model(&models.MoodEntry{}).
		Where("user_id = ? AND date <= ?", userID, daysBefore(today, 0)).
		Order("date DESC").
		Limit(streakLookback).
		Pluck("date", &dates).Error; err != nil {
		return err
	}
	sum.CurrentStreak = currentStreak(dates, today)
	return nil
}

func currentStreak(datesDesc []string, today time.Time) int {
	offset := 0
	if len(datesDesc) > 0 && datesDesc[0] != daysBefore(today, 0) {
		offset = 1
	}
	streak := 0
	for _, d := range datesDesc {
		if d != daysBefore(today, streak+offset) {
			break
		}
		streak++
	}
	return streak
}

// ComputeMoodScore blends average mood, trend, good-day ratio and note
// sentiment into a 0-100 score.
func ComputeMoodScore(s *types.StatsSummary) int {
	score := math.Max(0, math.Min(50, s.AvgMood*5))

	switch s.Trend {
	case types.TrendImproving:
		score += 20
	case types.TrendDeclining:
		score += 5
	default:
		score += 10
	}

	if s.TotalEntries > 0 {
		score += math.Min(20, float64(s.GoodDays)/float64(s.TotalEntries)*20)
	}

	switch {
	case s.Keywords.Positive > s.Keywords.Negative:
		score += 10
	case s.Keywords.Positive == s.Keywords.Negative:
		score += 5
	}

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

func daysBefore(today time.Time, n int) string {
	return types.FormatDate(today.AddDate(0, 0, -n))
}
