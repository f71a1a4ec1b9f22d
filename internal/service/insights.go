package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

const (
	lowMoodThreshold  = 5.0
	highMoodThreshold = 7.0
	fewEntries        = 7
)

type tip struct {
	text     string
	eligible func(s *types.StatsSummary) bool
}

func always(*types.StatsSummary) bool { return true }

var wellnessTips = []tip{
	{"Попробуйте короткую прогулку на свежем воздухе: даже 15 минут заметно поднимают настроение.", func(s *types.StatsSummary) bool {
		return s.TotalEntries > 0 && s.AvgMood < lowMoodThreshold
	}},
	{"Если тяжело уже несколько дней подряд, поговорите с близким человеком или специалистом.", func(s *types.StatsSummary) bool {
		return s.TotalEntries > 0 && s.AvgMood < lowMoodThreshold
	}},
	{"Настроение снижается. Запланируйте на эту неделю одно маленькое приятное дело.", func(s *types.StatsSummary) bool {
		return s.Trend == types.TrendDeclining
	}},
	{"В заметках больше тревожных слов. Перед сном запишите три вещи, за которые вы благодарны.", func(s *types.StatsSummary) bool {
		return s.Keywords.Negative > s.Keywords.Positive
	}},
	{"Отмечайте настроение каждый день: через неделю статистика станет точнее.", func(s *types.StatsSummary) bool {
		return s.TotalEntries < fewEntries
	}},
	{"Старайтесь ложиться спать в одно и то же время: режим сна сильно влияет на самочувствие.", always},
	{"Выпейте стакан воды и сделайте пару глубоких вдохов. Простые вещи работают.", always},
	{"Запишите в дневник радостей хотя бы один приятный момент сегодняшнего дня.", always},
	{"Небольшая физическая активность помогает снять напряжение и улучшить сон.", always},
}

// RenderInsights turns a summary into readable sentences. The section order is
// fixed; only the closing tip is drawn through c.
func RenderInsights(s *types.StatsSummary, c Chooser) []string {
	if s.TotalEntries == 0 {
		return []string{
			"Пока недостаточно данных. Отмечайте настроение каждый день, и здесь появятся персональные наблюдения.",
			chooseTip(s, c),
		}
	}

	var out []string
	out = append(out, averageInsight(s))
	out = append(out, trendInsight(s))

	if s.BestHour != nil && s.WorstHour != nil && s.BestHour.Hour != s.WorstHour.Hour {
		out = append(out, fmt.Sprintf(
			"Лучшее время дня: около %02d:00 (в среднем %.1f). Сложнее всего около %02d:00 (%.1f).",
			s.BestHour.Hour, s.BestHour.AvgMood, s.WorstHour.Hour, s.WorstHour.AvgMood))
	}
	if s.BestDay != nil && s.WorstDay != nil && s.BestDay.Weekday != s.WorstDay.Weekday {
		out = append(out, fmt.Sprintf(
			"Самый удачный день недели: %s (%.1f), самый трудный: %s (%.1f).",
			s.BestDay.Name, s.BestDay.AvgMood, s.WorstDay.Name, s.WorstDay.AvgMood))
	}
	if line := keywordInsight(s.Keywords); line != "" {
		out = append(out, line)
	}
	out = append(out, scoreInsight(s.MoodScore))

	if s.Cycle != nil && s.Cycle.Entries > 0 {
		line := fmt.Sprintf("В дневнике цикла %d записей", s.Cycle.Entries)
		if s.Cycle.AvgMood > 0 {
			line += fmt.Sprintf(", среднее настроение в эти дни %.1f", s.Cycle.AvgMood)
		}
		out = append(out, line+".")
	}
	if s.Joys.Count > 0 {
		line := fmt.Sprintf("Вы записали %d радостей.", s.Joys.Count)
		if len(s.Joys.Recent) > 0 {
			line += fmt.Sprintf(" Последняя: «%s».", s.Joys.Recent[0])
		}
		out = append(out, line)
	}

	return append(out, chooseTip(s, c))
}

func averageInsight(s *types.StatsSummary) string {
	base := fmt.Sprintf("За последние %d дней: %d записей, среднее настроение %.1f из 10.",
		s.WindowDays, s.TotalEntries, s.AvgMood)
	switch {
	case s.AvgMood >= highMoodThreshold:
		return base + " Отличный результат!"
	case s.AvgMood < lowMoodThreshold:
		return base + " Похоже, период непростой. Берегите себя."
	default:
		return base
	}
}

func trendInsight(s *types.StatsSummary) string {
	switch s.Trend {
	case types.TrendImproving:
		return fmt.Sprintf("Настроение улучшается: %.1f за эту неделю против %.1f за прошлую.", s.RecentAvg, s.PreviousAvg)
	case types.TrendDeclining:
		return fmt.Sprintf("Настроение снизилось: %.1f за эту неделю против %.1f за прошлую.", s.RecentAvg, s.PreviousAvg)
	default:
		return "Настроение в последние недели стабильное."
	}
}

func keywordInsight(k types.KeywordStats) string {
	if k.NotesScanned == 0 {
		return ""
	}
	switch {
	case k.Positive > k.Negative:
		return fmt.Sprintf("В заметках преобладают позитивные слова (%d против %d).", k.Positive, k.Negative)
	case k.Negative > k.Positive:
		return fmt.Sprintf("В заметках чаще встречаются негативные слова (%d против %d).", k.Negative, k.Positive)
	default:
		return "Позитивных и негативных слов в заметках поровну."
	}
}

func scoreInsight(score int) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Индекс настроения %d из 100. Так держать!", score)
	case score >= 50:
		return fmt.Sprintf("Индекс настроения %d из 100.", score)
	default:
		return fmt.Sprintf("Индекс настроения %d из 100. Есть над чем поработать.", score)
	}
}

func chooseTip(s *types.StatsSummary, c Chooser) string {
	var eligible []string
	for _, t := range wellnessTips {
		if t.eligible(s) {
			eligible = append(eligible, t.text)
		}
	}
	return pick(c, eligible)
}

// InsightService renders insights for the stored statistics of a user.
type InsightService struct {
	stats   IStatsService
	chooser Chooser
}

func NewInsightService(stats IStatsService, chooser Chooser) *InsightService {
	if chooser == nil {
		chooser = RandomChooser()
	}
	return &InsightService{stats: stats, chooser: chooser}
}

func (s *InsightService) Insights(ctx context.Context, userID uuid.UUID) (*types.InsightsResponse, error) {
	summary, err := s.stats.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.InsightsResponse{
		Insights:  RenderInsights(summary, s.chooser),
		MoodScore: summary.MoodScore,
	}, nil
}
