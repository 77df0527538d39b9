package score

import (
	"fmt"
	"math"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// riskWindow is the number of most recent daily logs considered.
const riskWindow = 7

const (
	idealSleepHours   = 7.5
	defaultSleepHours = 7.0
)

// CalculateHealthRisks derives risk indicators from the most recent log
// window. It is a pure function: same window, same output. An empty
// window yields no assessments.
func CalculateHealthRisks(logs []schema.DailyLogEntry) []schema.RiskAssessment {
	if len(logs) == 0 {
		return []schema.RiskAssessment{}
	}

	window := logs
	if len(window) > riskWindow {
		window = window[:riskWindow]
	}

	avgStress := avgRating(window, func(e schema.DailyLogEntry) int { return e.Stress })
	avgSleepQuality := avgRating(window, func(e schema.DailyLogEntry) int { return e.SleepQuality })
	avgEnergy := avgRating(window, func(e schema.DailyLogEntry) int { return e.Energy })
	avgMood := avgRating(window, func(e schema.DailyLogEntry) int { return e.Mood })

	// Entries without wearable data are excluded from the average. A
	// window with no sleep-hours data at all assumes a neutral 7.0 so
	// missing wearables do not inflate the deprivation score.
	avgSleepHours := avgSleepHoursOf(window)

	risks := make([]schema.RiskAssessment, 0, 3)

	stressScore := clampScore(avgStress / schema.MaxRating * 100)
	risks = append(risks, schema.RiskAssessment{
		Title:       "Chronic Stress Risk",
		Score:       int(math.Round(stressScore)),
		Level:       levelByThresholds(stressScore, 80, 60, 40),
		Description: fmt.Sprintf("Your recent stress levels average %.1f/5.", avgStress),
		Suggestions: pick(stressScore > 60,
			[]string{"Practice 4-7-8 breathing", "Reduce caffeine intake", "Schedule 15min downtime"},
			[]string{"Maintain current balance", "Regular exercise"}),
	})

	hoursPenalty := math.Max(0, (idealSleepHours-avgSleepHours)*20)
	qualityPenalty := math.Max(0, (schema.MaxRating-avgSleepQuality)*10)
	sleepScore := math.Min(100, hoursPenalty+qualityPenalty)
	risks = append(risks, schema.RiskAssessment{
		Title:       "Sleep Deprivation",
		Score:       int(math.Round(sleepScore)),
		Level:       levelByThresholds(sleepScore, 75, 50, 25),
		Description: fmt.Sprintf("Averaging %.1f hours at %.1f/5 quality.", avgSleepHours, avgSleepQuality),
		Suggestions: pick(sleepScore > 50,
			[]string{"Set a strict bedtime", "Avoid screens 1h before bed", "Keep room cool"},
			[]string{"Good sleep hygiene detected"}),
	})

	// Burnout deliberately has no Severe tier.
	burnoutScore := clampScore((avgStress + (6 - avgEnergy) + (6 - avgMood)) / 15 * 100)
	burnoutLevel := schema.RiskLow
	switch {
	case burnoutScore > 70:
		burnoutLevel = schema.RiskHigh
	case burnoutScore > 40:
		burnoutLevel = schema.RiskModerate
	}
	risks = append(risks, schema.RiskAssessment{
		Title:       "Burnout Likelihood",
		Score:       int(math.Round(burnoutScore)),
		Level:       burnoutLevel,
		Description: "Based on combined stress, energy, and mood patterns.",
		Suggestions: pick(burnoutScore > 50,
			[]string{"Prioritize rest immediately", "Delegate tasks if possible", "Seek social support"},
			[]string{"Energy levels look sustainable"}),
	})

	return risks
}

func avgRating(window []schema.DailyLogEntry, value func(schema.DailyLogEntry) int) float64 {
	if len(window) == 0 {
		return 0
	}
	var total float64
	for _, e := range window {
		total += float64(value(e))
	}
	return total / float64(len(window))
}

func avgSleepHoursOf(window []schema.DailyLogEntry) float64 {
	var total float64
	var count int
	for _, e := range window {
		if e.SleepHours != nil {
			total += *e.SleepHours
			count++
		}
	}
	if count == 0 || total == 0 {
		return defaultSleepHours
	}
	return total / float64(count)
}

func levelByThresholds(score, severe, high, moderate float64) schema.RiskLevel {
	switch {
	case score > severe:
		return schema.RiskSevere
	case score > high:
		return schema.RiskHigh
	case score > moderate:
		return schema.RiskModerate
	default:
		return schema.RiskLow
	}
}

func clampScore(score float64) float64 {
	return math.Min(100, math.Max(0, score))
}

func pick(elevated bool, elevatedSet, nominalSet []string) []string {
	if elevated {
		return elevatedSet
	}
	return nominalSet
}
