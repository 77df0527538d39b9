package schema

const DailyLogCollection = "dailyLog"

const (
	MinRating = 1
	MaxRating = 5
)

// DailyLogEntry is one day of self-reported wellness ratings plus
// optional wearable metrics. Entries are append-only per user.
type DailyLogEntry struct {
	ID     string `json:"id" bson:"id"`
	UserID string `json:"user_id" bson:"user_id"`
	Date   string `json:"date" bson:"date"` // ISO date, YYYY-MM-DD

	Mood         int `json:"mood" bson:"mood"`
	Stress       int `json:"stress" bson:"stress"`
	SleepQuality int `json:"sleep_quality" bson:"sleep_quality"`
	Pain         int `json:"pain" bson:"pain"`
	Energy       int `json:"energy" bson:"energy"`

	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	// Wearable metrics. Absent values are excluded from averages,
	// never treated as zero.
	Steps      *int     `json:"steps,omitempty" bson:"steps,omitempty"`
	HeartRate  *int     `json:"heart_rate,omitempty" bson:"heart_rate,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty" bson:"sleep_hours,omitempty"`
	Calories   *int     `json:"calories,omitempty" bson:"calories,omitempty"`
}

// ClampRating bounds a rating into the declared 1..5 range. Out-of-range
// input is clamped silently, not rejected.
func ClampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// Normalize clamps every rating and floors negative wearable values.
func (e *DailyLogEntry) Normalize() {
	e.Mood = ClampRating(e.Mood)
	e.Stress = ClampRating(e.Stress)
	e.SleepQuality = ClampRating(e.SleepQuality)
	e.Pain = ClampRating(e.Pain)
	e.Energy = ClampRating(e.Energy)

	if e.Steps != nil && *e.Steps < 0 {
		*e.Steps = 0
	}
	if e.SleepHours != nil && *e.SleepHours < 0 {
		*e.SleepHours = 0
	}
	if e.HeartRate != nil && *e.HeartRate < 1 {
		e.HeartRate = nil
	}
	if e.Calories != nil && *e.Calories < 0 {
		*e.Calories = 0
	}
}
