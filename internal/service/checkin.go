package service

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Abm32/Neuroshift/internal"
)

var validate = validator.New()

type CheckinRequest struct {
	Date         string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EnergyLevel  int    `json:"energy_level" validate:"required,gte=1,lte=10"`
	MoodRating   int    `json:"mood_rating" validate:"required,gte=1,lte=10"`
	FocusRating  int    `json:"focus_rating" validate:"required,gte=1,lte=10"`
	SleepQuality int    `json:"sleep_quality" validate:"required,gte=1,lte=10"`
	Notes        string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func ValidateCheckinRequest(req *CheckinRequest) error {
	return validate.Struct(req)
}

func (r *CheckinRequest) ToCheckin() internal.DailyCheckin {
	return internal.DailyCheckin{
		Date:         r.Date,
		EnergyLevel:  r.EnergyLevel,
		MoodRating:   r.MoodRating,
		FocusRating:  r.FocusRating,
		SleepQuality: r.SleepQuality,
		Notes:        r.Notes,
	}
}

// CheckinStats is the seven-day dashboard summary feeding the progress chart.
type CheckinStats struct {
	AverageEnergy float64    `json:"average_energy"`
	AverageMood   float64    `json:"average_mood"`
	AverageFocus  float64    `json:"average_focus"`
	AverageSleep  float64    `json:"average_sleep"`
	Trend         []DayPoint `json:"trend"`
}

type DayPoint struct {
	Date         string `json:"date"`
	EnergyLevel  int    `json:"energy_level"`
	MoodRating   int    `json:"mood_rating"`
	FocusRating  int    `json:"focus_rating"`
	SleepQuality int    `json:"sleep_quality"`
}

// CalculateCheckinStats averages the last seven days of checkins and returns
// the per-day trend, oldest first. Checkins with unparseable dates are
// skipped.
func CalculateCheckinStats(checkins []internal.DailyCheckin) CheckinStats {
	cutoff := time.Now().AddDate(0, 0, -7)

	stats := CheckinStats{Trend: []DayPoint{}}
	var energy, mood, focus, sleep, count int

	for _, c := range checkins {
		date, err := time.Parse(internal.DateLayout, c.Date)
		if err != nil || date.Before(cutoff) {
			continue
		}
		energy += c.EnergyLevel
		mood += c.MoodRating
		focus += c.FocusRating
		sleep += c.SleepQuality
		count++
		stats.Trend = append(stats.Trend, DayPoint{
			Date:         c.Date,
			EnergyLevel:  c.EnergyLevel,
			MoodRating:   c.MoodRating,
			FocusRating:  c.FocusRating,
			SleepQuality: c.SleepQuality,
		})
	}

	if count > 0 {
		stats.AverageEnergy = float64(energy) / float64(count)
		stats.AverageMood = float64(mood) / float64(count)
		stats.AverageFocus = float64(focus) / float64(count)
		stats.AverageSleep = float64(sleep) / float64(count)
	}

	// Checkins arrive date-descending; the chart wants oldest first.
	for i, j := 0, len(stats.Trend)-1; i < j; i, j = i+1, j-1 {
		stats.Trend[i], stats.Trend[j] = stats.Trend[j], stats.Trend[i]
	}
	return stats
}
