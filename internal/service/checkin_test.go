package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abm32/Neuroshift/internal"
)

func validCheckinRequest() CheckinRequest {
	return CheckinRequest{
		Date:         "2026-08-30",
		EnergyLevel:  6,
		MoodRating:   7,
		FocusRating:  5,
		SleepQuality: 8,
		Notes:        "slept well",
	}
}

func TestValidateCheckinRequest(t *testing.T) {
	req := validCheckinRequest()
	assert.NoError(t, ValidateCheckinRequest(&req))

	req = validCheckinRequest()
	req.Date = ""
	assert.NoError(t, ValidateCheckinRequest(&req))

	req = validCheckinRequest()
	req.Date = "30/08/2026"
	assert.Error(t, ValidateCheckinRequest(&req))

	req = validCheckinRequest()
	req.EnergyLevel = 0
	assert.Error(t, ValidateCheckinRequest(&req))

	req = validCheckinRequest()
	req.MoodRating = 11
	assert.Error(t, ValidateCheckinRequest(&req))
}

func TestCalculateCheckinStats_SevenDayWindow(t *testing.T) {
	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(internal.DateLayout)
	}

	checkins := []internal.DailyCheckin{
		{Date: day(0), EnergyLevel: 8, MoodRating: 8, FocusRating: 8, SleepQuality: 8},
		{Date: day(-2), EnergyLevel: 4, MoodRating: 4, FocusRating: 4, SleepQuality: 4},
		{Date: day(-30), EnergyLevel: 1, MoodRating: 1, FocusRating: 1, SleepQuality: 1},
		{Date: "not-a-date", EnergyLevel: 10, MoodRating: 10, FocusRating: 10, SleepQuality: 10},
	}

	stats := CalculateCheckinStats(checkins)
	assert.Equal(t, 6.0, stats.AverageEnergy)
	assert.Equal(t, 6.0, stats.AverageMood)
	assert.Len(t, stats.Trend, 2)
	// Trend runs oldest first even though checkins arrive newest first.
	assert.Equal(t, day(-2), stats.Trend[0].Date)
	assert.Equal(t, day(0), stats.Trend[1].Date)
}

func TestCalculateCheckinStats_Empty(t *testing.T) {
	stats := CalculateCheckinStats(nil)
	assert.Zero(t, stats.AverageEnergy)
	assert.NotNil(t, stats.Trend)
	assert.Empty(t, stats.Trend)
}
