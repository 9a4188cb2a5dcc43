package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotePrice(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes int
		baseHourlyPrice float64
		expected        float64
	}{
		{
			name:            "exactly one hour costs base price",
			durationMinutes: 60,
			baseHourlyPrice: 100,
			expected:        100,
		},
		{
			name:            "half hour costs half base price",
			durationMinutes: 30,
			baseHourlyPrice: 100,
			expected:        50,
		},
		{
			name:            "partial half hour rounds up",
			durationMinutes: 45,
			baseHourlyPrice: 100,
			expected:        100,
		},
		{
			name:            "one minute rounds up to half hour",
			durationMinutes: 1,
			baseHourlyPrice: 100,
			expected:        50,
		},
		{
			name:            "ninety minutes is three half hours",
			durationMinutes: 90,
			baseHourlyPrice: 80,
			expected:        120,
		},
		{
			name:            "61 minutes rounds up to three half hours",
			durationMinutes: 61,
			baseHourlyPrice: 100,
			expected:        150,
		},
		{
			name:            "zero duration costs nothing",
			durationMinutes: 0,
			baseHourlyPrice: 100,
			expected:        0,
		},
		{
			name:            "negative duration costs nothing",
			durationMinutes: -30,
			baseHourlyPrice: 100,
			expected:        0,
		},
		{
			name:            "zero base price is free",
			durationMinutes: 120,
			baseHourlyPrice: 0,
			expected:        0,
		},
		{
			name:            "fractional base price",
			durationMinutes: 30,
			baseHourlyPrice: 99.90,
			expected:        49.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := QuotePrice(tt.durationMinutes, tt.baseHourlyPrice)
			assert.InDelta(t, tt.expected, price, 0.001)
		})
	}
}

func TestVenueSchedule_MinDuration(t *testing.T) {
	t.Run("explicit minimum wins", func(t *testing.T) {
		min := 60
		schedule := &VenueSchedule{MinBookingMinutes: &min}
		assert.Equal(t, 60, schedule.MinDuration())
	})

	t.Run("default minimum when unset", func(t *testing.T) {
		schedule := &VenueSchedule{}
		assert.Equal(t, DefaultMinBookingMinutes, schedule.MinDuration())
	})
}

func TestVenueSchedule_IsBookable(t *testing.T) {
	for _, status := range ValidVenueStatuses {
		schedule := &VenueSchedule{Status: status}
		assert.Equal(t, status == VenueStatusApproved, schedule.IsBookable(),
			"status=%s", status)
	}
}
