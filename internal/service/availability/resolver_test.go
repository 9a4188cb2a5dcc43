package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	"github.com/OmarShama/eventorove-booking/pkg/types"
)

// fakeBookingSource источник бронирований для тестов
type fakeBookingSource struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingSource) GetOverlapping(_ context.Context, venueID int64, from, to time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	window := domain.Interval{Start: from, End: to}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.VenueID == venueID && b.Interval().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 2026-09-07 - понедельник
var mondayUTC = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func approvedSchedule() *domain.VenueSchedule {
	return &domain.VenueSchedule{
		ID:              1,
		OwnerID:         10,
		Name:            "Loft on Main",
		Status:          domain.VenueStatusApproved,
		Capacity:        50,
		BaseHourlyPrice: 100,
		Timezone:        "UTC",
		Location:        time.UTC,
		WeeklyRules: []domain.WeeklyRule{
			{DayOfWeek: time.Monday, OpenTime: types.TimeString("09:00"), CloseTime: types.TimeString("17:00")},
		},
	}
}

func at(base time.Time, hour, minute int) time.Time {
	return base.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newTestResolver(source *fakeBookingSource) *Resolver {
	return NewResolver(source, nopLogger{})
}

func TestResolver_WeeklySchedule(t *testing.T) {
	tests := []struct {
		name          string
		interval      domain.Interval
		wantAvailable bool
		wantReason    string
	}{
		{
			name:          "interval inside operating hours",
			interval:      domain.Interval{Start: at(mondayUTC, 10, 0), End: at(mondayUTC, 12, 0)},
			wantAvailable: true,
		},
		{
			name:          "start exactly at opening is allowed",
			interval:      domain.Interval{Start: at(mondayUTC, 9, 0), End: at(mondayUTC, 10, 0)},
			wantAvailable: true,
		},
		{
			name:          "end exactly at closing is allowed",
			interval:      domain.Interval{Start: at(mondayUTC, 16, 0), End: at(mondayUTC, 17, 0)},
			wantAvailable: true,
		},
		{
			name:          "full operating day is allowed",
			interval:      domain.Interval{Start: at(mondayUTC, 9, 0), End: at(mondayUTC, 17, 0)},
			wantAvailable: true,
		},
		{
			name:          "start one minute before opening is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 8, 59), End: at(mondayUTC, 10, 0)},
			wantAvailable: false,
			wantReason:    ReasonOutsideHours,
		},
		{
			name:          "end one minute after closing is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 16, 0), End: at(mondayUTC, 17, 1)},
			wantAvailable: false,
			wantReason:    ReasonOutsideHours,
		},
		{
			name: "day without rules is rejected",
			// Вторник
			interval:      domain.Interval{Start: at(mondayUTC, 24+10, 0), End: at(mondayUTC, 24+11, 0)},
			wantAvailable: false,
			wantReason:    ReasonNoOperatingHours,
		},
		{
			name:          "interval crossing midnight does not fit any window",
			interval:      domain.Interval{Start: at(mondayUTC, 16, 0), End: at(mondayUTC, 25, 0)},
			wantAvailable: false,
			wantReason:    ReasonOutsideHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(&fakeBookingSource{})

			decision, err := resolver.Resolve(context.Background(), approvedSchedule(), tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, decision.Available)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestResolver_VenueNotApproved(t *testing.T) {
	resolver := newTestResolver(&fakeBookingSource{})
	interval := domain.Interval{Start: at(mondayUTC, 10, 0), End: at(mondayUTC, 11, 0)}

	for _, status := range []domain.VenueStatus{
		domain.VenueStatusDraft,
		domain.VenueStatusPendingApproval,
		domain.VenueStatusRejected,
	} {
		schedule := approvedSchedule()
		schedule.Status = status

		decision, err := resolver.Resolve(context.Background(), schedule, interval)
		require.NoError(t, err)
		assert.False(t, decision.Available, "status=%s", status)
		assert.Equal(t, ReasonVenueNotApproved, decision.Reason)
	}
}

func TestResolver_InvalidInterval(t *testing.T) {
	resolver := newTestResolver(&fakeBookingSource{})

	_, err := resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
		Start: at(mondayUTC, 11, 0),
		End:   at(mondayUTC, 10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
		Start: at(mondayUTC, 10, 0),
		End:   at(mondayUTC, 10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestResolver_MultipleWindowsPerDay(t *testing.T) {
	schedule := approvedSchedule()
	schedule.WeeklyRules = []domain.WeeklyRule{
		{DayOfWeek: time.Monday, OpenTime: types.TimeString("09:00"), CloseTime: types.TimeString("12:00")},
		{DayOfWeek: time.Monday, OpenTime: types.TimeString("14:00"), CloseTime: types.TimeString("18:00")},
	}
	resolver := newTestResolver(&fakeBookingSource{})

	tests := []struct {
		name          string
		interval      domain.Interval
		wantAvailable bool
	}{
		{
			name:          "fits the morning window",
			interval:      domain.Interval{Start: at(mondayUTC, 10, 0), End: at(mondayUTC, 11, 30)},
			wantAvailable: true,
		},
		{
			name:          "fits the afternoon window",
			interval:      domain.Interval{Start: at(mondayUTC, 15, 0), End: at(mondayUTC, 17, 0)},
			wantAvailable: true,
		},
		{
			name:          "spanning the gap between windows is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 11, 0), End: at(mondayUTC, 15, 0)},
			wantAvailable: false,
		},
		{
			name:          "inside the gap is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 12, 30), End: at(mondayUTC, 13, 30)},
			wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := resolver.Resolve(context.Background(), schedule, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, decision.Available)
		})
	}
}

func TestResolver_SubMinuteBoundaries(t *testing.T) {
	resolver := newTestResolver(&fakeBookingSource{})

	t.Run("sub-minute end past close is rejected", func(t *testing.T) {
		// Старт 16:30:59 на 30 минут заканчивается в 17:00:59,
		// позади закрытия в 17:00
		start := at(mondayUTC, 16, 30).Add(59 * time.Second)

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(),
			domain.NewInterval(start, 30))
		require.NoError(t, err)
		assert.False(t, decision.Available)
		assert.Equal(t, ReasonOutsideHours, decision.Reason)
	})

	t.Run("sub-minute start inside window is allowed", func(t *testing.T) {
		start := at(mondayUTC, 10, 0).Add(30 * time.Second)

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(),
			domain.NewInterval(start, 30))
		require.NoError(t, err)
		assert.True(t, decision.Available)
	})

	t.Run("sub-minute start before opening is rejected", func(t *testing.T) {
		start := at(mondayUTC, 8, 59).Add(30 * time.Second)

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(),
			domain.NewInterval(start, 30))
		require.NoError(t, err)
		assert.False(t, decision.Available)
		assert.Equal(t, ReasonOutsideHours, decision.Reason)
	})
}

func TestResolver_TimezoneProjection(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	schedule := approvedSchedule()
	schedule.Timezone = "America/New_York"
	schedule.Location = loc

	resolver := newTestResolver(&fakeBookingSource{})

	// 14:00 UTC в сентябре - это 10:00 в Нью-Йорке (EDT, UTC-4):
	// попадает в понедельничное окно 09:00-17:00
	decision, err := resolver.Resolve(context.Background(), schedule, domain.Interval{
		Start: at(mondayUTC, 14, 0),
		End:   at(mondayUTC, 16, 0),
	})
	require.NoError(t, err)
	assert.True(t, decision.Available)

	// 10:00 UTC - это 06:00 в Нью-Йорке, до открытия
	decision, err = resolver.Resolve(context.Background(), schedule, domain.Interval{
		Start: at(mondayUTC, 10, 0),
		End:   at(mondayUTC, 11, 0),
	})
	require.NoError(t, err)
	assert.False(t, decision.Available)
	assert.Equal(t, ReasonOutsideHours, decision.Reason)

	// 02:00 UTC вторника - это 22:00 понедельника в Нью-Йорке:
	// день определяется локальным временем площадки
	decision, err = resolver.Resolve(context.Background(), schedule, domain.Interval{
		Start: at(mondayUTC, 26, 0),
		End:   at(mondayUTC, 27, 0),
	})
	require.NoError(t, err)
	assert.False(t, decision.Available)
	assert.Equal(t, ReasonOutsideHours, decision.Reason)
}

func TestResolver_DSTFallBackUsesProjectedEnd(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	schedule := approvedSchedule()
	schedule.Timezone = "America/New_York"
	schedule.Location = loc
	schedule.WeeklyRules = []domain.WeeklyRule{
		{DayOfWeek: time.Sunday, OpenTime: types.TimeString("01:00"), CloseTime: types.TimeString("02:00")},
	}
	resolver := newTestResolver(&fakeBookingSource{})

	// 2026-11-01 - воскресенье перевода часов: в 02:00 EDT стрелки
	// возвращаются на 01:00 EST. Старт 05:00 UTC = 01:00 EDT, 90 минут
	// спустя - 01:30 EST: по wall-clock конец лежит внутри окна,
	// хотя старт плюс длительность дали бы 02:30
	start := time.Date(2026, 11, 1, 5, 0, 0, 0, time.UTC)

	decision, err := resolver.Resolve(context.Background(), schedule, domain.NewInterval(start, 90))
	require.NoError(t, err)
	assert.True(t, decision.Available)
}

func TestResolver_Blackouts(t *testing.T) {
	schedule := approvedSchedule()
	schedule.Blackouts = []domain.Blackout{
		{
			ID:       1,
			StartsAt: at(mondayUTC, 12, 0),
			EndsAt:   at(mondayUTC, 14, 0),
			Reason:   "private event",
		},
	}
	resolver := newTestResolver(&fakeBookingSource{})

	t.Run("overlap with blackout cites its reason", func(t *testing.T) {
		decision, err := resolver.Resolve(context.Background(), schedule, domain.Interval{
			Start: at(mondayUTC, 13, 0),
			End:   at(mondayUTC, 15, 0),
		})
		require.NoError(t, err)
		assert.False(t, decision.Available)
		assert.Equal(t, "venue is unavailable: private event", decision.Reason)
	})

	t.Run("interval ending at blackout start is allowed", func(t *testing.T) {
		decision, err := resolver.Resolve(context.Background(), schedule, domain.Interval{
			Start: at(mondayUTC, 10, 0),
			End:   at(mondayUTC, 12, 0),
		})
		require.NoError(t, err)
		assert.True(t, decision.Available)
	})

	t.Run("blackout wins over open hours", func(t *testing.T) {
		// Интервал внутри рабочего окна, но пересекает блэкаут
		decision, err := resolver.Resolve(context.Background(), schedule, domain.Interval{
			Start: at(mondayUTC, 12, 30),
			End:   at(mondayUTC, 13, 30),
		})
		require.NoError(t, err)
		assert.False(t, decision.Available)
		assert.Equal(t, "venue is unavailable: private event", decision.Reason)
	})
}

func TestResolver_BookingConflicts(t *testing.T) {
	existing := &domain.Booking{
		ID:       7,
		VenueID:  1,
		UserID:   2,
		StartsAt: at(mondayUTC, 10, 0),
		EndsAt:   at(mondayUTC, 11, 0),
		Status:   domain.StatusConfirmed,
	}

	t.Run("overlapping booking rejects candidate", func(t *testing.T) {
		resolver := newTestResolver(&fakeBookingSource{bookings: []*domain.Booking{existing}})

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
			Start: at(mondayUTC, 10, 30),
			End:   at(mondayUTC, 11, 30),
		})
		require.NoError(t, err)
		assert.False(t, decision.Available)
		assert.Equal(t, ReasonBookingConflict, decision.Reason)
	})

	t.Run("back to back booking is allowed without buffer", func(t *testing.T) {
		resolver := newTestResolver(&fakeBookingSource{bookings: []*domain.Booking{existing}})

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
			Start: at(mondayUTC, 11, 0),
			End:   at(mondayUTC, 12, 0),
		})
		require.NoError(t, err)
		assert.True(t, decision.Available)
	})

	t.Run("cancelled booking frees the interval", func(t *testing.T) {
		cancelled := *existing
		cancelled.Status = domain.StatusCancelled
		resolver := newTestResolver(&fakeBookingSource{bookings: []*domain.Booking{&cancelled}})

		decision, err := resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
			Start: at(mondayUTC, 10, 0),
			End:   at(mondayUTC, 11, 0),
		})
		require.NoError(t, err)
		assert.True(t, decision.Available)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		resolver := newTestResolver(&fakeBookingSource{err: errors.New("db down")})

		_, err := resolver.Resolve(context.Background(), approvedSchedule(), domain.Interval{
			Start: at(mondayUTC, 10, 0),
			End:   at(mondayUTC, 11, 0),
		})
		assert.ErrorIs(t, err, ErrLookupFailed)
	})
}

func TestResolver_Buffer(t *testing.T) {
	// Бронирование 10:00-11:00, буфер площадки 30 минут
	existing := &domain.Booking{
		ID:       7,
		VenueID:  1,
		StartsAt: at(mondayUTC, 10, 0),
		EndsAt:   at(mondayUTC, 11, 0),
		Status:   domain.StatusConfirmed,
	}
	schedule := approvedSchedule()
	schedule.BufferMinutes = 30

	tests := []struct {
		name          string
		interval      domain.Interval
		wantAvailable bool
	}{
		{
			name:          "candidate starting inside buffer is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 11, 0), End: at(mondayUTC, 11, 30)},
			wantAvailable: false,
		},
		{
			name:          "candidate starting right after buffer is allowed",
			interval:      domain.Interval{Start: at(mondayUTC, 11, 30), End: at(mondayUTC, 12, 30)},
			wantAvailable: true,
		},
		{
			name:          "candidate ending inside buffer before booking is rejected",
			interval:      domain.Interval{Start: at(mondayUTC, 9, 0), End: at(mondayUTC, 9, 45)},
			wantAvailable: false,
		},
		{
			name:          "candidate ending right at buffer start is allowed",
			interval:      domain.Interval{Start: at(mondayUTC, 9, 0), End: at(mondayUTC, 9, 30)},
			wantAvailable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(&fakeBookingSource{bookings: []*domain.Booking{existing}})

			decision, err := resolver.Resolve(context.Background(), schedule, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, decision.Available)
			if !tt.wantAvailable {
				assert.Equal(t, ReasonBookingConflict, decision.Reason)
			}
		})
	}
}

func TestResolver_Idempotent(t *testing.T) {
	// Проверка доступности не имеет побочных эффектов:
	// повторный вызов даёт тот же результат
	resolver := newTestResolver(&fakeBookingSource{})
	interval := domain.Interval{Start: at(mondayUTC, 10, 0), End: at(mondayUTC, 11, 0)}

	first, err := resolver.Resolve(context.Background(), approvedSchedule(), interval)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := resolver.Resolve(context.Background(), approvedSchedule(), interval)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
