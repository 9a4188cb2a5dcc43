package get_venue_schedule

import (
	"context"
	"time"

	"github.com/OmarShama/eventorove-booking/internal/service/venues"
)

type VenueService interface {
	GetSchedule(ctx context.Context, venueID int64, now time.Time) (*venues.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
