package venues

import (
	"context"

	"github.com/OmarShama/eventorove-booking/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetSchedule(ctx context.Context, venueID int64) (*domain.VenueSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
