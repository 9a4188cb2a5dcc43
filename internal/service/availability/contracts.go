package availability

import (
	"context"
	"time"

	"github.com/OmarShama/eventorove-booking/internal/domain"
)

// BookingSource интерфейс поиска бронирований, пересекающих интервал
// Возвращает только неотменённые бронирования
type BookingSource interface {
	GetOverlapping(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
