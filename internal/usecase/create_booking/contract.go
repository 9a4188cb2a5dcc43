package create_booking

import (
	"context"
	"time"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	"github.com/OmarShama/eventorove-booking/internal/service/availability"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetSchedule(ctx context.Context, venueID int64) (*domain.VenueSchedule, error)
	// Lock берёт блокировку строки площадки, сериализуя конкурентные
	// создания бронирований. Вызывается только внутри транзакции
	Lock(ctx context.Context, venueID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityResolver интерфейс проверки доступности площадки
type AvailabilityResolver interface {
	Resolve(ctx context.Context, schedule *domain.VenueSchedule, interval domain.Interval) (availability.Decision, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
