package check_availability

import (
	"context"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	"github.com/OmarShama/eventorove-booking/internal/service/availability"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetSchedule(ctx context.Context, venueID int64) (*domain.VenueSchedule, error)
}

// AvailabilityResolver интерфейс проверки доступности площадки
type AvailabilityResolver interface {
	Resolve(ctx context.Context, schedule *domain.VenueSchedule, interval domain.Interval) (availability.Decision, error)
}

// TransactionManager интерфейс для управления транзакциями
// Чтение расписания и поиск конфликтов идут по одному снимку данных
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
