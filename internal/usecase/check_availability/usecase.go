package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	venueRepo "github.com/OmarShama/eventorove-booking/internal/infra/storage/venue"
	"github.com/OmarShama/eventorove-booking/pkg/ptr"
)

// UseCase use case проверки доступности площадки для интервала
// Только чтение: решение резолвера плюс расчётная цена, без побочных эффектов.
// Положительный ответ не резервирует интервал - гонку с конкурентными
// бронированиями разрешает только создание бронирования
type UseCase struct {
	venueRepo VenueRepository
	resolver  AvailabilityResolver
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo: venueRepo,
		resolver:  resolver,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: venue=%d, start=%s, end=%s",
		req.VenueID,
		req.StartsAt.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.EndsAt.Format(domain.DateFormat+" "+domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	interval := domain.Interval{Start: req.StartsAt, End: req.EndsAt}
	resp := &Response{
		VenueID:         req.VenueID,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		DurationMinutes: interval.Minutes(),
	}

	// Расписание и пересекающиеся бронирования читаются в одной
	// read-only транзакции - решение считается по согласованному снимку
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2. Загружаем расписание площадки
		schedule, err := uc.venueRepo.GetSchedule(txCtx, req.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("CheckAvailability: venue id=%d not found", req.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("CheckAvailability: failed to get schedule for venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to get venue schedule: %v", ErrInternal, err)
		}

		// 3. Спрашиваем резолвер
		decision, err := uc.resolver.Resolve(txCtx, schedule, interval)
		if err != nil {
			uc.logger.Error("CheckAvailability: resolver failed for venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		resp.Available = decision.Available
		resp.Reason = decision.Reason

		// 4. Для доступного интервала считаем цену
		if decision.Available {
			resp.QuotedPrice = ptr.Ptr(domain.QuotePrice(interval.Minutes(), schedule.BaseHourlyPrice))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckAvailability: venue=%d available=%t reason=%q",
		req.VenueID, resp.Available, resp.Reason)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	return nil
}
