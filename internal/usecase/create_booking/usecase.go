package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	venueRepo "github.com/OmarShama/eventorove-booking/internal/infra/storage/venue"
	"github.com/OmarShama/eventorove-booking/pkg/txmanager"
)

// admissionAttempts число попыток выполнить сериализуемую транзакцию
// Одно повторение после проигрыша гонки: повтор либо увидит
// закоммиченного конкурента, либо гонка была ложной
const admissionAttempts = 2

// UseCase use case создания бронирования
// Шаги проверки доступности, расчёта цены и вставки выполняются в одной
// сериализуемой транзакции под блокировкой строки площадки: два конкурентных
// запроса на пересекающиеся интервалы одной площадки не могут пройти оба
type UseCase struct {
	venueRepo    VenueRepository
	bookingRepo  BookingRepository
	resolver     AvailabilityResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Бронирование либо создаётся целиком, либо не создаётся вовсе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, start=%s, duration=%dm, guests=%d",
		req.UserID, req.VenueID, req.StartsAt.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.DurationMinutes, req.GuestCount)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Выполняем админиссию, повторяя транзакцию один раз
	// после проигрыша сериализации
	var result *domain.Booking
	var err error

	for attempt := 1; attempt <= admissionAttempts; attempt++ {
		result, err = uc.admit(ctx, req)
		if err == nil {
			break
		}

		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure on attempt %d for venue=%d: %v",
				attempt, req.VenueID, err)
			if attempt == admissionAttempts {
				return nil, fmt.Errorf("%w: %v", ErrAdmissionRace, err)
			}
			continue
		}

		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f",
		result.ID, result.TotalPrice)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		VenueID:         result.VenueID,
		StartsAt:        result.StartsAt,
		EndsAt:          result.EndsAt,
		DurationMinutes: result.DurationMinutes,
		GuestCount:      result.GuestCount,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
		VenueName:       result.VenueName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// admit выполняет одну попытку админиссии в сериализуемой транзакции
func (uc *UseCase) admit(ctx context.Context, req *Request) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку площадки - точка сериализации для этой площадки.
		// Конкурентная админиссия той же площадки дождётся коммита этой
		if err := uc.venueRepo.Lock(txCtx, req.VenueID); err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to lock venue: %v", ErrInternal, err)
		}

		// 2. Загружаем расписание площадки
		schedule, err := uc.venueRepo.GetSchedule(txCtx, req.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				return ErrVenueNotFound
			}
			uc.logger.Error("CreateBooking: failed to get schedule for venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to get venue schedule: %v", ErrInternal, err)
		}

		// 3. Площадка должна пройти модерацию
		if !schedule.IsBookable() {
			uc.logger.Warn("CreateBooking: venue id=%d is not bookable, status=%s",
				req.VenueID, schedule.Status)
			return ErrVenueNotBookable
		}

		// 4. Ограничения длительности и вместимости
		if err := validateDuration(schedule, req.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: duration validation failed for venue=%d: %v", req.VenueID, err)
			return err
		}
		if err := validateCapacity(schedule, req.GuestCount); err != nil {
			uc.logger.Warn("CreateBooking: capacity validation failed for venue=%d: %v", req.VenueID, err)
			return err
		}

		// 5. Проверка доступности: расписание, блэкауты, конфликты с буфером
		interval := domain.NewInterval(req.StartsAt, req.DurationMinutes)

		decision, err := uc.resolver.Resolve(txCtx, schedule, interval)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed for venue=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !decision.Available {
			uc.logger.Warn("CreateBooking: slot unavailable for venue=%d: %s", req.VenueID, decision.Reason)
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, decision.Reason)
		}

		// 6. Цена: получасовые интервалы с округлением вверх
		price := domain.QuotePrice(req.DurationMinutes, schedule.BaseHourlyPrice)

		// 7. Создаем бронирование с денормализацией данных площадки
		booking := &domain.Booking{
			VenueID:         req.VenueID,
			UserID:          req.UserID,
			StartsAt:        interval.Start,
			EndsAt:          interval.End,
			GuestCount:      req.GuestCount,
			VenueName:       schedule.Name,
			DurationMinutes: req.DurationMinutes,
			TotalPrice:      price,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
