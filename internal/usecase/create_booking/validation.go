package create_booking

import (
	"fmt"
	"time"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	"github.com/OmarShama/eventorove-booking/pkg/ptr"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if req.StartsAt.Before(now) {
		return fmt.Errorf("%w: startsAt must be in the future", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDuration проверяет длительность против ограничений площадки
// Минимум действует всегда (дефолт при незаданном), максимум - только когда задан
func validateDuration(schedule *domain.VenueSchedule, durationMinutes int) error {
	minDuration := schedule.MinDuration()
	if durationMinutes < minDuration {
		return fmt.Errorf("%w: minimum booking duration is %d minutes", ErrDurationTooShort, minDuration)
	}

	// Максимум опционален: ноль означает отсутствие ограничения
	if maxDuration := ptr.Deref(schedule.MaxBookingMinutes, 0); maxDuration > 0 && durationMinutes > maxDuration {
		return fmt.Errorf("%w: maximum booking duration is %d minutes", ErrDurationTooLong, maxDuration)
	}

	return nil
}

// validateCapacity проверяет, что количество гостей не превышает вместимость
func validateCapacity(schedule *domain.VenueSchedule, guestCount int) error {
	if guestCount > schedule.Capacity {
		return fmt.Errorf("%w: venue capacity is %d guests", ErrCapacityExceeded, schedule.Capacity)
	}
	return nil
}
