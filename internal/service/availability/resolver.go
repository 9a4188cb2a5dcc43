package availability

import (
	"context"
	"fmt"

	"github.com/OmarShama/eventorove-booking/internal/domain"
)

// Причины отказа, возвращаемые в Decision.Reason
// Показываются пользователю как есть
const (
	ReasonVenueNotApproved = "venue is not approved for booking"
	ReasonNoOperatingHours = "no operating hours configured for this day"
	ReasonOutsideHours     = "requested time is outside operating hours"
	ReasonBookingConflict  = "conflicts with an existing booking"
)

// Decision результат проверки доступности
// Недоступность - ожидаемый исход, а не ошибка: Reason заполняется
// только для Available == false
type Decision struct {
	Available bool
	Reason    string
}

func unavailable(reason string) Decision {
	return Decision{Available: false, Reason: reason}
}

// Resolver решает, свободна ли площадка для интервала-кандидата
// Чистая логика без побочных эффектов, единственная зависимость -
// поиск пересекающихся бронирований. Безопасен для конкурентных вызовов
type Resolver struct {
	bookings BookingSource
	logger   Logger
}

// NewResolver создает новый резолвер доступности
func NewResolver(bookings BookingSource, logger Logger) *Resolver {
	return &Resolver{
		bookings: bookings,
		logger:   logger,
	}
}

// Resolve выполняет упорядоченную цепочку проверок, останавливаясь
// на первой неудачной:
//  1. площадка прошла модерацию
//  2. интервал попадает в окно недельного расписания своего дня
//  3. интервал не пересекает блэкауты
//  4. интервал, расширенный буфером площадки, не пересекает
//     существующие неотменённые бронирования
//
// Буфер применяется только к кандидату: расширенный кандидат сверяется
// с нерасширенными сохранёнными бронированиями. Это эквивалентно
// симметричному буферу между любыми двумя бронированиями, пока КАЖДОЕ
// бронирование проходит через эту проверку при создании - интервалы
// с буфером в БД не хранятся
func (r *Resolver) Resolve(ctx context.Context, schedule *domain.VenueSchedule, interval domain.Interval) (Decision, error) {
	if !interval.IsValid() {
		return Decision{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, interval.Start, interval.End)
	}

	// 1. Статус модерации
	if !schedule.IsBookable() {
		return unavailable(ReasonVenueNotApproved), nil
	}

	// 2. Недельное расписание: проецируем интервал на таймзону площадки
	if decision := r.checkWeeklyRules(schedule, interval); !decision.Available {
		return decision, nil
	}

	// 3. Блэкауты перекрывают недельное расписание
	if decision := r.checkBlackouts(schedule, interval); !decision.Available {
		return decision, nil
	}

	// 4. Конфликты с существующими бронированиями с учётом буфера
	buffered := interval.Expand(schedule.BufferMinutes)

	overlapping, err := r.bookings.GetOverlapping(ctx, schedule.ID, buffered.Start, buffered.End)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: venue id=%d: %v", ErrLookupFailed, schedule.ID, err)
	}

	for _, booking := range overlapping {
		if !booking.IsActive() {
			continue
		}
		if booking.Interval().Overlaps(buffered) {
			r.logger.Info("Resolve: venue id=%d interval %s-%s conflicts with booking id=%d",
				schedule.ID, interval.Start.Format(domain.DateFormat+" "+domain.TimeFormat),
				interval.End.Format(domain.TimeFormat), booking.ID)
			return unavailable(ReasonBookingConflict), nil
		}
	}

	return Decision{Available: true}, nil
}

// checkWeeklyRules проверяет, что интервал целиком лежит внутри одного окна
// недельного расписания для дня своего начала
//
// Начало и конец проецируются в таймзону площадки независимо и сравниваются
// в wall-clock минутах. Начало усекается до минуты (старт в 16:30:59 лежит
// в окне, если лежит 16:30), конец округляется вверх (конец в 17:00:59
// выходит за закрытие в 17:00). Конец в другом локальном дне не попадает
// ни в одно окно дня старта
func (r *Resolver) checkWeeklyRules(schedule *domain.VenueSchedule, interval domain.Interval) Decision {
	localStart := interval.Start.In(schedule.Location)
	localEnd := interval.End.In(schedule.Location)

	rules := schedule.RulesForDay(localStart.Weekday())
	if len(rules) == 0 {
		return unavailable(ReasonNoOperatingHours)
	}

	if localStart.Year() != localEnd.Year() || localStart.YearDay() != localEnd.YearDay() {
		return unavailable(ReasonOutsideHours)
	}

	startMinutes := localStart.Hour()*60 + localStart.Minute()
	endMinutes := localEnd.Hour()*60 + localEnd.Minute()
	if localEnd.Second() > 0 || localEnd.Nanosecond() > 0 {
		endMinutes++
	}

	// Несколько окон на день допустимы, кандидат должен целиком
	// поместиться в какое-то одно
	for _, rule := range rules {
		if !rule.OpenTime.IsBefore(rule.CloseTime) {
			r.logger.Warn("Resolve: venue id=%d has inverted window %s-%s", schedule.ID, rule.OpenTime, rule.CloseTime)
			continue
		}
		openMinutes, err := rule.OpenTime.Minutes()
		if err != nil {
			r.logger.Warn("Resolve: venue id=%d has malformed open time %q", schedule.ID, rule.OpenTime)
			continue
		}
		closeMinutes, err := rule.CloseTime.Minutes()
		if err != nil {
			r.logger.Warn("Resolve: venue id=%d has malformed close time %q", schedule.ID, rule.CloseTime)
			continue
		}

		// Полуоткрытое окно [open, close): старт ровно в open и конец
		// ровно в close допустимы
		if startMinutes >= openMinutes && endMinutes <= closeMinutes {
			return Decision{Available: true}
		}
	}

	return unavailable(ReasonOutsideHours)
}

// checkBlackouts проверяет пересечение кандидата с блэкаутами площадки
// Причина отказа цитирует причину блэкаута
func (r *Resolver) checkBlackouts(schedule *domain.VenueSchedule, interval domain.Interval) Decision {
	for _, blackout := range schedule.Blackouts {
		if interval.Overlaps(blackout.Interval()) {
			reason := fmt.Sprintf("venue is unavailable: %s", blackout.Reason)
			return unavailable(reason)
		}
	}
	return Decision{Available: true}
}
