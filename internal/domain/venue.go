package domain

import (
	"time"

	"github.com/OmarShama/eventorove-booking/pkg/types"
)

// VenueStatus статус площадки в процессе модерации
type VenueStatus string

const (
	VenueStatusDraft           VenueStatus = "draft"
	VenueStatusPendingApproval VenueStatus = "pending_approval"
	VenueStatusApproved        VenueStatus = "approved"
	VenueStatusRejected        VenueStatus = "rejected"
)

// WeeklyRule повторяющееся окно работы площадки на день недели
// Время открытия и закрытия - wall-clock в таймзоне площадки
type WeeklyRule struct {
	DayOfWeek time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Blackout период, в течение которого площадка безусловно недоступна
// Абсолютные метки времени, перекрывают недельное расписание
type Blackout struct {
	ID       int64
	StartsAt time.Time
	EndsAt   time.Time
	Reason   string
}

// Interval возвращает интервал блэкаута
func (b *Blackout) Interval() Interval {
	return Interval{Start: b.StartsAt, End: b.EndsAt}
}

// VenueSchedule read-only представление площадки для движка доступности:
// статус модерации, вместимость, ограничения длительности, буфер,
// ставка оплаты, недельное расписание и блэкауты
type VenueSchedule struct {
	ID       int64
	OwnerID  int64
	Name     string
	Status   VenueStatus
	Capacity int

	// Ограничения длительности бронирования в минутах (nil = без ограничения,
	// для минимума действует DefaultMinBookingMinutes)
	MinBookingMinutes *int
	MaxBookingMinutes *int

	// Минимальный разрыв до и после любого бронирования
	BufferMinutes int

	BaseHourlyPrice float64

	// IANA-имя таймзоны площадки и разрезолвленная локация.
	// Локация протаскивается явно через все вычисления дат -
	// никакого общепроцессного состояния таймзоны
	Timezone string
	Location *time.Location

	WeeklyRules []WeeklyRule
	Blackouts   []Blackout

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable возвращает true, если площадка прошла модерацию
func (v *VenueSchedule) IsBookable() bool {
	return v.Status == VenueStatusApproved
}

// RulesForDay возвращает все окна работы площадки на указанный день недели
// Допускается несколько окон на один день
func (v *VenueSchedule) RulesForDay(day time.Weekday) []WeeklyRule {
	rules := make([]WeeklyRule, 0, 1)
	for _, rule := range v.WeeklyRules {
		if rule.DayOfWeek == day {
			rules = append(rules, rule)
		}
	}
	return rules
}

// MinDuration возвращает минимальную длительность бронирования в минутах
func (v *VenueSchedule) MinDuration() int {
	if v.MinBookingMinutes != nil {
		return *v.MinBookingMinutes
	}
	return DefaultMinBookingMinutes
}

// ValidVenueStatuses список допустимых статусов площадки
var ValidVenueStatuses = []VenueStatus{
	VenueStatusDraft,
	VenueStatusPendingApproval,
	VenueStatusApproved,
	VenueStatusRejected,
}
