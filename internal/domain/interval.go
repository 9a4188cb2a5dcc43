package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End)
// Абсолютные метки времени; Start строго раньше End для валидного интервала
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал от start длительностью durationMinutes
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// IsValid возвращает true, если начало строго раньше конца
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Minutes возвращает длительность интервала в минутах
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Граничные случаи пересечением не считаются: интервал, заканчивающийся
// ровно там, где начинается другой, с ним не конфликтует
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Expand возвращает интервал, расширенный на minutes в обе стороны
// Используется для применения буфера площадки к кандидату на бронирование
func (i Interval) Expand(minutes int) Interval {
	if minutes <= 0 {
		return i
	}
	pad := time.Duration(minutes) * time.Minute
	return Interval{
		Start: i.Start.Add(-pad),
		End:   i.End.Add(pad),
	}
}
