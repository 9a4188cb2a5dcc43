package check_availability

import "time"

// Request модель запроса проверки доступности
type Request struct {
	VenueID  int64     // ID площадки
	StartsAt time.Time // Абсолютное время начала
	EndsAt   time.Time // Абсолютное время конца
}

// Response результат проверки доступности
// QuotedPrice заполняется только для доступного интервала
type Response struct {
	VenueID         int64
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Available       bool
	Reason          string   // Причина недоступности, пустая для Available
	QuotedPrice     *float64 // Стоимость бронирования этого интервала
}
