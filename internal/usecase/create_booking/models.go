package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64     // ID гостя
	VenueID         int64     // ID площадки
	StartsAt        time.Time // Абсолютное время начала
	DurationMinutes int       // Длительность в минутах
	GuestCount      int       // Количество гостей
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	UserID          int64     // ID гостя
	VenueID         int64     // ID площадки
	StartsAt        time.Time // Время начала
	EndsAt          time.Time // Время конца
	DurationMinutes int       // Длительность в минутах
	GuestCount      int       // Количество гостей
	TotalPrice      float64   // Итоговая стоимость
	Status          string    // Статус бронирования

	// Денормализованные данные
	VenueName string  // Название площадки
	Notes     *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
