package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrVenueNotBookable возвращается, когда площадка существует,
	// но не прошла модерацию
	ErrVenueNotBookable = errors.New("create_booking: venue is not approved for booking")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("create_booking: booking duration is too short")

	// ErrDurationTooLong возвращается, когда длительность больше максимальной
	ErrDurationTooLong = errors.New("create_booking: booking duration is too long")

	// ErrCapacityExceeded возвращается, когда гостей больше вместимости площадки
	ErrCapacityExceeded = errors.New("create_booking: guest count exceeds venue capacity")

	// ErrSlotUnavailable возвращается, когда резолвер отклонил интервал
	// (расписание, блэкаут или конфликт с существующим бронированием).
	// Оборачивается причиной резолвера для показа пользователю
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrAdmissionRace возвращается, когда сериализуемая транзакция проиграла
	// конкурентной. Повторный запуск безопасен: он либо увидит уже
	// закоммиченного конкурента и вернёт ErrSlotUnavailable, либо пройдёт
	ErrAdmissionRace = errors.New("create_booking: concurrent booking admission detected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
