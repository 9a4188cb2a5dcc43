package availability

import "errors"

var (
	// ErrInvalidInterval возвращается для интервала с началом не раньше конца
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrLookupFailed возвращается при ошибке поиска пересекающихся бронирований
	ErrLookupFailed = errors.New("availability: failed to look up overlapping bookings")
)
