package domain

// Default configuration values
const (
	DefaultMinBookingMinutes = 30
)

// Business validation constants
const (
	MinGuestCount               = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	// Шаг тарификации: бронирования оплачиваются получасовыми интервалами
	PriceIncrementMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses список статусов, не участвующих в проверке конфликтов
// Отменённые бронирования освобождают интервал, но остаются в истории
var CancelledStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, участвующих в проверке конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
