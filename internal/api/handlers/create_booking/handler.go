package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OmarShama/eventorove-booking/internal/api/handlers"
	"github.com/OmarShama/eventorove-booking/internal/api/middleware"
	createBooking "github.com/OmarShama/eventorove-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid startsAt, expected RFC3339 timestamp"
	msgVenueNotFound      = "venue not found"
	msgVenueNotBookable   = "venue is not approved for booking"
	msgAdmissionRace      = "booking conflicts with a concurrent request, please retry"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени начала)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondConflict(w, unavailableReason(err))

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrVenueNotBookable):
			h.logger.Warn("POST /bookings - Venue not bookable: venue_id=%d", req.VenueID)
			handlers.RespondConflict(w, msgVenueNotBookable)

		case errors.Is(err, createBooking.ErrDurationTooShort),
			errors.Is(err, createBooking.ErrDurationTooLong),
			errors.Is(err, createBooking.ErrCapacityExceeded),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, venue_id=%d: %v", userID, req.VenueID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrAdmissionRace):
			h.logger.Warn("POST /bookings - Admission race: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondConflict(w, msgAdmissionRace)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// unavailableReason извлекает причину резолвера из обёрнутой ошибки
func unavailableReason(err error) string {
	prefix := createBooking.ErrSlotUnavailable.Error() + ": "
	if msg := err.Error(); strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return "requested time slot is not available"
}
