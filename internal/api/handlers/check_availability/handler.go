package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/OmarShama/eventorove-booking/internal/api/handlers"
	checkAvailability "github.com/OmarShama/eventorove-booking/internal/usecase/check_availability"
)

const (
	msgInvalidVenueID = "invalid venue id"
	msgInvalidPeriod  = "invalid start or end, expected RFC3339 timestamps with start before end"
	msgVenueNotFound  = "venue not found"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil || venueID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		h.logger.Warn("GET /venues/%d/availability - Invalid start: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		h.logger.Warn("GET /venues/%d/availability - Invalid end: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		VenueID:  venueID,
		StartsAt: start,
		EndsAt:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/%d/availability - Venue not found", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/%d/availability - Invalid input: %v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /venues/%d/availability - Failed: %v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
