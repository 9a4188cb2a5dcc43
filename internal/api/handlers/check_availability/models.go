package check_availability

import (
	"time"

	checkAvailability "github.com/OmarShama/eventorove-booking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID         int64    `json:"venueId"`
	StartsAt        string   `json:"startsAt"`
	EndsAt          string   `json:"endsAt"`
	DurationMinutes int      `json:"durationMinutes"`
	Available       bool     `json:"available"`
	Reason          string   `json:"reason,omitempty"`
	QuotedPrice     *float64 `json:"quotedPrice,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		VenueID:         resp.VenueID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Available:       resp.Available,
		Reason:          resp.Reason,
		QuotedPrice:     resp.QuotedPrice,
	}
}
