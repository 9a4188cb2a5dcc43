package create_booking

import (
	"time"

	createBooking "github.com/OmarShama/eventorove-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID         int64   `json:"venueId" validate:"required,gt=0"`
	StartsAt        string  `json:"startsAt" validate:"required"` // RFC3339, например "2025-11-03T10:00:00Z"
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	GuestCount      int     `json:"guestCount" validate:"required,gt=0"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	VenueID         int64   `json:"venueId"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	GuestCount      int     `json:"guestCount"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
	VenueName       string  `json:"venueName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		VenueID:         r.VenueID,
		StartsAt:        startsAt,
		DurationMinutes: r.DurationMinutes,
		GuestCount:      r.GuestCount,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		VenueID:         resp.VenueID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		GuestCount:      resp.GuestCount,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		VenueName:       resp.VenueName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
