package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	venueRepo "github.com/OmarShama/eventorove-booking/internal/infra/storage/venue"
)

// WeeklyRuleResponse окно работы площадки на день недели
type WeeklyRuleResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// BlackoutResponse период недоступности площадки
type BlackoutResponse struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   string    `json:"reason"`
}

// ScheduleResponse публичное расписание площадки
type ScheduleResponse struct {
	VenueID           int64                `json:"venueId"`
	Name              string               `json:"name"`
	Status            string               `json:"status"`
	Capacity          int                  `json:"capacity"`
	MinBookingMinutes int                  `json:"minBookingMinutes"`
	MaxBookingMinutes *int                 `json:"maxBookingMinutes,omitempty"`
	BufferMinutes     int                  `json:"bufferMinutes"`
	BaseHourlyPrice   float64              `json:"baseHourlyPrice"`
	Timezone          string               `json:"timezone"`
	WeeklyRules       []WeeklyRuleResponse `json:"weeklyRules"`
	Blackouts         []BlackoutResponse   `json:"blackouts"`
}

// Service сервис для чтения расписаний площадок
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// GetSchedule получает публичное расписание площадки
// Прошедшие блэкауты в ответ не попадают
func (s *Service) GetSchedule(ctx context.Context, venueID int64, now time.Time) (*ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for venue=%d", venueID)

	schedule, err := s.venueRepo.GetSchedule(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetSchedule: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetSchedule: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	resp := &ScheduleResponse{
		VenueID:           schedule.ID,
		Name:              schedule.Name,
		Status:            string(schedule.Status),
		Capacity:          schedule.Capacity,
		MinBookingMinutes: schedule.MinDuration(),
		MaxBookingMinutes: schedule.MaxBookingMinutes,
		BufferMinutes:     schedule.BufferMinutes,
		BaseHourlyPrice:   schedule.BaseHourlyPrice,
		Timezone:          schedule.Timezone,
		WeeklyRules:       make([]WeeklyRuleResponse, 0, len(schedule.WeeklyRules)),
		Blackouts:         make([]BlackoutResponse, 0, len(schedule.Blackouts)),
	}

	for _, rule := range schedule.WeeklyRules {
		resp.WeeklyRules = append(resp.WeeklyRules, WeeklyRuleResponse{
			DayOfWeek: int(rule.DayOfWeek),
			OpenTime:  rule.OpenTime.String(),
			CloseTime: rule.CloseTime.String(),
		})
	}

	for _, blackout := range schedule.Blackouts {
		if blackout.EndsAt.Before(now) {
			continue
		}
		resp.Blackouts = append(resp.Blackouts, BlackoutResponse{
			StartsAt: blackout.StartsAt,
			EndsAt:   blackout.EndsAt,
			Reason:   blackout.Reason,
		})
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for venue=%d", venueID)
	return resp, nil
}
