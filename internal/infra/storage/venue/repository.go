package venue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/OmarShama/eventorove-booking/internal/domain"
	"github.com/OmarShama/eventorove-booking/pkg/dbmetrics"
	"github.com/OmarShama/eventorove-booking/pkg/psqlbuilder"
)

// Repository репозиторий для чтения расписания площадок
// Управление площадками (CRUD) живёт в соседнем сервисе,
// здесь только read model для движка доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSchedule получает полное расписание площадки:
// строку venues плюс недельные окна работы и блэкауты
func (r *Repository) GetSchedule(ctx context.Context, venueID int64) (*domain.VenueSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"status",
		"capacity",
		"min_booking_minutes",
		"max_booking_minutes",
		"buffer_minutes",
		"base_hourly_price",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("venues").
		Where(squirrel.Eq{"id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.VenueSchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.OwnerID,
		&schedule.Name,
		&schedule.Status,
		&schedule.Capacity,
		&schedule.MinBookingMinutes,
		&schedule.MaxBookingMinutes,
		&schedule.BufferMinutes,
		&schedule.BaseHourlyPrice,
		&schedule.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - scan venue: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	// Резолвим таймзону один раз при загрузке, дальше локация
	// протаскивается явно через все вычисления дат
	location, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - venue id=%d timezone %q: %v",
			ErrInvalidTimezone, venueID, schedule.Timezone, err)
	}
	schedule.Location = location

	if schedule.WeeklyRules, err = r.getWeeklyRules(ctx, executor, venueID); err != nil {
		return nil, err
	}

	if schedule.Blackouts, err = r.getBlackouts(ctx, executor, venueID); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Lock берёт блокировку строки площадки (SELECT ... FOR UPDATE)
// Точка сериализации создания бронирований: конкурентные админиссии
// одной площадки выстраиваются в очередь на этой блокировке.
// Должен вызываться только внутри транзакции
func (r *Repository) Lock(ctx context.Context, venueID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("venues").
		Where(squirrel.Eq{"id": venueID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Lock - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)

	if err == sql.ErrNoRows {
		return ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Lock - venue id=%d: %v", ErrExecQuery, venueID, err)
	}

	return nil
}

func (r *Repository) getWeeklyRules(ctx context.Context, executor dbmetrics.DBExecutor, venueID int64) ([]domain.WeeklyRule, error) {
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"open_time",
		"close_time",
	).
		From("venue_weekly_rules").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day_of_week ASC, open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WeeklyRule, 0)
	for rows.Next() {
		var rule domain.WeeklyRule
		var dayOfWeek int

		if err := rows.Scan(&dayOfWeek, &rule.OpenTime, &rule.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyRules - scan row: %v", ErrScanRow, err)
		}

		rule.DayOfWeek = time.Weekday(dayOfWeek)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func (r *Repository) getBlackouts(ctx context.Context, executor dbmetrics.DBExecutor, venueID int64) ([]domain.Blackout, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"starts_at",
		"ends_at",
		"reason",
	).
		From("venue_blackouts").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBlackouts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBlackouts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]domain.Blackout, 0)
	for rows.Next() {
		var blackout domain.Blackout

		if err := rows.Scan(&blackout.ID, &blackout.StartsAt, &blackout.EndsAt, &blackout.Reason); err != nil {
			return nil, fmt.Errorf("%w: getBlackouts - scan row: %v", ErrScanRow, err)
		}

		blackouts = append(blackouts, blackout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBlackouts - rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}
