package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/repository"
	postgresrepo "github.com/qesmsep/noir-reserve/internal/repository/postgres"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/service/availability"
	"github.com/qesmsep/noir-reserve/internal/uow"
)

const minutesPerDay = 24 * 60

type Config struct {
	MaxPartySize int
	Location     *time.Location
}

// Service covers the floor-management side: tables, private events, opening
// hours. Mutations that change availability invalidate the affected cached
// dates after commit.
type Service struct {
	store  *postgresrepo.Store
	uow    *uow.UoW
	cache  *redisrepo.Cache
	pubsub *redisrepo.AvailabilityPubSub
	logger *slog.Logger
	cfg    Config
}

func New(
	store *postgresrepo.Store,
	u *uow.UoW,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.MaxPartySize <= 0 {
		cfg.MaxPartySize = 12
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		uow:    u,
		cache:  cache,
		pubsub: pubsub,
		logger: logger,
		cfg:    cfg,
	}
}

// CreateTable registers a table.
//
// Returns:
//   - int64: the new table id.
//   - error: ErrInvalidTable on bad input, ErrDuplicateTable when the number
//     is taken.
func (s *Service) CreateTable(ctx context.Context, number, capacity int, bookable bool) (int64, error) {
	const op = "service.admin.CreateTable"

	if number <= 0 || capacity <= 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidTable)
	}

	id, err := s.store.Admin().CreateTable(ctx, number, capacity, bookable)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateTable)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ListTables returns every table, bookable or not.
func (s *Service) ListTables(ctx context.Context) ([]domain.Table, error) {
	const op = "service.admin.ListTables"

	tables, err := s.store.Tables().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tables, nil
}

// CreateBlockEvent records a private event. A nil TableID blocks the whole
// venue for the window. Every calendar date the window touches is invalidated
// after commit.
//
// Returns:
//   - int64: the new event id.
//   - error: ErrInvalidWindow on a malformed window.
func (s *Service) CreateBlockEvent(ctx context.Context, ev *domain.BlockEvent) (int64, error) {
	const op = "service.admin.CreateBlockEvent"

	if ev.StartsAt.IsZero() || !ev.StartsAt.Before(ev.EndsAt) {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidWindow)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Admin().With(tx).CreateBlockEvent(ctx, ev)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.invalidateSpan(ctx, ev.StartsAt, ev.EndsAt)
		})

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// SetWeeklyHours replaces every service range for a weekday. Ranges are in
// minutes since local midnight and must be ordered and non-overlapping.
func (s *Service) SetWeeklyHours(ctx context.Context, weekday time.Weekday, ranges []domain.WeeklyHours) error {
	const op = "service.admin.SetWeeklyHours"

	prevClose := 0
	for _, r := range ranges {
		if r.OpenMinute < prevClose || r.OpenMinute >= r.CloseMinute || r.CloseMinute > minutesPerDay {
			return fmt.Errorf("%s: %w", op, ErrInvalidHours)
		}
		prevClose = r.CloseMinute
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		return s.store.Admin().With(tx).ReplaceWeeklyHours(ctx, weekday, ranges)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AddHoursException records a one-off deviation for a single date.
//
// Returns:
//   - int64: the new exception id.
//   - error: ErrInvalidHours on a malformed range.
func (s *Service) AddHoursException(ctx context.Context, ex *domain.HoursException) (int64, error) {
	const op = "service.admin.AddHoursException"

	if ex.Date.IsZero() {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidHours)
	}
	if !ex.FullDay {
		if ex.OpenMinute < 0 || ex.OpenMinute >= ex.CloseMinute || ex.CloseMinute > minutesPerDay {
			return 0, fmt.Errorf("%s: %w", op, ErrInvalidHours)
		}
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Admin().With(tx).AddHoursException(ctx, ex)
		if err != nil {
			return err
		}

		date := ex.Date.In(s.cfg.Location).Format(availability.DateLayout)
		after(func(ctx context.Context) {
			s.invalidateDate(ctx, date)
		})

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Service) invalidateSpan(ctx context.Context, start, end time.Time) {
	day := start.In(s.cfg.Location)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.cfg.Location)
	for day.Before(end) {
		s.invalidateDate(ctx, day.Format(availability.DateLayout))
		day = day.AddDate(0, 0, 1)
	}
}

func (s *Service) invalidateDate(ctx context.Context, date string) {
	if s.cache != nil {
		if err := s.cache.InvalidateDate(ctx, date, s.cfg.MaxPartySize); err != nil {
			s.logger.WarnContext(ctx, "cache invalidation failed", "date", date, "error", err)
		}
	}

	if s.pubsub != nil {
		if err := s.pubsub.PublishDateChanged(ctx, date); err != nil {
			s.logger.WarnContext(ctx, "availability publish failed", "date", date, "error", err)
		}
	}
}
