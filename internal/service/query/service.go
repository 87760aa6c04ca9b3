package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/repository"
	postgresrepo "github.com/qesmsep/noir-reserve/internal/repository/postgres"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/service/availability"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrNotFound    = errors.New("reservation not found")
)

type Config struct {
	Location    *time.Location
	DaySheetTTL time.Duration
}

// Service answers the read side: single reservations and the per-date day
// sheet the host stand works from.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.DaySheetTTL <= 0 {
		cfg.DaySheetTTL = 10 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Reservation fetches one reservation by id.
//
// Returns:
//   - error: query.ErrNotFound when the id is unknown.
func (s *Service) Reservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "service.query.Reservation"

	res, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

// DaySheet lists every reservation touching the date, ordered by start time.
// Cached briefly; booking mutations invalidate the key.
func (s *Service) DaySheet(ctx context.Context, date string) ([]domain.Reservation, error) {
	const op = "service.query.DaySheet"

	day, err := time.ParseInLocation(availability.DateLayout, date, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}

	load := func(ctx context.Context) ([]domain.Reservation, error) {
		return s.store.Bookings().ListByRange(ctx, day, day.AddDate(0, 0, 1))
	}

	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return out, nil
	}

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyDaySheet(date), s.cfg.DaySheetTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
