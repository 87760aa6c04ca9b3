package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/qesmsep/noir-reserve/internal/domain"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/schedule"
)

// DateLayout is the wire format for calendar dates, interpreted in the venue
// timezone.
const DateLayout = "2006-01-02"

// Store is the read-side the availability computation needs. Implemented by
// the postgres store; tests substitute an in-memory fake.
type Store interface {
	BookableTables(ctx context.Context, minCapacity int) ([]domain.Table, error)
	Overlapping(ctx context.Context, start, end time.Time) ([]schedule.Booking, error)
	FullDayBlockExists(ctx context.Context, dayStart, dayEnd time.Time) (bool, error)
	WeeklyHours(ctx context.Context, weekday time.Weekday) ([]domain.WeeklyHours, error)
	ExceptionsForDate(ctx context.Context, date time.Time) ([]domain.HoursException, error)
}

type Config struct {
	SlotInterval      time.Duration
	SlotDuration      time.Duration
	SearchHorizon     time.Duration
	BookingWindowDays int
	Location          *time.Location
	SlotsTTL          time.Duration
}

type Service struct {
	store Store
	cache *redisrepo.Cache
	cfg   Config
	now   func() time.Time
}

func New(store Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.SlotInterval <= 0 {
		cfg.SlotInterval = schedule.DefaultStep
	}

	if cfg.SlotDuration <= 0 {
		cfg.SlotDuration = 90 * time.Minute
	}

	if cfg.SearchHorizon <= 0 {
		cfg.SearchHorizon = schedule.DefaultHorizon
	}

	if cfg.BookingWindowDays <= 0 {
		cfg.BookingWindowDays = 60
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.SlotsTTL <= 0 {
		cfg.SlotsTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
		now:   time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Slots returns every bookable time-of-day ("HH:MM", 15-minute grid) for the
// date and party size: base weekday hours minus exceptional closures, keeping
// only instants where at least one capacity-sufficient table is free for the
// configured slot duration. Out-of-window dates, closed days and full-day
// blocks yield an empty list. Results are cached briefly per (date, party).
//
// Returns:
//   - []string: ordered slot list, possibly empty, never nil.
//   - error: availability.ErrInvalidDate / ErrInvalidPartySize on bad input;
//     any storage failure aborts the whole computation.
func (s *Service) Slots(ctx context.Context, date string, partySize int) ([]string, error) {
	const op = "service.availability.Slots"

	day, err := time.ParseInLocation(DateLayout, date, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}

	if partySize <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPartySize)
	}

	if s.cache == nil {
		slots, err := s.computeSlots(ctx, day, partySize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return slots, nil
	}

	key := redisrepo.KeyDaySlots(date, partySize)

	slots, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SlotsTTL,
		func(ctx context.Context) ([]string, error) {
			return s.computeSlots(ctx, day, partySize)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return slots, nil
}

func (s *Service) computeSlots(ctx context.Context, day time.Time, partySize int) ([]string, error) {
	slots := make([]string, 0)

	now := s.now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
	if day.Before(today) || day.After(today.AddDate(0, 0, s.cfg.BookingWindowDays)) {
		return slots, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	blocked, err := s.store.FullDayBlockExists(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if blocked {
		return slots, nil
	}

	exceptions, err := s.store.ExceptionsForDate(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	var closures []schedule.Interval
	for _, ex := range exceptions {
		if !ex.Closed {
			// Exceptional opens are recorded but not applied here.
			continue
		}
		if ex.FullDay {
			return slots, nil
		}
		closures = append(closures, schedule.Interval{
			Start: dayStart.Add(time.Duration(ex.OpenMinute) * time.Minute),
			End:   dayStart.Add(time.Duration(ex.CloseMinute) * time.Minute),
		})
	}

	weekly, err := s.store.WeeklyHours(ctx, day.Weekday())
	if err != nil {
		return nil, err
	}
	if len(weekly) == 0 {
		return slots, nil
	}

	var ranges []schedule.Interval
	for _, h := range weekly {
		ranges = append(ranges, schedule.Interval{
			Start: dayStart.Add(time.Duration(h.OpenMinute) * time.Minute),
			End:   dayStart.Add(time.Duration(h.CloseMinute) * time.Minute),
		})
	}

	open := schedule.SubtractClosures(ranges, closures)
	instants := schedule.AlignedSlots(open, s.cfg.SlotInterval)
	if len(instants) == 0 {
		return slots, nil
	}

	tables, err := s.store.BookableTables(ctx, partySize)
	if err != nil {
		return nil, err
	}
	candidates := schedule.Candidates(tables, partySize)
	if len(candidates) == 0 {
		return slots, nil
	}

	// One batched fetch covers every slot window for the day.
	last := instants[len(instants)-1]
	bookings, err := s.store.Overlapping(ctx, dayStart, last.Add(s.cfg.SlotDuration))
	if err != nil {
		return nil, err
	}
	conflicts := schedule.NewConflictSet(bookings)

	for _, instant := range instants {
		if instant.Before(now) {
			continue
		}
		window := schedule.Interval{Start: instant, End: instant.Add(s.cfg.SlotDuration)}
		if schedule.AssignTable(candidates, conflicts, window) != nil {
			slots = append(slots, instant.Format("15:04"))
		}
	}

	return slots, nil
}

// NextAvailable finds the earliest instant at or after from where a table
// seating partySize is free for duration (slot duration when zero). Nil means
// nothing inside the search horizon.
//
// Returns:
//   - error: availability.ErrPartyTooLarge when no table can ever fit the
//     party; availability.ErrInvalidPartySize on bad input.
func (s *Service) NextAvailable(
	ctx context.Context,
	from time.Time,
	partySize int,
	duration time.Duration,
) (*time.Time, error) {
	const op = "service.availability.NextAvailable"

	if partySize <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPartySize)
	}

	if duration <= 0 {
		duration = s.cfg.SlotDuration
	}

	tables, err := s.store.BookableTables(ctx, partySize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	candidates := schedule.Candidates(tables, partySize)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrPartyTooLarge)
	}

	bookings, err := s.store.Overlapping(ctx, from, from.Add(s.cfg.SearchHorizon+duration))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next, err := schedule.NextAvailable(
		ctx,
		candidates,
		schedule.NewConflictSet(bookings),
		from,
		duration,
		schedule.SearchOptions{Step: s.cfg.SlotInterval, Horizon: s.cfg.SearchHorizon},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return next, nil
}
