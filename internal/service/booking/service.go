package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/notify"
	"github.com/qesmsep/noir-reserve/internal/repository"
	postgresrepo "github.com/qesmsep/noir-reserve/internal/repository/postgres"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/schedule"
	"github.com/qesmsep/noir-reserve/internal/service/availability"
	"github.com/qesmsep/noir-reserve/internal/uow"
)

// Store is the write-side the booking flow needs. The tx handle comes from
// the TxRunner; a nil tx means the pooled connection. Implemented over the
// postgres store; tests substitute an in-memory fake.
type Store interface {
	BookableTables(ctx context.Context, tx postgresrepo.DB, minCapacity int) ([]domain.Table, error)
	Overlapping(ctx context.Context, tx postgresrepo.DB, start, end time.Time, excludeID *uuid.UUID) ([]schedule.Booking, error)
	InsertReservation(ctx context.Context, tx postgresrepo.DB, res *domain.Reservation) error
	GetReservation(ctx context.Context, tx postgresrepo.DB, id uuid.UUID) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, tx postgresrepo.DB, res *domain.Reservation) error
	CancelReservation(ctx context.Context, tx postgresrepo.DB, id uuid.UUID) error
	ExpirePending(ctx context.Context, ttl time.Duration) (int64, error)
}

// TxRunner runs a function inside a transaction and fires after-commit
// hooks. Satisfied by *uow.UoW.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error) error
}

type Config struct {
	SlotDuration      time.Duration
	BookingWindowDays int
	MaxPartySize      int
	PendingTTL        time.Duration
	Location          *time.Location
}

type Service struct {
	store   Store
	uow     TxRunner
	cache   *redisrepo.Cache
	pubsub  *redisrepo.AvailabilityPubSub
	limiter *redisrepo.SlidingWindowLimiter
	avail   *availability.Service
	gateway notify.Gateway
	logger  *slog.Logger
	cfg     Config
	now     func() time.Time
}

func New(
	store Store,
	u TxRunner,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	avail *availability.Service,
	gateway notify.Gateway,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.SlotDuration <= 0 {
		cfg.SlotDuration = 90 * time.Minute
	}

	if cfg.BookingWindowDays <= 0 {
		cfg.BookingWindowDays = 60
	}

	if cfg.MaxPartySize <= 0 {
		cfg.MaxPartySize = 12
	}

	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = 15 * time.Minute
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if gateway == nil {
		gateway = notify.Noop{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:   store,
		uow:     u,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		avail:   avail,
		gateway: gateway,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

type CreateParams struct {
	PartySize  int
	StartsAt   time.Time
	EndsAt     time.Time
	GuestName  string
	GuestPhone string
	GuestEmail string
	Notes      string
	Hold       bool
}

// errNoTable is the in-transaction marker for "every candidate is occupied".
// Create translates it into a NoTableError with a suggested alternative.
var errNoTable = errors.New("no table free for the window")

// Create books a table for the requested window. Table choice and the insert
// run inside one serializable transaction, so the availability snapshot the
// assignment was computed from still holds when the row lands. A loss against
// a concurrent writer is retried once; if the window is genuinely full the
// caller gets a NoTableError carrying the next free time.
//
// Returns:
//   - *domain.Reservation: the stored reservation with its assigned table.
//   - error: ErrInvalidWindow, ErrInvalidPartySize, ErrPartyTooLarge,
//     *RateLimitedError, *NoTableError, or a wrapped storage failure.
func (s *Service) Create(ctx context.Context, p CreateParams, callerKey string) (*domain.Reservation, error) {
	const op = "service.booking.Create"

	if err := s.validateCreate(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.limiter != nil && callerKey != "" {
		allowed, _, retryAfter, err := s.limiter.Allow(ctx, callerKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !allowed {
			return nil, &RateLimitedError{RetryAfter: retryAfter}
		}
	}

	var res *domain.Reservation
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		res, err = s.createTx(ctx, p)
		if err == nil {
			return res, nil
		}
		if raceLost(err) {
			continue
		}
		break
	}

	if errors.Is(err, errNoTable) || raceLost(err) {
		return nil, &NoTableError{NextAvailable: s.suggestNext(ctx, p)}
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// raceLost reports whether the transaction lost to a concurrent writer:
// either the exclusion constraint rejected the row or the serializable
// snapshot could not be kept.
func raceLost(err error) bool {
	return errors.Is(err, repository.ErrOverlap) || postgresrepo.IsRetryable(err)
}

func (s *Service) validateCreate(p *CreateParams) error {
	if p.PartySize <= 0 {
		return ErrInvalidPartySize
	}
	if p.PartySize > s.cfg.MaxPartySize {
		return ErrPartyTooLarge
	}

	if !p.StartsAt.IsZero() && p.EndsAt.IsZero() {
		p.EndsAt = p.StartsAt.Add(s.cfg.SlotDuration)
	}

	return s.validateWindow(p.StartsAt, p.EndsAt)
}

// validateWindow guards every booking mutation: the window must be ordered,
// not in the past and within the advance-booking window.
func (s *Service) validateWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() {
		return ErrInvalidWindow
	}
	if !startsAt.Before(endsAt) {
		return ErrInvalidWindow
	}

	now := s.now()
	if startsAt.Before(now) {
		return ErrInvalidWindow
	}
	if startsAt.After(now.AddDate(0, 0, s.cfg.BookingWindowDays)) {
		return ErrInvalidWindow
	}

	return nil
}

func (s *Service) createTx(ctx context.Context, p CreateParams) (*domain.Reservation, error) {
	var res *domain.Reservation

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		tables, err := s.store.BookableTables(ctx, tx, p.PartySize)
		if err != nil {
			return err
		}
		candidates := schedule.Candidates(tables, p.PartySize)
		if len(candidates) == 0 {
			return ErrPartyTooLarge
		}

		window := schedule.Interval{Start: p.StartsAt, End: p.EndsAt}

		bookings, err := s.store.Overlapping(ctx, tx, p.StartsAt, p.EndsAt, nil)
		if err != nil {
			return err
		}

		tbl := schedule.AssignTable(candidates, schedule.NewConflictSet(bookings), window)
		if tbl == nil {
			return errNoTable
		}

		status := domain.StatusConfirmed
		if p.Hold {
			status = domain.StatusPending
		}

		res = &domain.Reservation{
			ID:         uuid.New(),
			TableID:    tbl.ID,
			PartySize:  p.PartySize,
			StartsAt:   p.StartsAt,
			EndsAt:     p.EndsAt,
			Status:     status,
			GuestName:  p.GuestName,
			GuestPhone: p.GuestPhone,
			GuestEmail: p.GuestEmail,
			Notes:      p.Notes,
		}
		if err := s.store.InsertReservation(ctx, tx, res); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.afterBookingChanged(ctx, res.StartsAt)
			s.notifyGuest(ctx, res, subjectFor(res.Status))
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Cancel soft-cancels a reservation, freeing its table for the window.
//
// Returns:
//   - error: ErrNotFound when the id does not match a live reservation.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	const op = "service.booking.Cancel"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		res, err := s.store.GetReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.store.CancelReservation(ctx, tx, id); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.afterBookingChanged(ctx, res.StartsAt)
			s.notifyGuest(ctx, res, "Reservation cancelled")
		})

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Reschedule moves a reservation to a new window and, when partySize is
// positive, a new party size. The table is reassigned with the same
// smallest-fit rule; the reservation's own row is excluded from the conflict
// check so shrinking or shifting in place succeeds. The new window passes
// the same validation as a fresh booking.
//
// Returns:
//   - *domain.Reservation: the updated reservation.
//   - error: ErrNotFound, ErrInvalidWindow, ErrPartyTooLarge, *NoTableError,
//     or a wrapped storage failure.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, startsAt, endsAt time.Time, partySize int) (*domain.Reservation, error) {
	const op = "service.booking.Reschedule"

	if !startsAt.IsZero() && endsAt.IsZero() {
		endsAt = startsAt.Add(s.cfg.SlotDuration)
	}
	if err := s.validateWindow(startsAt, endsAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if partySize > s.cfg.MaxPartySize {
		return nil, fmt.Errorf("%s: %w", op, ErrPartyTooLarge)
	}

	var res *domain.Reservation
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		res, err = s.rescheduleTx(ctx, id, startsAt, endsAt, partySize)
		if err == nil {
			return res, nil
		}
		if raceLost(err) {
			continue
		}
		break
	}

	switch {
	case errors.Is(err, errNoTable), raceLost(err):
		p := CreateParams{PartySize: partySize, StartsAt: startsAt, EndsAt: endsAt}
		if p.PartySize <= 0 {
			if cur, gerr := s.store.GetReservation(ctx, nil, id); gerr == nil {
				p.PartySize = cur.PartySize
			}
		}
		return nil, &NoTableError{NextAvailable: s.suggestNext(ctx, p)}
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

func (s *Service) rescheduleTx(ctx context.Context, id uuid.UUID, startsAt, endsAt time.Time, partySize int) (*domain.Reservation, error) {
	var res *domain.Reservation

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.GetReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if partySize > 0 {
			cur.PartySize = partySize
		}

		tables, err := s.store.BookableTables(ctx, tx, cur.PartySize)
		if err != nil {
			return err
		}
		candidates := schedule.Candidates(tables, cur.PartySize)
		if len(candidates) == 0 {
			return ErrPartyTooLarge
		}

		window := schedule.Interval{Start: startsAt, End: endsAt}

		bookings, err := s.store.Overlapping(ctx, tx, startsAt, endsAt, &id)
		if err != nil {
			return err
		}

		tbl := schedule.AssignTable(candidates, schedule.NewConflictSet(bookings), window)
		if tbl == nil {
			return errNoTable
		}

		oldStart := cur.StartsAt
		cur.TableID = tbl.ID
		cur.StartsAt = startsAt
		cur.EndsAt = endsAt
		if err := s.store.UpdateReservation(ctx, tx, cur); err != nil {
			return err
		}
		res = cur

		after(func(ctx context.Context) {
			s.afterBookingChanged(ctx, oldStart)
			s.afterBookingChanged(ctx, res.StartsAt)
			s.notifyGuest(ctx, res, "Reservation updated")
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ExpirePending cancels pending holds older than the configured TTL. Run
// periodically by the app and on demand from the CLI.
func (s *Service) ExpirePending(ctx context.Context) (int64, error) {
	const op = "service.booking.ExpirePending"

	n, err := s.store.ExpirePending(ctx, s.cfg.PendingTTL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if n > 0 {
		s.logger.InfoContext(ctx, "expired pending holds", "count", n)
	}

	return n, nil
}

func (s *Service) suggestNext(ctx context.Context, p CreateParams) *time.Time {
	if s.avail == nil || p.PartySize <= 0 {
		return nil
	}

	next, err := s.avail.NextAvailable(ctx, p.StartsAt, p.PartySize, p.EndsAt.Sub(p.StartsAt))
	if err != nil {
		s.logger.WarnContext(ctx, "next-available lookup failed", "error", err)
		return nil
	}

	return next
}

func (s *Service) afterBookingChanged(ctx context.Context, at time.Time) {
	date := at.In(s.cfg.Location).Format(availability.DateLayout)

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

func subjectFor(status domain.ReservationStatus) string {
	if status == domain.StatusPending {
		return "Reservation held"
	}
	return "Reservation confirmed"
}

func (s *Service) notifyGuest(ctx context.Context, res *domain.Reservation, subject string) {
	if res.GuestPhone == "" && res.GuestEmail == "" {
		return
	}

	msg := notify.Message{
		Phone:   res.GuestPhone,
		Email:   res.GuestEmail,
		Subject: subject,
		Body: fmt.Sprintf("%s, party of %d, %s",
			res.GuestName, res.PartySize,
			res.StartsAt.In(s.cfg.Location).Format("Mon Jan 2 3:04 PM")),
	}
	if err := s.gateway.Send(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "guest notification failed", "reservation_id", res.ID, "error", err)
	}
}
