package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qesmsep/noir-reserve/internal/config"
	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/notify"
	postgresrepo "github.com/qesmsep/noir-reserve/internal/repository/postgres"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/schedule"
	"github.com/qesmsep/noir-reserve/internal/service/admin"
	"github.com/qesmsep/noir-reserve/internal/service/availability"
	"github.com/qesmsep/noir-reserve/internal/service/booking"
	"github.com/qesmsep/noir-reserve/internal/service/query"
	"github.com/qesmsep/noir-reserve/internal/uow"
)

// Services bundles every application service behind one constructor so the
// app and the CLI wire dependencies in a single place.
type Services struct {
	Availability *availability.Service
	Booking      *booking.Service
	Admin        *admin.Service
	Query        *query.Service
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	gateway notify.Gateway,
	logger *slog.Logger,
	cfg config.BookingConfig,
	loc *time.Location,
) *Services {
	u := uow.NewUoW(store)

	avail := availability.New(&storeAdapter{store: store}, cache, availability.Config{
		SlotInterval:      cfg.SlotInterval,
		SlotDuration:      cfg.SlotDuration,
		SearchHorizon:     cfg.SearchHorizon,
		BookingWindowDays: cfg.BookingWindowDays,
		Location:          loc,
	})

	return &Services{
		Availability: avail,
		Booking: booking.New(&bookingStoreAdapter{store: store}, u, cache, pubsub, limiter, avail, gateway, logger, booking.Config{
			SlotDuration:      cfg.SlotDuration,
			BookingWindowDays: cfg.BookingWindowDays,
			MaxPartySize:      cfg.MaxPartySize,
			PendingTTL:        cfg.PendingTTL,
			Location:          loc,
		}),
		Admin: admin.New(store, u, cache, pubsub, logger, admin.Config{
			MaxPartySize: cfg.MaxPartySize,
			Location:     loc,
		}),
		Query: query.New(store, cache, query.Config{
			Location: loc,
		}),
	}
}

// storeAdapter narrows the postgres store to the read interface the
// availability computation wants.
type storeAdapter struct {
	store *postgresrepo.Store
}

func (a *storeAdapter) BookableTables(ctx context.Context, minCapacity int) ([]domain.Table, error) {
	return a.store.Tables().ListBookable(ctx, minCapacity)
}

func (a *storeAdapter) Overlapping(ctx context.Context, start, end time.Time) ([]schedule.Booking, error) {
	return a.store.Bookings().Overlapping(ctx, start, end, nil)
}

func (a *storeAdapter) FullDayBlockExists(ctx context.Context, dayStart, dayEnd time.Time) (bool, error) {
	return a.store.Bookings().FullDayBlockExists(ctx, dayStart, dayEnd)
}

func (a *storeAdapter) WeeklyHours(ctx context.Context, weekday time.Weekday) ([]domain.WeeklyHours, error) {
	return a.store.Hours().WeeklyForDay(ctx, weekday)
}

func (a *storeAdapter) ExceptionsForDate(ctx context.Context, date time.Time) ([]domain.HoursException, error) {
	return a.store.Hours().ExceptionsForDate(ctx, date)
}

// bookingStoreAdapter narrows the postgres store to the write interface the
// booking flow wants, threading the transaction handle through With. A nil
// tx falls back to the pooled connection.
type bookingStoreAdapter struct {
	store *postgresrepo.Store
}

func (a *bookingStoreAdapter) BookableTables(ctx context.Context, tx postgresrepo.DB, minCapacity int) ([]domain.Table, error) {
	return a.store.Tables().With(tx).ListBookable(ctx, minCapacity)
}

func (a *bookingStoreAdapter) Overlapping(ctx context.Context, tx postgresrepo.DB, start, end time.Time, excludeID *uuid.UUID) ([]schedule.Booking, error) {
	return a.store.Bookings().With(tx).Overlapping(ctx, start, end, excludeID)
}

func (a *bookingStoreAdapter) InsertReservation(ctx context.Context, tx postgresrepo.DB, res *domain.Reservation) error {
	return a.store.Bookings().With(tx).Insert(ctx, res)
}

func (a *bookingStoreAdapter) GetReservation(ctx context.Context, tx postgresrepo.DB, id uuid.UUID) (*domain.Reservation, error) {
	return a.store.Bookings().With(tx).Get(ctx, id)
}

func (a *bookingStoreAdapter) UpdateReservation(ctx context.Context, tx postgresrepo.DB, res *domain.Reservation) error {
	return a.store.Bookings().With(tx).UpdateWindow(ctx, res)
}

func (a *bookingStoreAdapter) CancelReservation(ctx context.Context, tx postgresrepo.DB, id uuid.UUID) error {
	return a.store.Bookings().With(tx).Cancel(ctx, id)
}

func (a *bookingStoreAdapter) ExpirePending(ctx context.Context, ttl time.Duration) (int64, error) {
	return a.store.Bookings().ExpirePending(ctx, ttl)
}
