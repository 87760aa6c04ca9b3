package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/repository"
	"github.com/qesmsep/noir-reserve/internal/schedule"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Overlapping fetches every conflict source touching [start, end) in one
// round trip: live reservations plus block events, merged into a single set.
// Venue-wide blocks come back with a NULL table id. excludeID, when non-nil,
// drops that reservation from the set so reschedules do not conflict with
// themselves.
//
// Returns:
//   - []schedule.Booking: occupied spans; empty means no conflicts.
//   - error: any storage failure, wrapped — callers must fail closed.
func (r *BookingRepo) Overlapping(
	ctx context.Context,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]schedule.Booking, error) {
	const op = "postgres.BookingRepo.Overlapping"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT table_id, starts_at, ends_at
           FROM reservations
          WHERE status IN ('pending', 'confirmed')
            AND starts_at < $2 AND ends_at > $1
            AND ($3::uuid IS NULL OR id <> $3)
         UNION ALL
         SELECT table_id, starts_at, ends_at
           FROM block_events
          WHERE starts_at < $2 AND ends_at > $1`,
		start, end, excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []schedule.Booking
	for rows.Next() {
		var (
			tableID *int64
			s, e    time.Time
		)
		if err := rows.Scan(&tableID, &s, &e); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, schedule.Booking{
			TableID: tableID,
			Window:  schedule.Interval{Start: s, End: e},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// FullDayBlockExists reports whether a full-day venue-wide block event falls
// inside [dayStart, dayEnd).
func (r *BookingRepo) FullDayBlockExists(ctx context.Context, dayStart, dayEnd time.Time) (bool, error) {
	const op = "postgres.BookingRepo.FullDayBlockExists"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
            SELECT 1 FROM block_events
             WHERE full_day AND table_id IS NULL
               AND starts_at < $2 AND ends_at > $1
         )`,
		dayStart, dayEnd,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// Insert writes a new reservation row. The reservations table carries an
// exclusion constraint on (table_id, tstzrange(starts_at, ends_at)) for live
// rows; a concurrent overlapping insert surfaces as repository.ErrOverlap.
//
// Returns:
//   - error: repository.ErrOverlap when the constraint rejects the row.
func (r *BookingRepo) Insert(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.BookingRepo.Insert"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO reservations
            (id, table_id, party_size, starts_at, ends_at, status,
             guest_name, guest_phone, guest_email, notes)
       	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
      	 RETURNING created_at, updated_at`,
		res.ID, res.TableID, res.PartySize, res.StartsAt, res.EndsAt, res.Status,
		res.GuestName, res.GuestPhone, res.GuestEmail, res.Notes,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a reservation by id.
//
// Returns:
//   - error: repository.ErrNotFound when no row matches.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	var res domain.Reservation
	err := db.QueryRow(ctx,
		`SELECT id, table_id, party_size, starts_at, ends_at, status,
                guest_name, guest_phone, guest_email, notes, created_at, updated_at
       	 FROM reservations WHERE id = $1`,
		id,
	).Scan(
		&res.ID, &res.TableID, &res.PartySize, &res.StartsAt, &res.EndsAt, &res.Status,
		&res.GuestName, &res.GuestPhone, &res.GuestEmail, &res.Notes,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &res, nil
}

// UpdateWindow rewrites the assigned table, window and party size of a live
// reservation.
func (r *BookingRepo) UpdateWindow(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.BookingRepo.UpdateWindow"

	db := r.handle()

	ct, err := db.Exec(ctx,
		`UPDATE reservations
        	SET table_id = $2, party_size = $3, starts_at = $4, ends_at = $5,
                updated_at = now()
      	 WHERE id = $1 AND status IN ('pending', 'confirmed')`,
		res.ID, res.TableID, res.PartySize, res.StartsAt, res.EndsAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Cancel soft-deletes a reservation by flipping its status.
//
// Returns:
//   - error: repository.ErrNotFound when the reservation does not exist or
//     is already cancelled.
func (r *BookingRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.BookingRepo.Cancel"

	db := r.handle()

	ct, err := db.Exec(ctx,
		`UPDATE reservations
        	SET status = 'cancelled', updated_at = now()
      	 WHERE id = $1 AND status IN ('pending', 'confirmed')`,
		id,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// ListByRange returns reservations starting inside [start, end), the admin
// day sheet ordered by start time.
func (r *BookingRepo) ListByRange(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	const op = "postgres.BookingRepo.ListByRange"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, table_id, party_size, starts_at, ends_at, status,
                guest_name, guest_phone, guest_email, notes, created_at, updated_at
       	 FROM reservations
      	 WHERE starts_at >= $1 AND starts_at < $2
      	 ORDER BY starts_at, table_id`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID, &res.TableID, &res.PartySize, &res.StartsAt, &res.EndsAt, &res.Status,
			&res.GuestName, &res.GuestPhone, &res.GuestEmail, &res.Notes,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ExpirePending cancels pending reservations older than ttl that never got
// confirmed, returning how many were released.
func (r *BookingRepo) ExpirePending(ctx context.Context, ttl time.Duration) (int64, error) {
	const op = "postgres.BookingRepo.ExpirePending"

	db := r.handle()

	ct, err := db.Exec(ctx,
		`UPDATE reservations
        	SET status = 'cancelled', updated_at = now()
      	 WHERE status = 'pending' AND created_at <= now() - $1::interval`,
		ttl,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return ct.RowsAffected(), nil
}
