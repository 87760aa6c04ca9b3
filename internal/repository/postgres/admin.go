package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qesmsep/noir-reserve/internal/domain"
)

type AdminRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AdminRepo) With(db DB) *AdminRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AdminRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CreateTable adds a table to the catalog.
//
// Returns:
//   - int64: the new table id.
//   - error: repository.ErrConflict when the table number is taken.
func (r *AdminRepo) CreateTable(ctx context.Context, number, capacity int, bookable bool) (int64, error) {
	const op = "postgres.AdminRepo.CreateTable"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO tables(number, capacity, bookable)
       	 VALUES ($1, $2, $3)
     	 RETURNING id`,
		number, capacity, bookable,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// CreateBlockEvent records a blackout span. A nil tableID blocks the whole
// venue.
func (r *AdminRepo) CreateBlockEvent(ctx context.Context, ev *domain.BlockEvent) (int64, error) {
	const op = "postgres.AdminRepo.CreateBlockEvent"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO block_events(table_id, title, starts_at, ends_at, full_day)
       	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		ev.TableID, ev.Title, ev.StartsAt, ev.EndsAt, ev.FullDay,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// ReplaceWeeklyHours swaps the base open ranges for one weekday.
func (r *AdminRepo) ReplaceWeeklyHours(ctx context.Context, weekday time.Weekday, ranges []domain.WeeklyHours) error {
	const op = "postgres.AdminRepo.ReplaceWeeklyHours"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`DELETE FROM venue_hours WHERE weekday = $1`, int(weekday),
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	batch := &pgx.Batch{}
	for _, h := range ranges {
		batch.Queue(
			`INSERT INTO venue_hours(weekday, open_minute, close_minute)
         	 VALUES ($1, $2, $3)`,
			int(weekday), h.OpenMinute, h.CloseMinute,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// AddHoursException records a date-specific closure or exceptional open.
func (r *AdminRepo) AddHoursException(ctx context.Context, ex *domain.HoursException) (int64, error) {
	const op = "postgres.AdminRepo.AddHoursException"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO hours_exceptions(date, closed, full_day, open_minute, close_minute, reason)
       	 VALUES ($1::date, $2, $3, $4, $5, $6)
     	 RETURNING id`,
		ex.Date, ex.Closed, ex.FullDay, ex.OpenMinute, ex.CloseMinute, ex.Reason,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}
