package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qesmsep/noir-reserve/internal/domain"
)

type HoursRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *HoursRepo) With(db DB) *HoursRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *HoursRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// WeeklyForDay returns the base open ranges for a weekday, ordered by open
// minute. Empty means the venue is closed that day.
func (r *HoursRepo) WeeklyForDay(ctx context.Context, weekday time.Weekday) ([]domain.WeeklyHours, error) {
	const op = "postgres.HoursRepo.WeeklyForDay"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, weekday, open_minute, close_minute
       	 FROM venue_hours
      	 WHERE weekday = $1
      	 ORDER BY open_minute`,
		int(weekday),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.WeeklyHours
	for rows.Next() {
		var h domain.WeeklyHours
		var wd int
		if err := rows.Scan(&h.ID, &wd, &h.OpenMinute, &h.CloseMinute); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		h.Weekday = time.Weekday(wd)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ExceptionsForDate returns every exception row for a calendar date (local
// midnight instant).
func (r *HoursRepo) ExceptionsForDate(ctx context.Context, date time.Time) ([]domain.HoursException, error) {
	const op = "postgres.HoursRepo.ExceptionsForDate"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, date, closed, full_day, open_minute, close_minute, reason
       	 FROM hours_exceptions
      	 WHERE date = $1::date
      	 ORDER BY open_minute`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.HoursException
	for rows.Next() {
		var e domain.HoursException
		if err := rows.Scan(
			&e.ID, &e.Date, &e.Closed, &e.FullDay,
			&e.OpenMinute, &e.CloseMinute, &e.Reason,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
