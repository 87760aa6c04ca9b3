package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qesmsep/noir-reserve/internal/domain"
)

type TableRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TableRepo) With(db DB) *TableRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TableRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ListBookable returns bookable tables with capacity >= minCapacity, ordered
// ascending by capacity then id — the candidate ordering the greedy
// smallest-fit assignment relies on. An empty result is not an error.
//
// Returns:
//   - []domain.Table: candidate tables.
//   - error: any storage failure, wrapped.
func (r *TableRepo) ListBookable(ctx context.Context, minCapacity int) ([]domain.Table, error) {
	const op = "postgres.TableRepo.ListBookable"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, number, capacity, bookable
       	 FROM tables
      	 WHERE bookable AND capacity >= $1
      	 ORDER BY capacity, id`,
		minCapacity,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Bookable); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ListAll returns the whole table catalog, bookable or not.
func (r *TableRepo) ListAll(ctx context.Context) ([]domain.Table, error) {
	const op = "postgres.TableRepo.ListAll"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, number, capacity, bookable
       	 FROM tables
      	 ORDER BY number`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Bookable); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// MaxCapacity returns the largest bookable table capacity, 0 when the
// catalog is empty.
func (r *TableRepo) MaxCapacity(ctx context.Context) (int, error) {
	const op = "postgres.TableRepo.MaxCapacity"

	db := r.handle()

	var max int
	err := db.QueryRow(ctx,
		`SELECT COALESCE(MAX(capacity), 0) FROM tables WHERE bookable`,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return max, nil
}
