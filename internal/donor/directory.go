package donor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnavailable indicates the backing store could not be queried. Callers can
// tell a failed lookup apart from a genuinely empty match set.
var ErrUnavailable = errors.New("donor directory unavailable")

// Record is the matching projection of a user: just enough to contact a donor.
type Record struct {
	Name       string
	Email      string
	Phone      string
	BloodGroup string
	City       string
	State      string
}

// Criteria is an exact-match query. No normalization happens here; callers own
// casing and whitespace.
type Criteria struct {
	BloodGroup string
	City       string
	State      string
}

// Directory queries active donors. It is a read view over users, never a
// separately owned collection.
type Directory interface {
	Find(ctx context.Context, criteria Criteria) ([]Record, error)
}

// PostgresDirectory implements Directory over the users table.
type PostgresDirectory struct {
	db *pgxpool.Pool
}

// NewPostgresDirectory builds a Postgres-backed donor directory.
func NewPostgresDirectory(db *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// Find returns every active donor whose blood group, city and state all equal
// the criteria. A store error surfaces as ErrUnavailable rather than an empty
// result.
func (d *PostgresDirectory) Find(ctx context.Context, criteria Criteria) ([]Record, error) {
	rows, err := d.db.Query(ctx, `SELECT name, email, phone, blood_group, city, state
        FROM users
        WHERE is_donor AND NOT is_disabled
          AND blood_group = $1 AND city = $2 AND state = $3`,
		criteria.BloodGroup, criteria.City, criteria.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Name, &rec.Email, &rec.Phone, &rec.BloodGroup, &rec.City, &rec.State); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return records, nil
}
