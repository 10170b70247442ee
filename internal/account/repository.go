package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the referenced user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate indicates another user already owns the email or phone.
	ErrDuplicate = errors.New("email or phone already registered")
)

// Repository persists user documents.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	UpdateProfile(ctx context.Context, id string, profile Profile) error
	SetDonor(ctx context.Context, id string, donor bool) error
	SetPhoto(ctx context.Context, id, photo string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, phone, password_hash, blood_group, address, city, state, is_donor, is_disabled, photo, created_at`

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		userID, user.Name, user.Email, user.Phone, user.PasswordHash, user.BloodGroup,
		user.Address, user.City, user.State, user.IsDonor, user.IsDisabled, user.Photo,
		user.CreatedAt.UTC())
	return err
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// FindByEmail fetches a user by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// ExistsByEmailOrPhone reports whether any user already holds the email or phone.
func (r *PostgresRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone).Scan(&exists)
	return exists, err
}

// UpdateProfile overwrites the mutable profile fields.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, profile Profile) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users
        SET name = $1, email = $2, phone = $3, blood_group = $4, address = $5, city = $6, state = $7
        WHERE id = $8`,
		profile.Name, profile.Email, profile.Phone, profile.BloodGroup,
		profile.Address, profile.City, profile.State, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDonor toggles donor visibility.
func (r *PostgresRepository) SetDonor(ctx context.Context, id string, donor bool) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_donor = $1 WHERE id = $2`, donor, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPhoto stores the profile photo reference.
func (r *PostgresRepository) SetPhoto(ctx context.Context, id, photo string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET photo = $1 WHERE id = $2`, photo, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.BloodGroup, &user.Address, &user.City, &user.State,
		&user.IsDonor, &user.IsDisabled, &user.Photo, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
