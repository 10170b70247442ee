package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the referenced peer request does not exist.
var ErrNotFound = errors.New("request not found")

// Ledger persists blood requests and peer requests. Blood requests are
// insert-only; peer requests mutate exactly once (the status transition).
type Ledger interface {
	InsertBloodRequest(ctx context.Context, req BloodRequest) error
	InsertPeerRequest(ctx context.Context, req PeerRequest) error
	GetPeerRequest(ctx context.Context, id string) (PeerRequest, error)
	UpdatePeerRequestStatus(ctx context.Context, id, status string) error
	ListPeerRequestsTo(ctx context.Context, userID string) ([]PeerRequest, error)
}

// PostgresLedger implements Ledger using PostgreSQL.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger builds a Postgres-backed request ledger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// InsertBloodRequest appends a blood request.
func (l *PostgresLedger) InsertBloodRequest(ctx context.Context, req BloodRequest) error {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(ctx, `INSERT INTO blood_requests (id, name, gender, mobile, email, blood_group, city, state, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, req.Name, req.Gender, req.Mobile, req.Email, req.BloodGroup, req.City, req.State, req.CreatedAt.UTC())
	return err
}

// InsertPeerRequest appends a peer request. Referential integrity on the user
// ids is intentionally not enforced; readers tolerate dangling references.
func (l *PostgresLedger) InsertPeerRequest(ctx context.Context, req PeerRequest) error {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return err
	}
	fromUser, err := uuid.Parse(req.FromUser)
	if err != nil {
		return err
	}
	toUser, err := uuid.Parse(req.ToUser)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(ctx, `INSERT INTO peer_requests (id, from_user, to_user, message, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		id, fromUser, toUser, req.Message, req.Status, req.CreatedAt.UTC())
	return err
}

// GetPeerRequest fetches a peer request by identifier.
func (l *PostgresLedger) GetPeerRequest(ctx context.Context, id string) (PeerRequest, error) {
	reqID, err := uuid.Parse(id)
	if err != nil {
		return PeerRequest{}, ErrNotFound
	}
	row := l.db.QueryRow(ctx, `SELECT id, from_user, to_user, message, status, created_at
        FROM peer_requests WHERE id = $1`, reqID)
	return scanPeerRequest(row)
}

// UpdatePeerRequestStatus transitions the request status.
func (l *PostgresLedger) UpdatePeerRequestStatus(ctx context.Context, id, status string) error {
	reqID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := l.db.Exec(ctx, `UPDATE peer_requests SET status = $1 WHERE id = $2`, status, reqID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPeerRequestsTo returns every peer request addressed to the user, newest first.
func (l *PostgresLedger) ListPeerRequestsTo(ctx context.Context, userID string) ([]PeerRequest, error) {
	toUser, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := l.db.Query(ctx, `SELECT id, from_user, to_user, message, status, created_at
        FROM peer_requests WHERE to_user = $1 ORDER BY created_at DESC`, toUser)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []PeerRequest
	for rows.Next() {
		req, err := scanPeerRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanPeerRequest(row pgx.Row) (PeerRequest, error) {
	var (
		id        uuid.UUID
		fromUser  uuid.UUID
		toUser    uuid.UUID
		createdAt time.Time
		req       PeerRequest
	)
	if err := row.Scan(&id, &fromUser, &toUser, &req.Message, &req.Status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PeerRequest{}, ErrNotFound
		}
		return PeerRequest{}, err
	}
	req.ID = id.String()
	req.FromUser = fromUser.String()
	req.ToUser = toUser.String()
	req.CreatedAt = createdAt.UTC()
	return req, nil
}
