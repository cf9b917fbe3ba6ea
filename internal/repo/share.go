package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globe-trotter/backend/internal/domain"
)

// ShareRepo defines the persistence operations for trip shares.
type ShareRepo interface {
	// Create inserts a new share grant and returns the persisted record.
	Create(ctx context.Context, share domain.TripShare) (domain.TripShare, error)

	// GetByID retrieves a share by primary key.
	// Returns domain.ErrNotFound if no share with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripShare, error)

	// ListByTripID returns all shares for a trip, newest first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripShare, error)
}

// pgShareRepo is the Postgres implementation of ShareRepo.
type pgShareRepo struct {
	db db
}

// NewShareRepo constructs a ShareRepo backed by the provided db connection.
func NewShareRepo(db db) ShareRepo {
	return &pgShareRepo{db: db}
}

const shareColumns = `id, trip_id, email, permission, created_at`

func (r *pgShareRepo) Create(ctx context.Context, share domain.TripShare) (domain.TripShare, error) {
	const q = `
		INSERT INTO trip_shares (trip_id, email, permission)
		VALUES (@trip_id, @email, @permission)
		RETURNING ` + shareColumns

	args := pgx.NamedArgs{
		"trip_id":    share.TripID,
		"email":      share.Email,
		"permission": share.Permission,
	}

	result, err := scanShare(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripShare{}, fmt.Errorf("repo.ShareRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripShare, error) {
	const q = `SELECT ` + shareColumns + ` FROM trip_shares WHERE id = @id`

	result, err := scanShare(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TripShare{}, fmt.Errorf("repo.ShareRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripShare, error) {
	const q = `SELECT ` + shareColumns + ` FROM trip_shares WHERE trip_id = @trip_id ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ShareRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var shares []domain.TripShare
	for rows.Next() {
		s, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ShareRepo.ListByTripID: scan: %w", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ShareRepo.ListByTripID: rows: %w", err)
	}

	return shares, nil
}

// scanShare maps a single database row into a domain.TripShare.
func scanShare(s scanner) (domain.TripShare, error) {
	var (
		sh     domain.TripShare
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &sh.Email, &sh.Permission, &sh.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripShare{}, domain.ErrNotFound
		}
		return domain.TripShare{}, err
	}

	sh.ID = uuid.UUID(id.Bytes)
	sh.TripID = uuid.UUID(tripID.Bytes)
	return sh, nil
}
