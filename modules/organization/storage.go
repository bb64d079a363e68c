package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastropartner/gastropartner/pkg/pg"
)

// Storage defines organization persistence.
type Storage interface {
	Insert(ctx context.Context, org Organization) error
	Get(ctx context.Context, id uuid.UUID) (Organization, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, planID string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type pgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage returns Postgres-backed organization storage.
func NewPgStorage(pool *pgxpool.Pool) Storage {
	return &pgStorage{pool: pool}
}

func (s *pgStorage) Insert(ctx context.Context, org Organization) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organizations (id, name, subscription_plan, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Name, org.SubscriptionPlan, org.IsActive, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}
	return nil
}

func (s *pgStorage) Get(ctx context.Context, id uuid.UUID) (Organization, error) {
	var org Organization
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, subscription_plan, is_active, created_at, updated_at
		FROM organizations
		WHERE id = $1 AND is_active = true`,
		id,
	).Scan(&org.ID, &org.Name, &org.SubscriptionPlan, &org.IsActive, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Organization{}, ErrNotFound
		}
		return Organization{}, errors.Join(ErrFailedToFetch, err)
	}
	return org, nil
}

func (s *pgStorage) UpdatePlan(ctx context.Context, id uuid.UUID, planID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE organizations
		SET subscription_plan = $2, updated_at = now()
		WHERE id = $1 AND is_active = true`,
		id, planID,
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStorage) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE organizations
		SET is_active = false, updated_at = now()
		WHERE id = $1 AND is_active = true`,
		id,
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
