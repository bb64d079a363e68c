package ingredient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastropartner/gastropartner/pkg/pg"
)

// Storage defines ingredient persistence. All reads filter on the
// is_active tombstone so soft-deleted rows never leak into counts or
// cost math.
type Storage interface {
	Insert(ctx context.Context, ing Ingredient) error
	Get(ctx context.Context, orgID, id uuid.UUID) (Ingredient, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Ingredient, error)
	Update(ctx context.Context, ing Ingredient) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	CountActive(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type pgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage returns Postgres-backed ingredient storage.
func NewPgStorage(pool *pgxpool.Pool) Storage {
	return &pgStorage{pool: pool}
}

func (s *pgStorage) Insert(ctx context.Context, ing Ingredient) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ingredients (id, organization_id, name, category, unit, cost_per_unit, supplier, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ing.ID, ing.OrganizationID, ing.Name, ing.Category, ing.Unit, ing.CostPerUnit, ing.Supplier, ing.IsActive, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}
	return nil
}

func (s *pgStorage) Get(ctx context.Context, orgID, id uuid.UUID) (Ingredient, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, category, unit, cost_per_unit, supplier, is_active, created_at, updated_at
		FROM ingredients
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		id, orgID,
	)
	return scanIngredient(row)
}

func (s *pgStorage) List(ctx context.Context, orgID uuid.UUID) ([]Ingredient, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, name, category, unit, cost_per_unit, supplier, is_active, created_at, updated_at
		FROM ingredients
		WHERE organization_id = $1 AND is_active = true
		ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	defer rows.Close()

	var result []Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	return result, nil
}

func (s *pgStorage) Update(ctx context.Context, ing Ingredient) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE ingredients
		SET name = $3, category = $4, unit = $5, cost_per_unit = $6, supplier = $7, updated_at = now()
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		ing.ID, ing.OrganizationID, ing.Name, ing.Category, ing.Unit, ing.CostPerUnit, ing.Supplier,
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStorage) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE ingredients
		SET is_active = false, updated_at = now()
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		id, orgID,
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStorage) CountActive(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM ingredients
		WHERE organization_id = $1 AND is_active = true`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrFailedToCount, err)
	}
	return count, nil
}

func scanIngredient(row pgx.Row) (Ingredient, error) {
	var ing Ingredient
	err := row.Scan(&ing.ID, &ing.OrganizationID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPerUnit, &ing.Supplier, &ing.IsActive, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Ingredient{}, ErrNotFound
		}
		return Ingredient{}, errors.Join(ErrFailedToFetch, err)
	}
	return ing, nil
}
