package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastropartner/gastropartner/pkg/pg"
)

// Storage defines menu item persistence.
type Storage interface {
	Insert(ctx context.Context, item Item) error
	Get(ctx context.Context, orgID, id uuid.UUID) (Item, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Item, error)
	Update(ctx context.Context, item Item) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	CountActive(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type pgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage returns Postgres-backed menu item storage.
func NewPgStorage(pool *pgxpool.Pool) Storage {
	return &pgStorage{pool: pool}
}

func (s *pgStorage) Insert(ctx context.Context, item Item) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO menu_items (id, organization_id, recipe_id, name, category, selling_price, food_cost, target_food_cost_pct, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.OrganizationID, item.RecipeID, item.Name, item.Category, item.SellingPrice, item.FoodCost, item.TargetFoodCostPct, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrRecipeMissing
		}
		return errors.Join(ErrFailedToCreate, err)
	}
	return nil
}

func (s *pgStorage) Get(ctx context.Context, orgID, id uuid.UUID) (Item, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, organization_id, recipe_id, name, category, selling_price, food_cost, target_food_cost_pct, is_active, created_at, updated_at
		FROM menu_items
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		id, orgID,
	)
	return scanItem(row)
}

func (s *pgStorage) List(ctx context.Context, orgID uuid.UUID) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, recipe_id, name, category, selling_price, food_cost, target_food_cost_pct, is_active, created_at, updated_at
		FROM menu_items
		WHERE organization_id = $1 AND is_active = true
		ORDER BY category, name`,
		orgID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	return result, nil
}

func (s *pgStorage) Update(ctx context.Context, item Item) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items
		SET recipe_id = $3, name = $4, category = $5, selling_price = $6, food_cost = $7, target_food_cost_pct = $8, updated_at = now()
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		item.ID, item.OrganizationID, item.RecipeID, item.Name, item.Category, item.SellingPrice, item.FoodCost, item.TargetFoodCostPct,
	)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrRecipeMissing
		}
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStorage) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items
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
		SELECT count(*) FROM menu_items
		WHERE organization_id = $1 AND is_active = true`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrFailedToCount, err)
	}
	return count, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.OrganizationID, &item.RecipeID, &item.Name, &item.Category, &item.SellingPrice, &item.FoodCost, &item.TargetFoodCostPct, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Item{}, ErrNotFound
		}
		return Item{}, errors.Join(ErrFailedToFetch, err)
	}
	return item, nil
}
