package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastropartner/gastropartner/pkg/costing"
	"github.com/gastropartner/gastropartner/pkg/pg"
)

// Storage defines recipe persistence including the ingredient lines.
type Storage interface {
	Insert(ctx context.Context, rec Recipe) error
	Get(ctx context.Context, orgID, id uuid.UUID) (Recipe, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Recipe, error)
	Update(ctx context.Context, rec Recipe) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	CountActive(ctx context.Context, orgID uuid.UUID) (int64, error)
	CostLines(ctx context.Context, orgID, recipeID uuid.UUID) ([]costing.CostLine, error)
}

type pgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage returns Postgres-backed recipe storage.
func NewPgStorage(pool *pgxpool.Pool) Storage {
	return &pgStorage{pool: pool}
}

func (s *pgStorage) Insert(ctx context.Context, rec Recipe) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO recipes (id, organization_id, name, description, servings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.OrganizationID, rec.Name, rec.Description, rec.Servings, rec.IsActive, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}

	if err := insertLines(ctx, tx, rec.ID, rec.Ingredients); err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrFailedToCreate, err)
	}
	return nil
}

func (s *pgStorage) Get(ctx context.Context, orgID, id uuid.UUID) (Recipe, error) {
	var rec Recipe
	err := s.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, description, servings, is_active, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		id, orgID,
	).Scan(&rec.ID, &rec.OrganizationID, &rec.Name, &rec.Description, &rec.Servings, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Recipe{}, ErrNotFound
		}
		return Recipe{}, errors.Join(ErrFailedToFetch, err)
	}

	rec.Ingredients, err = s.lines(ctx, rec.ID)
	if err != nil {
		return Recipe{}, err
	}
	return rec, nil
}

func (s *pgStorage) List(ctx context.Context, orgID uuid.UUID) ([]Recipe, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, name, description, servings, is_active, created_at, updated_at
		FROM recipes
		WHERE organization_id = $1 AND is_active = true
		ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	defer rows.Close()

	var result []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.OrganizationID, &rec.Name, &rec.Description, &rec.Servings, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, errors.Join(ErrFailedToFetch, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	return result, nil
}

func (s *pgStorage) Update(ctx context.Context, rec Recipe) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE recipes
		SET name = $3, description = $4, servings = $5, updated_at = now()
		WHERE id = $1 AND organization_id = $2 AND is_active = true`,
		rec.ID, rec.OrganizationID, rec.Name, rec.Description, rec.Servings,
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	// Replace-all keeps line management simple; recipes have few lines.
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	if err := insertLines(ctx, tx, rec.ID, rec.Ingredients); err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrFailedToUpdate, err)
	}
	return nil
}

func (s *pgStorage) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE recipes
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
		SELECT count(*) FROM recipes
		WHERE organization_id = $1 AND is_active = true`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrFailedToCount, err)
	}
	return count, nil
}

// CostLines fetches the costing inputs for one recipe. Soft-deleted
// ingredients come back with Active=false so the calculator can exclude
// them; lines whose ingredient row is gone entirely cost zero.
func (s *pgStorage) CostLines(ctx context.Context, orgID, recipeID uuid.UUID) ([]costing.CostLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ri.quantity, COALESCE(i.cost_per_unit, 0), COALESCE(i.is_active, false)
		FROM recipe_ingredients ri
		LEFT JOIN ingredients i ON i.id = ri.ingredient_id AND i.organization_id = $1
		WHERE ri.recipe_id = $2`,
		orgID, recipeID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToCalcCost, err)
	}
	defer rows.Close()

	var lines []costing.CostLine
	for rows.Next() {
		var line costing.CostLine
		if err := rows.Scan(&line.Quantity, &line.CostPerUnit, &line.Active); err != nil {
			return nil, errors.Join(ErrFailedToCalcCost, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToCalcCost, err)
	}
	return lines, nil
}

func (s *pgStorage) lines(ctx context.Context, recipeID uuid.UUID) ([]Ingredient, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ingredient_id, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = $1`,
		recipeID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	defer rows.Close()

	var lines []Ingredient
	for rows.Next() {
		var line Ingredient
		if err := rows.Scan(&line.IngredientID, &line.Quantity, &line.Unit); err != nil {
			return nil, errors.Join(ErrFailedToFetch, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	return lines, nil
}

// rowExecer is the subset of pgx.Tx the line writer needs.
type rowExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertLines(ctx context.Context, tx rowExecer, recipeID uuid.UUID, lines []Ingredient) error {
	for _, line := range lines {
		// The id column has no DEFAULT; rows are keyed here like every
		// other table in the schema.
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), recipeID, line.IngredientID, line.Quantity, line.Unit,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
