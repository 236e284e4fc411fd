package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("recipe not found")

type Repository interface {
	Create(ctx context.Context, recipe Recipe) (int64, error)
	Get(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, book Book, search string) ([]Recipe, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const recipeColumns = `id, book, name, description, location, ingredients,
	created_by, created_by_name, created_at, updated_at`

func (r *repository) Create(ctx context.Context, recipe Recipe) (int64, error) {
	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return 0, fmt.Errorf("marshal ingredients: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO recipes (book, name, description, location, ingredients,
			created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id`,
		recipe.Book, recipe.Name, recipe.Description, recipe.Location, ingredientsJSON,
		recipe.CreatedBy, recipe.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Recipe, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	recipe, err := scanRecipe(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return recipe, err
}

func (r *repository) List(ctx context.Context, book Book, search string) ([]Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE book = $1`
	args := []interface{}{book}
	if search != "" {
		query += ` AND name ILIKE $2`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *recipe)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	setClauses := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)
	i := 1
	for col, val := range fields {
		if col == "ingredients" {
			encoded, err := json.Marshal(val)
			if err != nil {
				return fmt.Errorf("marshal ingredients: %w", err)
			}
			val = encoded
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE recipes SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), i)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var (
		recipe          Recipe
		ingredientsJSON []byte
	)
	err := row.Scan(
		&recipe.ID, &recipe.Book, &recipe.Name, &recipe.Description, &recipe.Location,
		&ingredientsJSON, &recipe.CreatedBy, &recipe.CreatedByName,
		&recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(ingredientsJSON) > 0 {
		if err := json.Unmarshal(ingredientsJSON, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []Ingredient{}
	}
	return &recipe, nil
}
