package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for recipe persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Recipe, error)
	GetByName(ctx context.Context, name string) (*Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id string) error
}

// recipeColumns is the SELECT column list for recipe queries.
const recipeColumns = `id, name, style, document, created_at, updated_at`

// SQLiteRepository implements Repository using SQLite. The full recipe
// lives in the document JSON column; id/name/style are indexed duplicates
// for lookup without deserialising every row.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a recipe by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying recipe by id: %w", err)
	}
	return rec, nil
}

// GetByName retrieves a recipe by its unique name.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE name = ?`

	row := r.db.QueryRowContext(ctx, query, name)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying recipe by name: %w", err)
	}
	return rec, nil
}

// List retrieves all recipes ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		rec, scanErr := scanRecipeRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning recipe: %w", scanErr)
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

// Create inserts a new recipe.
func (r *SQLiteRepository) Create(ctx context.Context, rec *Recipe) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	document, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling recipe: %w", err)
	}

	query := `
		INSERT INTO recipes (id, name, style, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Name,
		rec.Style,
		string(document),
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrExists
		}
		return fmt.Errorf("inserting recipe: %w", err)
	}
	return nil
}

// Update modifies an existing recipe.
func (r *SQLiteRepository) Update(ctx context.Context, rec *Recipe) error {
	rec.UpdatedAt = time.Now().UTC()

	document, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling recipe: %w", err)
	}

	query := `
		UPDATE recipes SET name = ?, style = ?, document = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		rec.Name,
		rec.Style,
		string(document),
		rec.UpdatedAt.Format(time.RFC3339),
		rec.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrExists
		}
		return fmt.Errorf("updating recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a recipe by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Row Scanning Helpers ───────────────────────────────────────────────────

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecipe scans a single sql.Row into a Recipe.
func scanRecipe(row *sql.Row) (*Recipe, error) {
	return scanRecipeRow(row)
}

func scanRecipeRow(scanner rowScanner) (*Recipe, error) {
	var id, name, style, document, createdAt, updatedAt string
	if err := scanner.Scan(&id, &name, &style, &document, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(document), &rec); err != nil {
		return nil, fmt.Errorf("parsing recipe document: %w", err)
	}

	// Indexed columns are authoritative over the document copy.
	rec.ID = id
	rec.Name = name
	rec.Style = style
	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		rec.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		rec.UpdatedAt = t
	}
	return &rec, nil
}

// isUniqueConstraintError checks if an error is a SQLite unique constraint
// violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
