package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/jackc/pgx/v5"
)

// CraftingRecipeRepository implements the CraftingRecipeRepository interface
type CraftingRecipeRepository struct {
	q Queryable
}

// NewCraftingRecipeRepository creates a new crafting recipe repository
func NewCraftingRecipeRepository(db *database.DB) *CraftingRecipeRepository {
	return &CraftingRecipeRepository{q: db.Pool}
}

// newCraftingRecipeRepository creates a repository bound to a transaction
func newCraftingRecipeRepository(tx Queryable) *CraftingRecipeRepository {
	return &CraftingRecipeRepository{q: tx}
}

const recipeColumns = `id, name, result_name, result_type, result_rarity, mana_cost, duration_seconds, ingredients, created_at`

// GetAll returns every recipe
func (r *CraftingRecipeRepository) GetAll(ctx context.Context) ([]*entities.CraftingRecipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM crafting_recipes
		ORDER BY id
	`, recipeColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list crafting recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*entities.CraftingRecipe
	for rows.Next() {
		recipe, err := scanCraftingRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crafting recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crafting recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a recipe by id
func (r *CraftingRecipeRepository) GetByID(ctx context.Context, recipeID int64) (*entities.CraftingRecipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM crafting_recipes
		WHERE id = $1
	`, recipeColumns)

	recipe, err := scanCraftingRecipe(r.q.QueryRow(ctx, query, recipeID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crafting recipe %d: %w", recipeID, err)
	}
	return recipe, nil
}

// Create inserts a recipe
func (r *CraftingRecipeRepository) Create(ctx context.Context, recipe *entities.CraftingRecipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe ingredients: %w", err)
	}

	query := `
		INSERT INTO crafting_recipes (name, result_name, result_type, result_rarity, mana_cost, duration_seconds, ingredients)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		recipe.Name, recipe.ResultName, recipe.ResultType, recipe.ResultRarity,
		recipe.ManaCost, recipe.DurationSeconds, ingredients,
	).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create crafting recipe: %w", err)
	}
	return nil
}

func scanCraftingRecipe(row pgx.Row) (*entities.CraftingRecipe, error) {
	var recipe entities.CraftingRecipe
	var ingredients []byte
	err := row.Scan(
		&recipe.ID, &recipe.Name, &recipe.ResultName, &recipe.ResultType,
		&recipe.ResultRarity, &recipe.ManaCost, &recipe.DurationSeconds,
		&ingredients, &recipe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe ingredients: %w", err)
		}
	}
	return &recipe, nil
}

// CraftingQueueRepository implements the CraftingQueueRepository interface
type CraftingQueueRepository struct {
	q Queryable
}

// NewCraftingQueueRepository creates a new crafting queue repository
func NewCraftingQueueRepository(db *database.DB) *CraftingQueueRepository {
	return &CraftingQueueRepository{q: db.Pool}
}

// newCraftingQueueRepository creates a repository bound to a transaction
func newCraftingQueueRepository(tx Queryable) *CraftingQueueRepository {
	return &CraftingQueueRepository{q: tx}
}

const queueColumns = `id, user_id, recipe_id, started_at, completes_at, claimed_at`

// Create inserts a queue item, filling ID and StartedAt
func (r *CraftingQueueRepository) Create(ctx context.Context, item *entities.CraftingQueueItem) error {
	query := `
		INSERT INTO crafting_queue (user_id, recipe_id, completes_at)
		VALUES ($1, $2, $3)
		RETURNING id, started_at
	`

	err := r.q.QueryRow(ctx, query, item.UserID, item.RecipeID, item.CompletesAt).
		Scan(&item.ID, &item.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create crafting queue item: %w", err)
	}
	return nil
}

// GetByID retrieves a queue item by id
func (r *CraftingQueueRepository) GetByID(ctx context.Context, queueID int64) (*entities.CraftingQueueItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM crafting_queue
		WHERE id = $1
	`, queueColumns)

	item, err := scanQueueItem(r.q.QueryRow(ctx, query, queueID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crafting queue item %d: %w", queueID, err)
	}
	return item, nil
}

// GetByUser returns a user's queue items, newest first
func (r *CraftingQueueRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM crafting_queue
		WHERE user_id = $1
		ORDER BY started_at DESC, id DESC
	`, queueColumns)

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crafting queue for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []*entities.CraftingQueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crafting queue item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crafting queue items: %w", err)
	}
	return items, nil
}

// MarkClaimed stamps the claim time on an unclaimed item. The claimed_at
// guard makes a racing double claim lose with ErrCraftingAlreadyClaimed.
func (r *CraftingQueueRepository) MarkClaimed(ctx context.Context, queueID int64, claimedAt time.Time) error {
	query := `
		UPDATE crafting_queue
		SET claimed_at = $2
		WHERE id = $1 AND claimed_at IS NULL
	`

	tag, err := r.q.Exec(ctx, query, queueID, claimedAt)
	if err != nil {
		return fmt.Errorf("failed to mark crafting queue item %d claimed: %w", queueID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrCraftingAlreadyClaimed
	}
	return nil
}

func scanQueueItem(row pgx.Row) (*entities.CraftingQueueItem, error) {
	var item entities.CraftingQueueItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.RecipeID,
		&item.StartedAt, &item.CompletesAt, &item.ClaimedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
