package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/craftsim/internal/craft"
)

// CraftedItem is a persisted craft result.
type CraftedItem struct {
	ID            string
	BaseKey       string
	ItemClass     string
	Rarity        string
	ItemLevel     int
	ExplicitCount int
	Explicits     []craft.RolledModifier
	Description   string
	CreatedAt     time.Time
}

// ErrCraftedItemNotFound is returned when a crafted item lookup yields no results.
var ErrCraftedItemNotFound = errors.New("crafted item not found")

// ErrCraftedItemExists is returned when an item id is saved twice.
var ErrCraftedItemExists = errors.New("crafted item already exists")

// CraftRepository persists batch results for later distribution analysis.
type CraftRepository struct {
	db *pgxpool.Pool
}

// NewCraftRepository creates a CraftRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCraftRepository(db *pgxpool.Pool) *CraftRepository {
	return &CraftRepository{db: db}
}

// Save inserts one successful craft result.
//
// Precondition: res.Err must be nil and res.Item must carry a UUID id.
// Postcondition: the item is stored, or ErrCraftedItemExists if its id was
// already saved.
func (r *CraftRepository) Save(ctx context.Context, res craft.Result) error {
	if res.Err != nil || res.Item == nil {
		return fmt.Errorf("saving failed craft result %d", res.Index)
	}
	id, err := uuid.Parse(res.Item.ID)
	if err != nil {
		return fmt.Errorf("parsing item id %q: %w", res.Item.ID, err)
	}
	explicits := res.Explicits
	if explicits == nil {
		explicits = []craft.RolledModifier{}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO crafted_items
		   (id, base_key, item_class, rarity, item_level, explicit_count, explicits, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id.String(), res.BaseKey, res.ItemClass, res.Item.Rarity.String(), res.Item.Level,
		len(res.Item.Explicits), explicits, res.Description.String(),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrCraftedItemExists
		}
		return fmt.Errorf("inserting crafted item: %w", err)
	}
	return nil
}

// Get retrieves a crafted item by id.
//
// Postcondition: Returns the item or ErrCraftedItemNotFound.
func (r *CraftRepository) Get(ctx context.Context, id string) (CraftedItem, error) {
	var ci CraftedItem
	err := r.db.QueryRow(ctx,
		`SELECT id::text, base_key, item_class, rarity, item_level, explicit_count,
		        explicits, description, created_at
		 FROM crafted_items WHERE id = $1`,
		id,
	).Scan(&ci.ID, &ci.BaseKey, &ci.ItemClass, &ci.Rarity, &ci.ItemLevel, &ci.ExplicitCount,
		&ci.Explicits, &ci.Description, &ci.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CraftedItem{}, ErrCraftedItemNotFound
		}
		return CraftedItem{}, fmt.Errorf("querying crafted item: %w", err)
	}
	return ci, nil
}

// CountByRarity returns the number of stored items per rarity name.
func (r *CraftRepository) CountByRarity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT rarity, COUNT(*) FROM crafted_items GROUP BY rarity`)
	if err != nil {
		return nil, fmt.Errorf("counting crafted items: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rarity string
		var n int
		if err := rows.Scan(&rarity, &n); err != nil {
			return nil, fmt.Errorf("scanning rarity count: %w", err)
		}
		counts[rarity] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rarity counts: %w", err)
	}
	return counts, nil
}

// CountByExplicits returns the number of stored items per explicit total for
// one base.
func (r *CraftRepository) CountByExplicits(ctx context.Context, baseKey string) (map[int]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT explicit_count, COUNT(*) FROM crafted_items
		 WHERE base_key = $1 GROUP BY explicit_count`,
		baseKey,
	)
	if err != nil {
		return nil, fmt.Errorf("counting crafted items: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var explicits, n int
		if err := rows.Scan(&explicits, &n); err != nil {
			return nil, fmt.Errorf("scanning explicit count: %w", err)
		}
		counts[explicits] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating explicit counts: %w", err)
	}
	return counts, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
