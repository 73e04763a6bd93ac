package core

import (
	"context"
	"fmt"

	db "github.com/JonMunkholm/bizreg/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaLockKey serializes EnsureSchema across processes sharing a database.
const schemaLockKey int64 = 0x62697a726567 // "bizreg"

// Repository owns the business and items tables.
//
// Every method acquires its own pooled connection (through a transaction)
// and returns it on all exit paths.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository backed by pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates both tables if absent. It is safe to call on every
// start and never alters existing rows.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("ensure schema", fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx) // No-op if already committed

	// Concurrent CREATE TABLE IF NOT EXISTS can still collide in the catalog.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", schemaLockKey); err != nil {
		return storageErr("ensure schema", fmt.Errorf("acquire schema lock: %w", err))
	}

	if err := db.New(tx).CreateSchema(ctx); err != nil {
		return storageErr("ensure schema", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("ensure schema", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Create stores a business and all of its items atomically and returns the
// generated business id. On any failure nothing is kept.
func (r *Repository) Create(ctx context.Context, business Business, items []Item) (BusinessID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, storageErr("create", fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx) // No-op if already committed

	q := db.New(tx)

	id, err := q.InsertBusiness(ctx, db.InsertBusinessParams{
		SubmissionID:   ToPgUUID(business.SubmissionID),
		BusinessName:   business.BusinessName,
		BusinessMobile: business.BusinessMobile,
		BusinessType:   business.BusinessType,
		Timings:        business.Timings,
		OwnerName:      business.OwnerName,
		OwnerMobile:    business.OwnerMobile,
		Location:       business.Location,
	})
	if err != nil {
		return 0, storageErr("create", fmt.Errorf("insert business: %w", err))
	}

	for i, item := range items {
		err := q.InsertItem(ctx, db.InsertItemParams{
			BusinessID:      id,
			ItemName:        item.ItemName,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			BuyingPrice:     ToPgNumeric(item.BuyingPrice),
			SellingPrice:    ToPgNumeric(item.SellingPrice),
			RequirementType: item.RequirementType,
		})
		if err != nil {
			return 0, storageErr("create", fmt.Errorf("insert item %d: %w", i, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storageErr("create", fmt.Errorf("commit: %w", err))
	}
	return BusinessID(id), nil
}

// ListAll returns every business with its items, businesses by id ascending
// and items in insertion order. Businesses without items carry an empty list.
func (r *Repository) ListAll(ctx context.Context) ([]BusinessWithItems, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, storageErr("list", fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	rows, err := db.New(tx).ListBusinessesWithItems(ctx)
	if err != nil {
		return nil, storageErr("list", err)
	}

	result, err := nestRows(rows)
	if err != nil {
		return nil, storageErr("list", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("list", fmt.Errorf("commit: %w", err))
	}
	return result, nil
}

// CountBusinesses returns the number of stored businesses.
func (r *Repository) CountBusinesses(ctx context.Context) (int64, error) {
	n, err := db.New(r.pool).CountBusinesses(ctx)
	if err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

// Ping verifies the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// nestRows folds joined rows, already ordered by business then item id,
// into one entry per business.
func nestRows(rows []db.ListBusinessesWithItemsRow) ([]BusinessWithItems, error) {
	result := make([]BusinessWithItems, 0)

	for _, row := range rows {
		bizID := BusinessID(row.Business.ID)
		if n := len(result); n == 0 || result[n-1].ID != bizID {
			result = append(result, BusinessWithItems{
				Business: businessFromRow(row.Business),
				Items:    []Item{},
			})
		}

		if !row.ItemID.Valid {
			continue
		}
		item, err := itemFromRow(bizID, row)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", row.ItemID.Int64, err)
		}
		last := &result[len(result)-1]
		last.Items = append(last.Items, item)
	}

	return result, nil
}

func businessFromRow(b db.Business) Business {
	return Business{
		ID:             BusinessID(b.ID),
		SubmissionID:   FromPgUUID(b.SubmissionID),
		BusinessName:   b.BusinessName,
		BusinessMobile: b.BusinessMobile,
		BusinessType:   b.BusinessType,
		Timings:        b.Timings,
		OwnerName:      b.OwnerName,
		OwnerMobile:    b.OwnerMobile,
		Location:       b.Location,
		CreatedAt:      b.CreatedAt.Time,
	}
}

func itemFromRow(bizID BusinessID, row db.ListBusinessesWithItemsRow) (Item, error) {
	buy, err := FromPgNumeric(row.BuyingPrice)
	if err != nil {
		return Item{}, fmt.Errorf("buying price: %w", err)
	}
	sell, err := FromPgNumeric(row.SellingPrice)
	if err != nil {
		return Item{}, fmt.Errorf("selling price: %w", err)
	}
	return Item{
		ID:              row.ItemID.Int64,
		BusinessID:      bizID,
		ItemName:        row.ItemName.String,
		Quantity:        row.Quantity.Int64,
		Unit:            row.Unit.String,
		BuyingPrice:     buy,
		SellingPrice:    sell,
		RequirementType: row.RequirementType.String,
	}, nil
}
