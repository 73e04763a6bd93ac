package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertBusiness = `
INSERT INTO business (
	submission_id, business_name, business_mobile, business_type,
	timings, owner_name, owner_mobile, location
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

type InsertBusinessParams struct {
	SubmissionID   pgtype.UUID
	BusinessName   string
	BusinessMobile string
	BusinessType   string
	Timings        string
	OwnerName      string
	OwnerMobile    string
	Location       string
}

// InsertBusiness inserts one business row and returns its generated id.
func (q *Queries) InsertBusiness(ctx context.Context, arg InsertBusinessParams) (int64, error) {
	row := q.db.QueryRow(ctx, insertBusiness,
		arg.SubmissionID,
		arg.BusinessName,
		arg.BusinessMobile,
		arg.BusinessType,
		arg.Timings,
		arg.OwnerName,
		arg.OwnerMobile,
		arg.Location,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const insertItem = `
INSERT INTO items (
	business_id, item_name, quantity, unit,
	buying_price, selling_price, requirement_type
) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertItemParams struct {
	BusinessID      int64
	ItemName        string
	Quantity        int64
	Unit            string
	BuyingPrice     pgtype.Numeric
	SellingPrice    pgtype.Numeric
	RequirementType string
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.Exec(ctx, insertItem,
		arg.BusinessID,
		arg.ItemName,
		arg.Quantity,
		arg.Unit,
		arg.BuyingPrice,
		arg.SellingPrice,
		arg.RequirementType,
	)
	return err
}

const listBusinessesWithItems = `
SELECT
	b.id, b.submission_id, b.business_name, b.business_mobile, b.business_type,
	b.timings, b.owner_name, b.owner_mobile, b.location, b.created_at,
	i.id, i.item_name, i.quantity, i.unit,
	i.buying_price, i.selling_price, i.requirement_type
FROM business b
LEFT JOIN items i ON i.business_id = b.id
ORDER BY b.id ASC, i.id ASC
`

// ListBusinessesWithItemsRow is one joined row. Item columns are NULL for a
// business without items.
type ListBusinessesWithItemsRow struct {
	Business        Business
	ItemID          pgtype.Int8
	ItemName        pgtype.Text
	Quantity        pgtype.Int8
	Unit            pgtype.Text
	BuyingPrice     pgtype.Numeric
	SellingPrice    pgtype.Numeric
	RequirementType pgtype.Text
}

// ListBusinessesWithItems returns every business joined with its items,
// ordered by business id then item id.
func (q *Queries) ListBusinessesWithItems(ctx context.Context) ([]ListBusinessesWithItemsRow, error) {
	rows, err := q.db.Query(ctx, listBusinessesWithItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListBusinessesWithItemsRow
	for rows.Next() {
		var i ListBusinessesWithItemsRow
		if err := rows.Scan(
			&i.Business.ID,
			&i.Business.SubmissionID,
			&i.Business.BusinessName,
			&i.Business.BusinessMobile,
			&i.Business.BusinessType,
			&i.Business.Timings,
			&i.Business.OwnerName,
			&i.Business.OwnerMobile,
			&i.Business.Location,
			&i.Business.CreatedAt,
			&i.ItemID,
			&i.ItemName,
			&i.Quantity,
			&i.Unit,
			&i.BuyingPrice,
			&i.SellingPrice,
			&i.RequirementType,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBusinesses = `SELECT COUNT(*) FROM business`

func (q *Queries) CountBusinesses(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countBusinesses)
	var count int64
	err := row.Scan(&count)
	return count, err
}
