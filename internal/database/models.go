package database

import "github.com/jackc/pgx/v5/pgtype"

// Business is a row of the business table.
type Business struct {
	ID             int64
	SubmissionID   pgtype.UUID
	BusinessName   string
	BusinessMobile string
	BusinessType   string
	Timings        string
	OwnerName      string
	OwnerMobile    string
	Location       string
	CreatedAt      pgtype.Timestamptz
}

// Item is a row of the items table.
type Item struct {
	ID              int64
	BusinessID      int64
	ItemName        string
	Quantity        int64
	Unit            string
	BuyingPrice     pgtype.Numeric
	SellingPrice    pgtype.Numeric
	RequirementType string
}
