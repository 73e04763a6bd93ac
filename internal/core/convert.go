package core

// convert.go maps between domain values and the pgtype values used by the
// database package.

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToPgNumeric converts a decimal to pgtype.Numeric without going through
// floating point.
func ToPgNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

// FromPgNumeric converts a NUMERIC value back to a decimal. NULL, NaN and
// infinities are rejected since prices never hold them.
func FromPgNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Decimal{}, errors.New("numeric is NULL")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Decimal{}, errors.New("numeric is not finite")
	}
	coef := n.Int
	if coef == nil {
		coef = new(big.Int)
	}
	return decimal.NewFromBigInt(coef, n.Exp), nil
}

// ToPgUUID wraps a uuid for the database layer.
func ToPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: [16]byte(id), Valid: true}
}

// FromPgUUID unwraps a database uuid. NULL maps to uuid.Nil.
func FromPgUUID(u pgtype.UUID) uuid.UUID {
	if !u.Valid {
		return uuid.Nil
	}
	return uuid.UUID(u.Bytes)
}

// FormatDecimal renders d keeping the scale it was stored with, so "45.0"
// is shown as 45.0 rather than 45.
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// ItemLine summarizes an item on one line:
// "Rice - 10 kg | Buy ₹40.5 | Sell ₹45.0 | restock".
func ItemLine(it Item) string {
	return it.ItemName + " - " + strconv.FormatInt(it.Quantity, 10) + " " + it.Unit +
		" | Buy ₹" + FormatDecimal(it.BuyingPrice) +
		" | Sell ₹" + FormatDecimal(it.SellingPrice) +
		" | " + it.RequirementType
}
