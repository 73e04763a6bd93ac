package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessID is the generated identity of a stored business.
type BusinessID int64

// Submission is one registration payload as received from a caller.
// All business fields are raw text; nothing has been trimmed or checked.
type Submission struct {
	BusinessName   string
	BusinessMobile string
	BusinessType   string
	Timings        string
	OwnerName      string
	OwnerMobile    string
	Location       string
	Items          []ItemInput
}

// ItemInput is one inventory line as received. Quantity and prices are
// numerals in text form.
type ItemInput struct {
	ItemName        string
	Quantity        string
	Unit            string
	BuyingPrice     string
	SellingPrice    string
	RequirementType string

	// Missing lists payload keys that were absent for this item.
	Missing []string
}

// Business is a validated (or stored) business.
type Business struct {
	ID             BusinessID `json:"id"`
	SubmissionID   uuid.UUID  `json:"submissionId"`
	BusinessName   string     `json:"businessName"`
	BusinessMobile string     `json:"businessMobile"`
	BusinessType   string     `json:"type"`
	Timings        string     `json:"timings"`
	OwnerName      string     `json:"ownerName"`
	OwnerMobile    string     `json:"ownerMobile"`
	Location       string     `json:"location"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Item is a validated (or stored) inventory line.
type Item struct {
	ID              int64           `json:"id"`
	BusinessID      BusinessID      `json:"businessId"`
	ItemName        string          `json:"itemName"`
	Quantity        int64           `json:"quantity"`
	Unit            string          `json:"unit"`
	BuyingPrice     decimal.Decimal `json:"buyingPrice"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	RequirementType string          `json:"requirementType"`
}

// Registration is the typed result of a successful validation.
type Registration struct {
	Business Business
	Items    []Item
}

// BusinessWithItems is one entry of ListAll.
type BusinessWithItems struct {
	Business
	Items []Item `json:"items"`
}

// SubmissionResult is what the caller of HandleSubmission receives.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
