package core

// validation.go checks a submission before anything is written.
//
// Rules run in a fixed order and the first failure wins:
//  1. All seven business fields must be non-empty after trimming
//  2. Both mobiles must be ten digits starting with 6-9
//  3. Business and owner mobiles must differ
//  4. Every item must have all keys, non-empty text fields, an integer
//     quantity and decimal prices, none negative
//
// Numerals are parsed into their target types rather than pattern matched,
// so a value that passes is exactly the value that gets stored.

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var mobileRegex = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// businessFields mirrors the business part of a Submission after trimming.
// The tags carry rules 1-3; rule order is restored in rankFieldErrors.
type businessFields struct {
	BusinessName   string `validate:"required"`
	BusinessMobile string `validate:"required,mobile"`
	BusinessType   string `validate:"required"`
	Timings        string `validate:"required"`
	OwnerName      string `validate:"required"`
	OwnerMobile    string `validate:"required,mobile,nefield=BusinessMobile"`
	Location       string `validate:"required"`
}

// ruleMessages maps a failing tag to its message, in rule order.
var ruleMessages = []struct {
	tag string
	msg string
}{
	{"required", MsgFieldsRequired},
	{"mobile", MsgInvalidMobile},
	{"nefield", MsgMobilesMatch},
}

// Validator checks submissions. It is safe for concurrent use.
type Validator struct {
	v *validatorv10.Validate
}

// NewValidator returns a Validator with the mobile rule registered.
func NewValidator() *Validator {
	v := validatorv10.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("mobile", func(fl validatorv10.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate applies every rule to s. On success it returns the typed
// registration; otherwise a *ValidationError carrying the first failing
// rule's message.
func (val *Validator) Validate(s Submission) (Registration, error) {
	fields := businessFields{
		BusinessName:   strings.TrimSpace(s.BusinessName),
		BusinessMobile: strings.TrimSpace(s.BusinessMobile),
		BusinessType:   strings.TrimSpace(s.BusinessType),
		Timings:        strings.TrimSpace(s.Timings),
		OwnerName:      strings.TrimSpace(s.OwnerName),
		OwnerMobile:    strings.TrimSpace(s.OwnerMobile),
		Location:       strings.TrimSpace(s.Location),
	}

	if err := val.v.Struct(fields); err != nil {
		return Registration{}, rankFieldErrors(err)
	}

	items := make([]Item, 0, len(s.Items))
	for _, in := range s.Items {
		item, ok := parseItem(in)
		if !ok {
			return Registration{}, &ValidationError{Reason: MsgInvalidItem}
		}
		items = append(items, item)
	}

	return Registration{
		Business: Business{
			BusinessName:   fields.BusinessName,
			BusinessMobile: fields.BusinessMobile,
			BusinessType:   fields.BusinessType,
			Timings:        fields.Timings,
			OwnerName:      fields.OwnerName,
			OwnerMobile:    fields.OwnerMobile,
			Location:       fields.Location,
		},
		Items: items,
	}, nil
}

// rankFieldErrors picks the earliest rule among all reported field errors.
func rankFieldErrors(err error) error {
	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only returned for non-struct input, which businessFields never is.
		return &ValidationError{Reason: MsgFieldsRequired}
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Tag()] = true
	}
	for _, rule := range ruleMessages {
		if failed[rule.tag] {
			return &ValidationError{Reason: rule.msg}
		}
	}
	return &ValidationError{Reason: MsgFieldsRequired}
}

// parseItem converts one item line, reporting false on any defect.
func parseItem(in ItemInput) (Item, bool) {
	if len(in.Missing) > 0 {
		return Item{}, false
	}
	if in.ItemName == "" || in.Unit == "" || in.RequirementType == "" {
		return Item{}, false
	}

	qty, ok := parseQuantity(in.Quantity)
	if !ok {
		return Item{}, false
	}
	buy, ok := parsePrice(in.BuyingPrice)
	if !ok {
		return Item{}, false
	}
	sell, ok := parsePrice(in.SellingPrice)
	if !ok {
		return Item{}, false
	}

	return Item{
		ItemName:        in.ItemName,
		Quantity:        qty,
		Unit:            in.Unit,
		BuyingPrice:     buy,
		SellingPrice:    sell,
		RequirementType: in.RequirementType,
	}, true
}

// parseQuantity accepts a plain base-10 numeral that fits in an int64.
// ParseUint rejects signs, so negative quantities never parse.
func parseQuantity(s string) (int64, bool) {
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(n), true
}

// parsePrice accepts digits with at most one decimal point, e.g. "40", "40.5",
// ".5" or "5.". Signs and exponents are refused before parsing because the
// decimal parser would otherwise take them.
func parsePrice(s string) (decimal.Decimal, bool) {
	if s == "" || strings.ContainsAny(s, "+-eE") {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
