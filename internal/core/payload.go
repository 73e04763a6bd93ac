package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Payload keys accepted from callers.
const (
	keyBusinessName    = "businessName"
	keyBusinessMobile  = "businessMobile"
	keyBusinessType    = "type"
	keyTimings         = "timings"
	keyOwnerName       = "ownerName"
	keyOwnerMobile     = "ownerMobile"
	keyLocation        = "location"
	keyItems           = "items"
	keyItemName        = "itemName"
	keyQuantity        = "quantity"
	keyUnit            = "unit"
	keyBuyingPrice     = "buyingPrice"
	keySellingPrice    = "sellingPrice"
	keyRequirementType = "requirementType"
)

// utf8BOM is written at the start of JSON files by some Windows editors.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// itemKeys are the keys every item must carry, in payload order.
var itemKeys = []string{
	keyItemName, keyQuantity, keyUnit, keyBuyingPrice, keySellingPrice, keyRequirementType,
}

// ParsePayload decodes a JSON submission body leniently.
//
// Missing or non-text business fields become "", a missing items list becomes
// empty, and JSON numbers are kept as their literal text so "10" and 10 are
// treated alike. Absent item keys are recorded in ItemInput.Missing. A body
// that is not a JSON object yields an empty Submission, which then fails the
// required-fields rule, and so does an object followed by anything other than
// whitespace. A leading UTF-8 byte order mark is ignored.
func ParsePayload(raw []byte) Submission {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var top map[string]json.RawMessage
	if err := decodeNumbers(raw, &top); err != nil {
		return Submission{}
	}

	sub := Submission{
		BusinessName:   textValue(top[keyBusinessName]),
		BusinessMobile: textValue(top[keyBusinessMobile]),
		BusinessType:   textValue(top[keyBusinessType]),
		Timings:        textValue(top[keyTimings]),
		OwnerName:      textValue(top[keyOwnerName]),
		OwnerMobile:    textValue(top[keyOwnerMobile]),
		Location:       textValue(top[keyLocation]),
	}

	rawItems, ok := top[keyItems]
	if !ok || isNull(rawItems) {
		return sub
	}

	var list []json.RawMessage
	if err := decodeNumbers(rawItems, &list); err != nil {
		// Not a list: surface as one unusable item.
		sub.Items = []ItemInput{{Missing: itemKeys}}
		return sub
	}

	sub.Items = make([]ItemInput, 0, len(list))
	for _, rawItem := range list {
		sub.Items = append(sub.Items, parseItemInput(rawItem))
	}
	return sub
}

func parseItemInput(raw json.RawMessage) ItemInput {
	var fields map[string]json.RawMessage
	if err := decodeNumbers(raw, &fields); err != nil || fields == nil {
		return ItemInput{Missing: itemKeys}
	}

	var in ItemInput
	for _, key := range itemKeys {
		if _, ok := fields[key]; !ok {
			in.Missing = append(in.Missing, key)
		}
	}

	in.ItemName = textValue(fields[keyItemName])
	in.Quantity = textValue(fields[keyQuantity])
	in.Unit = textValue(fields[keyUnit])
	in.BuyingPrice = textValue(fields[keyBuyingPrice])
	in.SellingPrice = textValue(fields[keySellingPrice])
	in.RequirementType = textValue(fields[keyRequirementType])
	return in
}

// textValue returns a JSON string's contents or a JSON number's literal.
// Anything else, including absence, is "".
func textValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := decodeNumbers(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeNumbers decodes exactly one JSON value from raw, keeping numbers as
// json.Number.
func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}
