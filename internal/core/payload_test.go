package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_FullPayload(t *testing.T) {
	raw := []byte(`{
		"businessName": "Sharma Kirana",
		"businessMobile": "9876543210",
		"type": "Grocery",
		"timings": "9am-9pm",
		"ownerName": "Ravi Sharma",
		"ownerMobile": "9123456780",
		"location": "Pune",
		"items": [
			{"itemName": "Rice", "quantity": "10", "unit": "kg",
			 "buyingPrice": "40.5", "sellingPrice": "45.0", "requirementType": "restock"}
		]
	}`)

	sub := ParsePayload(raw)

	assert.Equal(t, "Sharma Kirana", sub.BusinessName)
	assert.Equal(t, "9876543210", sub.BusinessMobile)
	assert.Equal(t, "Grocery", sub.BusinessType)
	assert.Equal(t, "9am-9pm", sub.Timings)
	assert.Equal(t, "Ravi Sharma", sub.OwnerName)
	assert.Equal(t, "9123456780", sub.OwnerMobile)
	assert.Equal(t, "Pune", sub.Location)
	require.Len(t, sub.Items, 1)
	assert.Equal(t, riceItem(), sub.Items[0])
}

func TestParsePayload_MissingFieldsDefaultEmpty(t *testing.T) {
	sub := ParsePayload([]byte(`{"businessName": "Only Name"}`))

	assert.Equal(t, "Only Name", sub.BusinessName)
	assert.Empty(t, sub.BusinessMobile)
	assert.Empty(t, sub.Location)
	assert.Empty(t, sub.Items)
}

func TestParsePayload_NullItems(t *testing.T) {
	sub := ParsePayload([]byte(`{"items": null}`))
	assert.Empty(t, sub.Items)
}

func TestParsePayload_NumbersKeepLiteralText(t *testing.T) {
	raw := []byte(`{"businessMobile": 9876543210, "items": [
		{"itemName": "Oil", "quantity": 3, "unit": "l",
		 "buyingPrice": 120.50, "sellingPrice": 135, "requirementType": "sale"}
	]}`)

	sub := ParsePayload(raw)

	assert.Equal(t, "9876543210", sub.BusinessMobile)
	require.Len(t, sub.Items, 1)
	assert.Equal(t, "3", sub.Items[0].Quantity)
	assert.Equal(t, "120.50", sub.Items[0].BuyingPrice)
	assert.Equal(t, "135", sub.Items[0].SellingPrice)
	assert.Empty(t, sub.Items[0].Missing)
}

func TestParsePayload_NonTextValuesBecomeEmpty(t *testing.T) {
	sub := ParsePayload([]byte(`{"businessName": true, "location": {"city": "Pune"}, "timings": null}`))

	assert.Empty(t, sub.BusinessName)
	assert.Empty(t, sub.Location)
	assert.Empty(t, sub.Timings)
}

func TestParsePayload_RecordsMissingItemKeys(t *testing.T) {
	sub := ParsePayload([]byte(`{"items": [{"itemName": "Rice", "quantity": "1"}]}`))

	require.Len(t, sub.Items, 1)
	assert.Equal(t, []string{"unit", "buyingPrice", "sellingPrice", "requirementType"}, sub.Items[0].Missing)
}

func TestParsePayload_MalformedItems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"items not a list", `{"items": "rice"}`},
		{"item not an object", `{"items": ["rice"]}`},
		{"item null", `{"items": [null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ParsePayload([]byte(tt.raw))
			require.Len(t, sub.Items, 1)
			assert.Equal(t, itemKeys, sub.Items[0].Missing)
		})
	}
}

func TestParsePayload_NotAnObject(t *testing.T) {
	for _, raw := range []string{``, `not json`, `[1,2]`, `"text"`, `{"businessName":`} {
		assert.Equal(t, Submission{}, ParsePayload([]byte(raw)), "payload %q", raw)
	}
}

func TestParsePayload_LeadingBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, `{"businessName":"Sharma Kirana","items":[]}`...)

	sub := ParsePayload(raw)

	assert.Equal(t, "Sharma Kirana", sub.BusinessName)
	assert.Empty(t, sub.Items)
}

func TestParsePayload_TrailingData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", `{"businessName":"Sharma Kirana"} trailing garbage`},
		{"second object", `{"businessName":"Sharma Kirana"}{"businessName":"Other"}`},
		{"stray brace", `{"businessName":"Sharma Kirana"}}`},
		{"number", `{"businessName":"Sharma Kirana"} 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Submission{}, ParsePayload([]byte(tt.raw)))
		})
	}
}

func TestParsePayload_TrailingWhitespace(t *testing.T) {
	sub := ParsePayload([]byte("{\"businessName\":\"Sharma Kirana\"}\n\t "))
	assert.Equal(t, "Sharma Kirana", sub.BusinessName)
}
