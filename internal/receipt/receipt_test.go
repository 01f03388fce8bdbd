package receipt

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"6.49", "6.49"},
		{"35.00", "35"},
		{"0", "0"},
		{"2.25", "2.25"},
	}

	for _, tt := range tests {
		d, err := ParseAmount("total", tt.value)
		require.NoError(t, err, "value %q should parse", tt.value)
		assert.True(t, d.Equal(decimal.RequireFromString(tt.want)))
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	for _, value := range []string{"", "ten", "1.2.3", "$5.00"} {
		_, err := ParseAmount("total", value)
		assert.Error(t, err, "value %q should be rejected", value)

		var malformed *MalformedReceiptError
		assert.ErrorAs(t, err, &malformed)
		assert.Equal(t, "total", malformed.Field)
		assert.Equal(t, value, malformed.Value)
	}
}

func TestMalformedReceiptError_Message(t *testing.T) {
	err := NewMalformedReceiptError("purchaseTime", "noon")
	assert.Equal(t, "malformed receipt field purchaseTime: noon", err.Error())
}

// TestReceipt_AbsentVersusEmpty pins the property the pointer fields exist
// for: an omitted key decodes to nil, an empty value does not.
func TestReceipt_AbsentVersusEmpty(t *testing.T) {
	var absent Receipt
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.Nil(t, absent.Retailer)
	assert.Nil(t, absent.PurchaseDate)
	assert.Nil(t, absent.PurchaseTime)
	assert.Nil(t, absent.Total)
	assert.Nil(t, absent.Items)

	var empty Receipt
	require.NoError(t, json.Unmarshal([]byte(`{"purchaseTime": "", "items": []}`), &empty))
	require.NotNil(t, empty.PurchaseTime)
	assert.Empty(t, *empty.PurchaseTime)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	var items Receipt
	body := `{"items": [{"shortDescription": "Pepsi"}, {"shortDescription": "Pepsi", "price": ""}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items.Items, 2)
	assert.Nil(t, items.Items[0].Price, "absent price key decodes to nil")
	require.NotNil(t, items.Items[1].Price, "empty price is present, not missing")
	assert.Empty(t, *items.Items[1].Price)
}
