package receipt

import (
	"github.com/shopspring/decimal"
)

// Receipt is a single submitted purchase record.
// Scalar fields are pointers so that an absent JSON key can be told apart
// from a key that is present with a bad value: absence degrades to a zero
// rule contribution, while a present but unparseable value is reported as
// MalformedReceiptError.
type Receipt struct {
	// Retailer — name of the store or seller.
	Retailer *string `json:"retailer"`
	// PurchaseDate — date of purchase in "YYYY-MM-DD" form.
	PurchaseDate *string `json:"purchaseDate"`
	// PurchaseTime — time of purchase in 24-hour "HH:MM" form.
	PurchaseTime *string `json:"purchaseTime"`
	// Total — total amount paid, decimal text such as "6.49".
	Total *string `json:"total"`
	// Items — purchased line items, in submission order.
	Items []Item `json:"items"`
}

// Item is one line item on a receipt.
type Item struct {
	// ShortDescription — free-text description of the product.
	ShortDescription string `json:"shortDescription"`
	// Price — price of the item, decimal text. Nil when the key is absent,
	// which is treated as zero; a present but unparseable value (including
	// the empty string) is malformed.
	Price *string `json:"price"`
}

// MalformedReceiptError reports a receipt field that is present but cannot
// be parsed into its expected shape. Distinct from a missing field, which is
// never an error.
type MalformedReceiptError struct {
	// Field — JSON name of the offending field.
	Field string
	// Value — the raw text that failed to parse.
	Value string
}

// Error returns a textual description of the malformed field.
func (e *MalformedReceiptError) Error() string {
	return "malformed receipt field " + e.Field + ": " + e.Value
}

// NewMalformedReceiptError creates a MalformedReceiptError for the given
// field name and raw value.
func NewMalformedReceiptError(field, value string) *MalformedReceiptError {
	return &MalformedReceiptError{Field: field, Value: value}
}

// ParseAmount parses a monetary field as an exact base-10 decimal.
// Returns MalformedReceiptError when the text is not a valid decimal number.
// Decimal arithmetic keeps multiple-of-0.25 and whole-dollar checks exact;
// a float parse would make totals like "2.25" fail them intermittently.
func ParseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, NewMalformedReceiptError(field, value)
	}
	return d, nil
}
