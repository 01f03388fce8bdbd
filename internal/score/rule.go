package score

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"tally/internal/receipt"
)

// Rule is one independent scoring rule. It reads only the receipt fields it
// needs and returns a non-negative number of points. A missing field is never
// an error and scores zero; a present but unparseable field returns
// receipt.MalformedReceiptError. Rules share no state, so the total is the
// same whatever order they run in.
type Rule func(receipt.Receipt) (int, error)

var (
	quarter = decimal.New(25, -2) // 0.25
	fifth   = decimal.New(2, -1)  // 0.2
)

// retailerNamePoints awards one point per alphanumeric character in the
// retailer name. Punctuation and spaces score nothing.
func retailerNamePoints(r receipt.Receipt) (int, error) {
	if r.Retailer == nil {
		return 0, nil
	}

	points := 0
	for _, c := range *r.Retailer {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			points++
		}
	}
	return points, nil
}

// purchaseDayPoints awards 6 points when the day of the month is odd.
// The day is read from the trailing two characters of purchaseDate only;
// the rest of the date is deliberately not validated.
func purchaseDayPoints(r receipt.Receipt) (int, error) {
	if r.PurchaseDate == nil {
		return 0, nil
	}

	date := *r.PurchaseDate
	suffix := date
	if len(date) > 2 {
		suffix = date[len(date)-2:]
	}
	day, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, receipt.NewMalformedReceiptError("purchaseDate", date)
	}

	if day%2 != 0 {
		return 6, nil
	}
	return 0, nil
}

// purchaseHourPoints awards 10 points for a purchase strictly after 14:00 and
// strictly before 16:00. Exactly 14:00 and exactly 16:00 both score zero.
// An empty purchaseTime counts as missing. Hour and minute are taken as plain
// integers with no range check.
func purchaseHourPoints(r receipt.Receipt) (int, error) {
	if r.PurchaseTime == nil || len(*r.PurchaseTime) == 0 {
		return 0, nil
	}

	parts := strings.Split(*r.PurchaseTime, ":")
	if len(parts) != 2 {
		return 0, receipt.NewMalformedReceiptError("purchaseTime", *r.PurchaseTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, receipt.NewMalformedReceiptError("purchaseTime", *r.PurchaseTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, receipt.NewMalformedReceiptError("purchaseTime", *r.PurchaseTime)
	}

	if (hour == 14 && minute > 0) || (hour >= 15 && hour < 16) {
		return 10, nil
	}
	return 0, nil
}

// quarterMultiplePoints awards 25 points when the total is an exact multiple
// of 0.25.
func quarterMultiplePoints(r receipt.Receipt) (int, error) {
	if r.Total == nil {
		return 0, nil
	}

	total, err := receipt.ParseAmount("total", *r.Total)
	if err != nil {
		return 0, err
	}

	if total.Mod(quarter).IsZero() {
		return 25, nil
	}
	return 0, nil
}

// roundDollarPoints awards 50 points when the total is a whole-dollar amount
// with no cents.
func roundDollarPoints(r receipt.Receipt) (int, error) {
	if r.Total == nil {
		return 0, nil
	}

	total, err := receipt.ParseAmount("total", *r.Total)
	if err != nil {
		return 0, err
	}

	if total.IsInteger() {
		return 50, nil
	}
	return 0, nil
}

// itemPairPoints awards 5 points for every two items on the receipt.
// An odd leftover item scores nothing.
func itemPairPoints(r receipt.Receipt) (int, error) {
	return 5 * (len(r.Items) / 2), nil
}

// itemDescriptionPoints awards ceil(price * 0.2) points for every item whose
// trimmed description length is a positive multiple of 3. Rounding is always
// toward positive infinity. An item with no price contributes nothing; a
// present but unparseable price is an error even on items whose description
// does not qualify.
func itemDescriptionPoints(r receipt.Receipt) (int, error) {
	points := 0
	for _, item := range r.Items {
		price := decimal.Zero
		if item.Price != nil {
			var err error
			price, err = receipt.ParseAmount("price", *item.Price)
			if err != nil {
				return 0, err
			}
		}

		trimmed := strings.TrimSpace(item.ShortDescription)
		length := utf8.RuneCountInString(trimmed)
		if length == 0 || length%3 != 0 {
			continue
		}

		points += int(price.Mul(fifth).Ceil().IntPart())
	}
	return points, nil
}
