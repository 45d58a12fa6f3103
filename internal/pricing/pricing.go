// Package pricing derives the pre-discount reference price shown next
// to a package's sale price. The reference price is never stored
// independently: it is recomputed on every write.
package pricing

import "math"

// MaxDiscount is the highest accepted discount percentage. 100 is
// excluded: the derivation divides by (1 - discount/100).
const MaxDiscount = 99

// ReferencePrice returns the pre-discount price for a sale price in the
// smallest currency unit and a percentage discount in [0, MaxDiscount].
// Callers validate the discount range before calling.
func ReferencePrice(salePrice int64, discount int) int64 {
	if discount <= 0 {
		return salePrice
	}
	return int64(math.Round(float64(salePrice) / (1 - float64(discount)/100)))
}
