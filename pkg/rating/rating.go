// Package rating provides pure aggregate helpers over review scores.
//
// The average of zero ratings is defined as 0 — not NaN or an error — so
// downstream arithmetic and JSON encoding stay total for unreviewed books.
package rating

// Average returns the arithmetic mean of the given ratings, or 0 when the
// slice is empty.
func Average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return float64(sum) / float64(len(ratings))
}
