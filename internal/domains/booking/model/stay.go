package model

import (
	"math"
	"time"
)

const nightDuration = 24 * time.Hour

// Nights rounds a stay up to whole 24h periods, with a minimum of one.
func Nights(checkIn, checkOut time.Time) int {
	stay := checkOut.Sub(checkIn)

	nights := int(stay / nightDuration)
	if stay%nightDuration > 0 {
		nights++
	}

	return max(nights, 1)
}

func TotalAmount(nights int, price float64) float64 {
	return math.Round(float64(nights)*price*100) / 100 //nolint:mnd
}
