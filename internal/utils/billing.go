package utils

// Bed-space and utility-split arithmetic. Both functions are pure and are
// evaluated against live repository state at query time, never cached.

// OccupancyRatePercent returns occupied bed-spaces over total capacity as a
// whole percent, rounded to the nearest integer. Zero capacity yields 0.
func OccupancyRatePercent(occupiedUnits, totalCapacityUnits int) int {
	if totalCapacityUnits <= 0 {
		return 0
	}
	return (occupiedUnits*100 + totalCapacityUnits/2) / totalCapacityUnits
}

// SplitPerHead divides a period's total utility cost across the active
// boarders, rounding up so the house never undercollects. Zero boarders
// yields 0, since there is no one to bill.
func SplitPerHead(totalCents int64, activeBoarders int) int64 {
	if activeBoarders <= 0 || totalCents <= 0 {
		return 0
	}
	n := int64(activeBoarders)
	return (totalCents + n - 1) / n
}
