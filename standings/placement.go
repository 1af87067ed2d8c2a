package standings

// Очки за место в одном матче (кривая баттл-рояля): первая строка таблицы
// даёт максимум, дальше невозрастающе до нуля за пределами восьмёрки.
var placementPointsByPosition = []int{
	10, // 1st
	6,  // 2nd
	5,  // 3rd
	4,  // 4th
	3,  // 5th
	2,  // 6th
	1,  // 7th
	1,  // 8th
}

// CalculatePlacementPoints converts a 1-based finish position into points.
// Positions outside the supported bracket (<= 0 or beyond the table) score 0:
// the function is called from live input handlers where partial or invalid
// values are routine, so it never fails.
func CalculatePlacementPoints(position int) int {
	if position < 1 || position > len(placementPointsByPosition) {
		return 0
	}
	return placementPointsByPosition[position-1]
}

// PositionFromPoints is the inverse lookup: it returns the first (best)
// position whose score equals the given points, or 0 when no position maps.
// Positions 7 and 8 both score 1, so PositionFromPoints(1) == 7.
func PositionFromPoints(points int) int {
	if points <= 0 {
		return 0
	}
	for i, p := range placementPointsByPosition {
		if p == points {
			return i + 1
		}
	}
	return 0
}
