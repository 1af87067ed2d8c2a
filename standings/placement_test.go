package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePlacementPoints(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     int
	}{
		{"first place", 1, 10},
		{"second place", 2, 6},
		{"third place", 3, 5},
		{"fourth place", 4, 4},
		{"fifth place", 5, 3},
		{"sixth place", 6, 2},
		{"seventh place", 7, 1},
		{"eighth place", 8, 1},
		{"beyond bracket", 9, 0},
		{"far beyond bracket", 999, 0},
		{"zero position", 0, 0},
		{"negative position", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePlacementPoints(tt.position))
		})
	}
}

func TestCalculatePlacementPoints_Monotonic(t *testing.T) {
	for p := 1; p < 20; p++ {
		assert.GreaterOrEqual(t,
			CalculatePlacementPoints(p), CalculatePlacementPoints(p+1),
			"points must not increase from position %d to %d", p, p+1)
	}
}

func TestPositionFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"max points", 10, 1},
		{"six points", 6, 2},
		{"five points", 5, 3},
		{"four points", 4, 4},
		{"three points", 3, 5},
		{"two points", 2, 6},
		// Позиции 7 и 8 обе стоят 1 очко — возвращается лучшая.
		{"duplicate value returns best position", 1, 7},
		{"unknown value", 7, 0},
		{"zero points", 0, 0},
		{"negative points", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionFromPoints(tt.points))
		})
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	// Для позиций с уникальными очками round-trip точный; позиция 8 делит
	// значение с позицией 7 и схлопывается в неё.
	for p := 1; p <= 7; p++ {
		assert.Equal(t, p, PositionFromPoints(CalculatePlacementPoints(p)), "position %d", p)
	}
	assert.Equal(t, 7, PositionFromPoints(CalculatePlacementPoints(8)))

	// Обратное свойство: каждое табличное значение очков восстанавливается.
	for _, points := range []int{10, 6, 5, 4, 3, 2, 1} {
		assert.Equal(t, points, CalculatePlacementPoints(PositionFromPoints(points)), "points %d", points)
	}
}
