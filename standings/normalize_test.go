package standings

import (
	"testing"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePlayerKills(t *testing.T) {
	tests := []struct {
		name      string
		kills     []int
		rosterLen int
		want      []int
	}{
		{"pads short array with zeros", []int{3, 1}, 4, []int{3, 1, 0, 0}},
		{"truncates long array", []int{3, 1, 2, 5, 7}, 3, []int{3, 1, 2}},
		{"exact length untouched", []int{4, 4}, 2, []int{4, 4}},
		{"nil input", nil, 3, []int{0, 0, 0}},
		{"zero roster", []int{1, 2}, 0, []int{}},
		{"negative roster treated as empty", []int{1}, -2, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePlayerKills(tt.kills, tt.rosterLen))
		})
	}
}

func TestNormalizeParticipation(t *testing.T) {
	tests := []struct {
		name          string
		participation []bool
		rosterLen     int
		want          []bool
	}{
		{"missing slots default to true", []bool{false}, 3, []bool{false, true, true}},
		{"truncates long array", []bool{true, false, true}, 2, []bool{true, false}},
		{"nil input all true", nil, 2, []bool{true, true}},
		{"zero roster", []bool{true}, 0, []bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeParticipation(tt.participation, tt.rosterLen))
		})
	}
}

func TestNormalizeMatchScore(t *testing.T) {
	score := models.MatchScore{
		Kills:           6,
		PlacementPoints: 10,
		PlayerKills:     []int{2, 4},
		// participation отсутствует целиком
	}

	normalized := NormalizeMatchScore(score, 4)

	assert.Equal(t, 6, normalized.Kills)
	assert.Equal(t, 10, normalized.PlacementPoints)
	assert.Equal(t, []int{2, 4, 0, 0}, normalized.PlayerKills)
	assert.Equal(t, []bool{true, true, true, true}, normalized.PlayerParticipation)

	// Исходный результат не изменился.
	assert.Equal(t, []int{2, 4}, score.PlayerKills)
	assert.Nil(t, score.PlayerParticipation)
}
