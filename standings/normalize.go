package standings

import "github.com/Daniyar05/esports-tournament-system/models"

// NormalizePlayerKills приводит массив киллов к длине активного состава:
// лишние значения отбрасываются, недостающие добиваются нулями.
func NormalizePlayerKills(kills []int, rosterLen int) []int {
	if rosterLen < 0 {
		rosterLen = 0
	}
	normalized := make([]int, rosterLen)
	for i := 0; i < rosterLen && i < len(kills); i++ {
		normalized[i] = kills[i]
	}
	return normalized
}

// NormalizeParticipation приводит массив участия к длине состава.
// Отсутствующие значения считаются true: слот по умолчанию играл.
func NormalizeParticipation(participation []bool, rosterLen int) []bool {
	if rosterLen < 0 {
		rosterLen = 0
	}
	normalized := make([]bool, rosterLen)
	for i := range normalized {
		if i < len(participation) {
			normalized[i] = participation[i]
		} else {
			normalized[i] = true
		}
	}
	return normalized
}

// NormalizeMatchScore возвращает копию результата матча с массивами,
// выровненными под rosterLen. Командные kills/placement_points не трогает.
func NormalizeMatchScore(score models.MatchScore, rosterLen int) models.MatchScore {
	score.PlayerKills = NormalizePlayerKills(score.PlayerKills, rosterLen)
	score.PlayerParticipation = NormalizeParticipation(score.PlayerParticipation, rosterLen)
	return score
}
