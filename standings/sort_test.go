package standings

import (
	"testing"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamWithScores(id string, scores map[string]models.MatchScore) models.Team {
	return models.Team{
		ID:          id,
		TeamName:    id,
		MatchScores: scores,
	}
}

func TestTeamTotals(t *testing.T) {
	team := teamWithScores("alpha", map[string]models.MatchScore{
		"1": {Kills: 7, PlacementPoints: 10},
		// матч "2" пропущен — вклад нулевой
		"3": {Kills: 3, PlacementPoints: 5},
	})

	kills, placement := TeamTotals(team)
	assert.Equal(t, 10, kills)
	assert.Equal(t, 15, placement)
}

func TestTeamTotals_NoMatches(t *testing.T) {
	kills, placement := TeamTotals(models.Team{ID: "empty"})
	assert.Zero(t, kills)
	assert.Zero(t, placement)
}

func TestSortTeamsWithTiebreaker_PrimaryOrder(t *testing.T) {
	teams := []models.Team{
		teamWithScores("low", map[string]models.MatchScore{"1": {Kills: 2, PlacementPoints: 1}}),
		teamWithScores("high", map[string]models.MatchScore{"1": {Kills: 12, PlacementPoints: 10}}),
		teamWithScores("mid", map[string]models.MatchScore{"1": {Kills: 5, PlacementPoints: 6}}),
	}

	sorted := SortTeamsWithTiebreaker(teams)

	require.Len(t, sorted, 3)
	assert.Equal(t, "high", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "low", sorted[2].ID)
}

func TestSortTeamsWithTiebreaker_PlacementBreaksTie(t *testing.T) {
	// A: 10 киллов + 5 очков за место = 15; B: 5 киллов + 10 очков = 15.
	// B выше: при равном combined score очки за места ценнее киллов.
	teams := []models.Team{
		teamWithScores("A", map[string]models.MatchScore{"1": {Kills: 10, PlacementPoints: 5}}),
		teamWithScores("B", map[string]models.MatchScore{"1": {Kills: 5, PlacementPoints: 10}}),
	}

	sorted := SortTeamsWithTiebreaker(teams)

	assert.Equal(t, "B", sorted[0].ID)
	assert.Equal(t, "A", sorted[1].ID)
}

func TestSortTeamsWithTiebreaker_KillsBreakSecondTie(t *testing.T) {
	// Очки за места равны — решают киллы. Полный тай по combined и
	// placement одновременно невозможен: combined = placement + kills,
	// так что при равном placement больший килл-счёт выигрывает всегда.
	teams := []models.Team{
		teamWithScores("fewKills", map[string]models.MatchScore{
			"1": {Kills: 3, PlacementPoints: 10},
		}),
		teamWithScores("manyKills", map[string]models.MatchScore{
			"1": {Kills: 5, PlacementPoints: 10},
		}),
	}

	sorted := SortTeamsWithTiebreaker(teams)

	assert.Equal(t, "manyKills", sorted[0].ID)
	assert.Equal(t, "fewKills", sorted[1].ID)
}

func TestSortTeamsWithTiebreaker_StableForFullTies(t *testing.T) {
	// C и D без матчей: все ключи нулевые, порядок входа сохраняется.
	teams := []models.Team{
		teamWithScores("C", nil),
		teamWithScores("D", nil),
	}

	sorted := SortTeamsWithTiebreaker(teams)

	assert.Equal(t, "C", sorted[0].ID)
	assert.Equal(t, "D", sorted[1].ID)
}

func TestSortTeamsWithTiebreaker_ZeroScoreTeamsRankLow(t *testing.T) {
	teams := []models.Team{
		teamWithScores("noMatches", nil),
		teamWithScores("scored", map[string]models.MatchScore{"1": {Kills: 1, PlacementPoints: 0}}),
	}

	sorted := SortTeamsWithTiebreaker(teams)

	assert.Equal(t, "scored", sorted[0].ID)
	assert.Equal(t, "noMatches", sorted[1].ID)
}

func TestSortTeamsWithTiebreaker_Deterministic(t *testing.T) {
	teams := []models.Team{
		teamWithScores("a", map[string]models.MatchScore{"1": {Kills: 4, PlacementPoints: 6}}),
		teamWithScores("b", map[string]models.MatchScore{"1": {Kills: 6, PlacementPoints: 4}}),
		teamWithScores("c", map[string]models.MatchScore{"1": {Kills: 10, PlacementPoints: 0}}),
		teamWithScores("d", nil),
	}

	first := SortTeamsWithTiebreaker(teams)
	second := SortTeamsWithTiebreaker(teams)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "order differs at index %d", i)
	}
}

func TestSortTeamsWithTiebreaker_DoesNotMutateInput(t *testing.T) {
	teams := []models.Team{
		teamWithScores("x", map[string]models.MatchScore{"1": {Kills: 9, PlacementPoints: 2}}),
		teamWithScores("y", map[string]models.MatchScore{"1": {Kills: 1, PlacementPoints: 10}}),
	}
	snapshot := []models.Team{
		teamWithScores("x", map[string]models.MatchScore{"1": {Kills: 9, PlacementPoints: 2}}),
		teamWithScores("y", map[string]models.MatchScore{"1": {Kills: 1, PlacementPoints: 10}}),
	}

	_ = SortTeamsWithTiebreaker(teams)

	assert.Equal(t, snapshot, teams)
}

func TestSortTeamsWithTiebreaker_Empty(t *testing.T) {
	sorted := SortTeamsWithTiebreaker([]models.Team{})
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestBuildRows_AllMatchesAssignsPositions(t *testing.T) {
	teams := []models.Team{
		teamWithScores("second", map[string]models.MatchScore{"1": {Kills: 1, PlacementPoints: 2}}),
		teamWithScores("first", map[string]models.MatchScore{"1": {Kills: 8, PlacementPoints: 10}}),
	}

	rows := BuildRows(teams, "all")

	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Position)
	require.NotNil(t, rows[1].Position)
	assert.Equal(t, 1, *rows[0].Position)
	assert.Equal(t, "first", rows[0].Team.ID)
	assert.Equal(t, 2, *rows[1].Position)
	assert.Equal(t, "second", rows[1].Team.ID)
}

func TestBuildRows_SingleMatchKeepsOrderWithoutPositions(t *testing.T) {
	teams := []models.Team{
		teamWithScores("b", map[string]models.MatchScore{"2": {Kills: 1, PlacementPoints: 1}}),
		teamWithScores("a", map[string]models.MatchScore{"2": {Kills: 9, PlacementPoints: 10}}),
	}

	rows := BuildRows(teams, "2")

	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Team.ID)
	assert.Equal(t, "a", rows[1].Team.ID)
	assert.Nil(t, rows[0].Position)
	assert.Nil(t, rows[1].Position)
}
