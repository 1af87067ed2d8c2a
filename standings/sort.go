package standings

import (
	"sort"

	"github.com/Daniyar05/esports-tournament-system/models"
)

// TeamTotals sums a team's kills and placement points across every recorded
// match. Gaps in match numbers simply contribute nothing.
func TeamTotals(team models.Team) (kills, placementPoints int) {
	for _, score := range team.MatchScores {
		kills += score.Kills
		placementPoints += score.PlacementPoints
	}
	return kills, placementPoints
}

// SortTeamsWithTiebreaker возвращает новый срез команд, упорядоченный для
// агрегированной таблицы "все матчи":
//
//  1. по убыванию combined score (очки за места + киллы);
//  2. при равенстве — по убыванию очков за места;
//  3. при равенстве — по убыванию киллов;
//  4. иначе — исходный порядок (стабильная сортировка).
//
// Входные команды не изменяются.
func SortTeamsWithTiebreaker(teams []models.Team) []models.Team {
	type ranked struct {
		team      models.Team
		kills     int
		placement int
	}

	rankedTeams := make([]ranked, len(teams))
	for i, t := range teams {
		k, p := TeamTotals(t)
		rankedTeams[i] = ranked{team: t, kills: k, placement: p}
	}

	sort.SliceStable(rankedTeams, func(i, j int) bool {
		a, b := rankedTeams[i], rankedTeams[j]
		scoreA := a.placement + a.kills
		scoreB := b.placement + b.kills
		if scoreA != scoreB {
			return scoreA > scoreB
		}
		if a.placement != b.placement {
			return a.placement > b.placement
		}
		if a.kills != b.kills {
			return a.kills > b.kills
		}
		return false
	})

	sorted := make([]models.Team, len(rankedTeams))
	for i, r := range rankedTeams {
		sorted[i] = r.team
	}
	return sorted
}

// BuildRows prepares standings rows for rendering or export. With
// matchNo == "all" teams are ranked across every match and given 1-based
// positions; for a specific match number the input order is kept and
// positions stay nil (no cross-team ranking is requested for a single match).
func BuildRows(teams []models.Team, matchNo string) []models.StandingsRow {
	if matchNo != "all" {
		rows := make([]models.StandingsRow, len(teams))
		for i, t := range teams {
			rows[i] = models.StandingsRow{Team: t}
		}
		return rows
	}

	sorted := SortTeamsWithTiebreaker(teams)
	rows := make([]models.StandingsRow, len(sorted))
	for i, t := range sorted {
		position := i + 1
		rows[i] = models.StandingsRow{Team: t, Position: &position}
	}
	return rows
}
