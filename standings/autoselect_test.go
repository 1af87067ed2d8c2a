package standings

import (
	"testing"
	"time"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickDefaultTournament_PrefersTournamentsWithTeams(t *testing.T) {
	tournaments := []models.Tournament{
		{ID: "t_100"},
		{ID: "t_200"},
		{ID: "t_300"},
	}
	teamCounts := map[string]int{"t_200": 4}

	id, ok := PickDefaultTournament(tournaments, teamCounts)

	require.True(t, ok)
	// t_300 свежее, но пустой: непустой t_200 предпочтительнее.
	assert.Equal(t, "t_200", id)
}

func TestPickDefaultTournament_MostRecentByCreatedAt(t *testing.T) {
	now := time.Now()
	tournaments := []models.Tournament{
		{ID: "old", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "mid", CreatedAt: now.Add(-24 * time.Hour)},
	}

	id, ok := PickDefaultTournament(tournaments, map[string]int{"old": 1, "new": 1, "mid": 1})

	require.True(t, ok)
	assert.Equal(t, "new", id)
}

func TestPickDefaultTournament_FallsBackToIDTimestamp(t *testing.T) {
	tournaments := []models.Tournament{
		{ID: "t_1700000000000"},
		{ID: "t_1700000099999"},
		{ID: "t_1700000050000"},
	}

	id, ok := PickDefaultTournament(tournaments, nil)

	require.True(t, ok)
	assert.Equal(t, "t_1700000099999", id)
}

func TestPickDefaultTournament_MalformedIDsKeepInputOrder(t *testing.T) {
	tournaments := []models.Tournament{
		{ID: "weird"},
		{ID: "also_weird_id"},
	}

	id, ok := PickDefaultTournament(tournaments, nil)

	require.True(t, ok)
	assert.Equal(t, "weird", id)
}

func TestPickDefaultTournament_NilCountsMeansRecencyOnly(t *testing.T) {
	// Подсчёт команд упал: nil-карта, выбор чисто по свежести.
	now := time.Now()
	tournaments := []models.Tournament{
		{ID: "a", CreatedAt: now.Add(-time.Hour)},
		{ID: "b", CreatedAt: now},
	}

	id, ok := PickDefaultTournament(tournaments, nil)

	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestPickDefaultTournament_AllEmptyTournaments(t *testing.T) {
	// Ни у кого нет команд — выбираем среди всех по свежести.
	tournaments := []models.Tournament{
		{ID: "t_100"},
		{ID: "t_300"},
	}

	id, ok := PickDefaultTournament(tournaments, map[string]int{})

	require.True(t, ok)
	assert.Equal(t, "t_300", id)
}

func TestPickDefaultTournament_EmptyInput(t *testing.T) {
	id, ok := PickDefaultTournament(nil, nil)

	assert.False(t, ok)
	assert.Empty(t, id)
}
