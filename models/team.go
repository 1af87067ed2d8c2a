package models

import (
	"strings"
	"time"
)

// Player — слот в составе команды. Порядок слотов значим: от него зависят
// производное имя команды и выравнивание массивов киллов в MatchScore.
type Player struct {
	ID    *string `json:"id,omitempty"`
	IGN   string  `json:"ign"`
	Kills int     `json:"kills"`
}

// MatchScore — результат команды в одном матче. PlayerKills и
// PlayerParticipation параллельны активному составу (слоты с непустым IGN).
type MatchScore struct {
	Kills               int    `json:"kills"`
	PlacementPoints     int    `json:"placement_points"`
	PlayerKills         []int  `json:"player_kills"`
	PlayerParticipation []bool `json:"player_participation"`
}

// Team хранит состав и результаты по матчам. Ключи MatchScores — номера
// матчей в виде строк ("1", "2", ...), пропуски допустимы.
type Team struct {
	ID           string                `json:"id" db:"id"`
	TeamName     string                `json:"team_name" db:"team_name"`
	Players      []Player              `json:"players" db:"players"`
	MatchScores  map[string]MatchScore `json:"match_scores" db:"match_scores"`
	TournamentID string                `json:"tournament_id" db:"tournament_id"`
	SeasonID     string                `json:"season_id" db:"season_id"`
	CreatedAt    time.Time             `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// DeriveTeamName собирает имя команды из непустых игровых ников,
// соединяя их через "_". Пересчитывается при каждом изменении состава.
func (t Team) DeriveTeamName() string {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		if p.IGN != "" {
			names = append(names, p.IGN)
		}
	}
	return strings.Join(names, "_")
}

// ActiveRosterSize возвращает число слотов с непустым IGN — длину, к которой
// должны быть приведены массивы PlayerKills/PlayerParticipation.
func (t Team) ActiveRosterSize() int {
	n := 0
	for _, p := range t.Players {
		if p.IGN != "" {
			n++
		}
	}
	return n
}
