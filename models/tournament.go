package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament представляет одно событие (серию матчей) внутри сезона.
// Fee — взнос за участие в UC.
type Tournament struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Fee              int              `json:"fee" db:"fee"`
	SeasonID         string           `json:"season_id" db:"season_id"`
	Status           TournamentStatus `json:"status" db:"status"`
	IsWinnerDeclared bool             `json:"is_winner_declared" db:"is_winner_declared"`
	MaxTeams         int              `json:"max_teams" db:"max_teams"`
	RegDate          time.Time        `json:"reg_date" db:"reg_date"`
	StartDate        time.Time        `json:"start_date" db:"start_date"`
	EndDate          time.Time        `json:"end_date" db:"end_date"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	LogoKey          *string          `json:"-" db:"logo_key"`
	LogoURL          *string          `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Season *Season `json:"season,omitempty" db:"-"`
	Teams  []Team  `json:"teams,omitempty" db:"-"`
}
