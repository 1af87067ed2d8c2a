package models

import "time"

type PollStatus string

const (
	PollOpen   PollStatus = "open"
	PollClosed PollStatus = "closed"
)

// Poll — голосование при записи на турнир. Options хранятся в БД как JSONB.
type Poll struct {
	ID           string     `json:"id" db:"id"`
	TournamentID string     `json:"tournament_id" db:"tournament_id"`
	Question     string     `json:"question" db:"question"`
	Options      []string   `json:"options" db:"options"`
	Status       PollStatus `json:"status" db:"status"`
	ClosesAt     time.Time  `json:"closes_at" db:"closes_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type PollVote struct {
	PollID      string    `json:"poll_id" db:"poll_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	OptionIndex int       `json:"option_index" db:"option_index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PollResult — агрегат по одному варианту ответа.
type PollResult struct {
	OptionIndex int    `json:"option_index"`
	Option      string `json:"option"`
	Votes       int    `json:"votes"`
}
