package models

import "time"

// Season — грубая временная группировка турниров. Используется только как
// фильтр, никакой вычислительной роли не имеет.
type Season struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
