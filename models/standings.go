package models

// StandingsRow — строка таблицы результатов. Position заполняется только в
// агрегированном представлении "все матчи" (1-based); при просмотре одного
// конкретного матча остаётся nil.
type StandingsRow struct {
	Team     Team `json:"team"`
	Position *int `json:"position,omitempty"`
}
