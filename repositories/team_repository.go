package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name conflict for this tournament")
	ErrTeamInvalidTournament = errors.New("invalid tournament reference")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	BatchCreate(ctx context.Context, exec SQLExecutor, teams []*models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
	Delete(ctx context.Context, id string) error
	CountByTournament(ctx context.Context, tournamentIDs []string) (map[string]int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// players и match_scores лежат в JSONB: состав и результаты читаются и
// пишутся всегда целиком, отдельных строк на матч нет.
func marshalTeamJSON(team *models.Team) (playersJSON, scoresJSON []byte, err error) {
	players := team.Players
	if players == nil {
		players = []models.Player{}
	}
	playersJSON, err = json.Marshal(players)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal players: %w", err)
	}

	scores := team.MatchScores
	if scores == nil {
		scores = map[string]models.MatchScore{}
	}
	scoresJSON, err = json.Marshal(scores)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal match scores: %w", err)
	}
	return playersJSON, scoresJSON, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	playersJSON, scoresJSON, err := marshalTeamJSON(team)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO teams (id, team_name, players, match_scores, tournament_id, season_id, logo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err = executor.QueryRowContext(ctx, query,
		team.ID, team.TeamName, playersJSON, scoresJSON, team.TournamentID, team.SeasonID, team.LogoKey,
	).Scan(&team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) BatchCreate(ctx context.Context, exec SQLExecutor, teams []*models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	for _, team := range teams {
		if err := r.Create(ctx, executor, team); err != nil {
			return fmt.Errorf("batch create failed for team %q: %w", team.TeamName, err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	var playersJSON, scoresJSON []byte
	err := rowScanner.Scan(
		&t.ID, &t.TeamName, &playersJSON, &scoresJSON,
		&t.TournamentID, &t.SeasonID, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(playersJSON, &t.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players for team %s: %w", t.ID, err)
	}
	if err := json.Unmarshal(scoresJSON, &t.MatchScores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match scores for team %s: %w", t.ID, err)
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, team_name, players, match_scores, tournament_id, season_id, created_at, logo_key
		FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `
		SELECT id, team_name, players, match_scores, tournament_id, season_id, created_at, logo_key
		FROM teams
		WHERE tournament_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	playersJSON, scoresJSON, err := marshalTeamJSON(team)
	if err != nil {
		return err
	}

	query := `
		UPDATE teams SET team_name = $1, players = $2, match_scores = $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, team.TeamName, playersJSON, scoresJSON, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// CountByTournament возвращает количество команд по каждому турниру из списка.
// Турниры без команд в карте отсутствуют.
func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(tournamentIDs))
	if len(tournamentIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT tournament_id, COUNT(*)
		FROM teams
		WHERE tournament_id = ANY($1)
		GROUP BY tournament_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(tournamentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if scanErr := rows.Scan(&id, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[id] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrTeamNameConflict
		case "23503":
			return ErrTeamInvalidTournament
		}
	}
	return err
}
