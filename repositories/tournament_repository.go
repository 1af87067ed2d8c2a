package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentNameConflict  = errors.New("tournament name conflict for this season")
	ErrTournamentInUse         = errors.New("tournament is in use (teams or polls exist)")
	ErrTournamentInvalidSeason = errors.New("invalid season reference")
)

type ListTournamentsFilter struct {
	SeasonID *string
	Status   *models.TournamentStatus
	Limit    int
	Offset   int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.TournamentStatus) error
	DeclareWinner(ctx context.Context, exec SQLExecutor, id string) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
	Delete(ctx context.Context, id string) error
	GetTournamentsForAutoStatusUpdate(ctx context.Context, exec SQLExecutor, currentTime time.Time) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		// Встроенная в id метка времени служит сигналом свежести для
		// автовыбора турнира по умолчанию.
		t.ID = fmt.Sprintf("t_%d", time.Now().UnixMilli())
	}
	query := `
		INSERT INTO tournaments (
			id, name, fee, season_id, status, is_winner_declared, max_teams,
			reg_date, start_date, end_date, logo_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Fee, t.SeasonID, t.Status, t.IsWinnerDeclared, t.MaxTeams,
		t.RegDate, t.StartDate, t.EndDate, t.LogoKey,
	).Scan(&t.CreatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, fee, season_id, status, is_winner_declared, max_teams,
		       reg_date, start_date, end_date, created_at, logo_key
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Fee, &t.SeasonID, &t.Status, &t.IsWinnerDeclared, &t.MaxTeams,
		&t.RegDate, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `
		SELECT id, name, fee, season_id, status, is_winner_declared, max_teams,
		       reg_date, start_date, end_date, created_at, logo_key
		FROM tournaments
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.SeasonID != nil {
		query += fmt.Sprintf(" AND season_id = $%d", argID)
		args = append(args, *filter.SeasonID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.Fee, &t.SeasonID, &t.Status, &t.IsWinnerDeclared, &t.MaxTeams,
			&t.RegDate, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.LogoKey,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1, fee = $2, season_id = $3, status = $4, max_teams = $5,
			reg_date = $6, start_date = $7, end_date = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Fee, t.SeasonID, t.Status, t.MaxTeams,
		t.RegDate, t.StartDate, t.EndDate, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) DeclareWinner(ctx context.Context, exec SQLExecutor, id string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournaments SET is_winner_declared = TRUE WHERE id = $1 AND is_winner_declared = FALSE`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) GetTournamentsForAutoStatusUpdate(ctx context.Context, exec SQLExecutor, currentTime time.Time) ([]*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, fee, season_id, status, is_winner_declared, max_teams,
		       reg_date, start_date, end_date, created_at, logo_key
		FROM tournaments
		WHERE status NOT IN ($1, $2)
		AND (
			(status = $3 AND reg_date <= $4) OR
			(status = $5 AND start_date <= $4) OR
			(status = $6 AND end_date <= $4)
		)`
	args := []interface{}{
		models.StatusCompleted,    // $1
		models.StatusCanceled,     // $2
		models.StatusSoon,         // $3
		currentTime,               // $4
		models.StatusRegistration, // $5
		models.StatusActive,       // $6
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments for auto status update: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.Fee, &t.SeasonID, &t.Status, &t.IsWinnerDeclared, &t.MaxTeams,
			&t.RegDate, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.LogoKey,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament for auto status update: %w", scanErr)
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrTournamentNameConflict
		case "23503":
			if pqErr.Constraint == "tournaments_season_id_fkey" {
				return ErrTournamentInvalidSeason
			}
			return ErrTournamentInUse
		}
	}
	return err
}
