package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrSeasonNotFound     = errors.New("season not found")
	ErrSeasonNameConflict = errors.New("season name conflict")
	ErrSeasonInUse        = errors.New("season is in use (tournaments exist)")
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id string) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	SetActive(ctx context.Context, exec SQLExecutor, id string) error
	Delete(ctx context.Context, id string) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSeasonRepository) Create(ctx context.Context, season *models.Season) error {
	if season.ID == "" {
		season.ID = uuid.NewString()
	}
	query := `
		INSERT INTO seasons (id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, season.ID, season.Name, season.IsActive).Scan(&season.CreatedAt)
	return r.handleSeasonError(err)
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id string) (*models.Season, error) {
	query := `SELECT id, name, is_active, created_at FROM seasons WHERE id = $1`
	var s models.Season
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]models.Season, error) {
	query := `SELECT id, name, is_active, created_at FROM seasons ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var s models.Season
		if scanErr := rows.Scan(&s.ID, &s.Name, &s.IsActive, &s.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return seasons, nil
}

func (r *postgresSeasonRepository) Update(ctx context.Context, season *models.Season) error {
	query := `UPDATE seasons SET name = $1, is_active = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, season.Name, season.IsActive, season.ID)
	if err != nil {
		return r.handleSeasonError(err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

// SetActive атомарно делает сезон активным и снимает флаг со всех остальных.
// Должен вызываться внутри транзакции.
func (r *postgresSeasonRepository) SetActive(ctx context.Context, exec SQLExecutor, id string) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `UPDATE seasons SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("failed to deactivate seasons: %w", err)
	}

	result, err := executor.ExecContext(ctx, `UPDATE seasons SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return r.handleSeasonError(err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) handleSeasonError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrSeasonNameConflict
		case "23503":
			return ErrSeasonInUse
		}
	}
	return err
}
