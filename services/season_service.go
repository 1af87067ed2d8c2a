package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
)

type SeasonService interface {
	CreateSeason(ctx context.Context, name string) (*models.Season, error)
	GetSeasonByID(ctx context.Context, id string) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
	RenameSeason(ctx context.Context, id, name string) (*models.Season, error)
	ActivateSeason(ctx context.Context, id string) error
	DeleteSeason(ctx context.Context, id string) error
}

type seasonService struct {
	db         *sql.DB
	seasonRepo repositories.SeasonRepository
}

func NewSeasonService(db *sql.DB, seasonRepo repositories.SeasonRepository) SeasonService {
	return &seasonService{db: db, seasonRepo: seasonRepo}
}

func (s *seasonService) CreateSeason(ctx context.Context, name string) (*models.Season, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: season name is required", ErrValidationFailed)
	}
	season := &models.Season{Name: name}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		if errors.Is(err, repositories.ErrSeasonNameConflict) {
			return nil, ErrSeasonNameConflict
		}
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return season, nil
}

func (s *seasonService) GetSeasonByID(ctx context.Context, id string) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) ListSeasons(ctx context.Context) ([]models.Season, error) {
	return s.seasonRepo.List(ctx)
}

func (s *seasonService) RenameSeason(ctx context.Context, id, name string) (*models.Season, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: season name is required", ErrValidationFailed)
	}
	season, err := s.GetSeasonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	season.Name = name
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		if errors.Is(err, repositories.ErrSeasonNameConflict) {
			return nil, ErrSeasonNameConflict
		}
		return nil, fmt.Errorf("failed to rename season: %w", err)
	}
	return season, nil
}

// ActivateSeason делает сезон активным; активный сезон ровно один,
// поэтому снятие флага с остальных и установка идут в одной транзакции.
func (s *seasonService) ActivateSeason(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.seasonRepo.SetActive(ctx, tx, id); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return ErrSeasonNotFound
		}
		return fmt.Errorf("failed to activate season: %w", err)
	}
	return tx.Commit()
}

func (s *seasonService) DeleteSeason(ctx context.Context, id string) error {
	err := s.seasonRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSeasonNotFound):
			return ErrSeasonNotFound
		case errors.Is(err, repositories.ErrSeasonInUse):
			return fmt.Errorf("%w: season still has tournaments", ErrForbiddenOperation)
		}
		return err
	}
	return nil
}
