package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Daniyar05/esports-tournament-system/live"
	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
	"github.com/Daniyar05/esports-tournament-system/standings"
	"github.com/Daniyar05/esports-tournament-system/storage"
)

type CreateTournamentInput struct {
	Name      string    `json:"name"`
	Fee       int       `json:"fee"`
	SeasonID  string    `json:"season_id"`
	MaxTeams  int       `json:"max_teams"`
	RegDate   time.Time `json:"reg_date"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type UpdateTournamentDetailsInput struct {
	Name      *string    `json:"name,omitempty"`
	Fee       *int       `json:"fee,omitempty"`
	MaxTeams  *int       `json:"max_teams,omitempty"`
	RegDate   *time.Time `json:"reg_date,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournamentDetails(ctx context.Context, id string, input UpdateTournamentDetailsInput) (*models.Tournament, error)
	UpdateTournamentStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	DefaultTournamentID(ctx context.Context, seasonID *string) (string, bool, error)
	DeclareWinner(ctx context.Context, id string, winnerUserIDs []string) error
	UploadLogo(ctx context.Context, id string, contentType string, reader io.Reader) (*models.Tournament, error)
	AutoUpdateTournamentStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	seasonRepo     repositories.SeasonRepository
	teamRepo       repositories.TeamRepository
	walletService  WalletService
	uploader       storage.FileUploader
	hub            *live.Hub
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	walletService WalletService,
	uploader storage.FileUploader,
	hub *live.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		seasonRepo:     seasonRepo,
		teamRepo:       teamRepo,
		walletService:  walletService,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.Fee < 0 {
		return nil, ErrTournamentInvalidFee
	}
	if input.MaxTeams <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}
	if err := validateTournamentDates(input.RegDate, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.seasonRepo.GetByID(ctx, input.SeasonID); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to verify season: %w", err)
	}

	tournament := &models.Tournament{
		Name:      input.Name,
		Fee:       input.Fee,
		SeasonID:  input.SeasonID,
		Status:    models.StatusSoon,
		MaxTeams:  input.MaxTeams,
		RegDate:   input.RegDate,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentLogoURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournamentDetails(ctx context.Context, id string, input UpdateTournamentDetailsInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTournamentRepoError(err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = *input.Name
	}
	if input.Fee != nil {
		if *input.Fee < 0 {
			return nil, ErrTournamentInvalidFee
		}
		tournament.Fee = *input.Fee
	}
	if input.MaxTeams != nil {
		if *input.MaxTeams <= 0 {
			return nil, ErrTournamentInvalidCapacity
		}
		tournament.MaxTeams = *input.MaxTeams
	}
	if input.RegDate != nil {
		tournament.RegDate = *input.RegDate
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if err := validateTournamentDates(tournament.RegDate, tournament.StartDate, tournament.EndDate); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) UpdateTournamentStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error) {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
	default:
		return nil, ErrTournamentInvalidStatus
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	return s.mapTournamentRepoError(s.tournamentRepo.Delete(ctx, id))
}

// DefaultTournamentID подбирает турнир для первого экрана, когда явного
// выбора нет. Падение подсчёта команд не фатально: выбор деградирует до
// чистой свежести.
func (s *tournamentService) DefaultTournamentID(ctx context.Context, seasonID *string) (string, bool, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{SeasonID: seasonID})
	if err != nil {
		return "", false, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if len(tournaments) == 0 {
		return "", false, nil
	}

	ids := make([]string, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
	}

	teamCounts, err := s.teamRepo.CountByTournament(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "team count lookup failed, falling back to recency-only selection", slog.Any("error", err))
		teamCounts = nil
	}

	id, ok := standings.PickDefaultTournament(tournaments, teamCounts)
	return id, ok, nil
}

// DeclareWinner фиксирует победителя и раздаёт призовой фонд
// (взнос × число команд) по местам в одной транзакции.
func (s *tournamentService) DeclareWinner(ctx context.Context, id string, winnerUserIDs []string) error {
	if len(winnerUserIDs) == 0 {
		return fmt.Errorf("%w: at least one winner is required", ErrValidationFailed)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapTournamentRepoError(err)
	}
	if tournament.IsWinnerDeclared {
		return ErrWinnerAlreadyDecided
	}
	if tournament.Status != models.StatusActive && tournament.Status != models.StatusCompleted {
		return fmt.Errorf("%w: current status is %s", ErrTournamentNotFinished, tournament.Status)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list teams for prize pool: %w", err)
	}

	prizePool := tournament.Fee * len(teams)
	// При меньшем числе победителей срез долей укорачивается, и вся
	// нераспределённая часть фонда уходит первому месту вместе с
	// остатком округления (два победителя делят фонд 70/30).
	shares := defaultPrizeShares
	if len(winnerUserIDs) < len(shares) {
		shares = shares[:len(winnerUserIDs)]
	}
	payouts := SplitPrizePool(prizePool, shares)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.DeclareWinner(ctx, tx, id); err != nil {
		return s.mapTournamentRepoError(err)
	}
	for i, userID := range winnerUserIDs {
		if i >= len(payouts) {
			break
		}
		if err := s.walletService.AwardPrize(ctx, tx, userID, payouts[i], id); err != nil {
			return fmt.Errorf("failed to award prize to user %s: %w", userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit winner declaration: %w", err)
	}

	s.hub.BroadcastToRoom(id, live.Message{
		Type:    "WINNER_DECLARED",
		RoomID:  id,
		Payload: map[string]interface{}{"tournament_id": id, "prize_pool": prizePool},
	})
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id string, contentType string, reader io.Reader) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTournamentRepoError(err)
	}

	key := fmt.Sprintf("tournaments/%s/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, s.mapTournamentRepoError(err)
	}
	tournament.LogoKey = &result.Key
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

// AutoUpdateTournamentStatusesByDates переводит турниры по датам:
// soon -> registration -> active -> completed. Вызывается планировщиком.
func (s *tournamentService) AutoUpdateTournamentStatusesByDates(ctx context.Context) error {
	now := time.Now()
	candidates, err := s.tournamentRepo.GetTournamentsForAutoStatusUpdate(ctx, nil, now)
	if err != nil {
		return fmt.Errorf("failed to load tournaments for status update: %w", err)
	}

	for _, t := range candidates {
		next := t.Status
		switch {
		case t.Status == models.StatusActive && !t.EndDate.After(now):
			next = models.StatusCompleted
		case t.Status == models.StatusRegistration && !t.StartDate.After(now):
			next = models.StatusActive
		case t.Status == models.StatusSoon && !t.RegDate.After(now):
			next = models.StatusRegistration
		}
		if next == t.Status {
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, next); err != nil {
			s.logger.ErrorContext(ctx, "failed to auto-update tournament status",
				slog.String("tournament_id", t.ID),
				slog.String("from", string(t.Status)),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}
		s.logger.InfoContext(ctx, "tournament status auto-updated",
			slog.String("tournament_id", t.ID),
			slog.String("from", string(t.Status)),
			slog.String("to", string(next)))
	}
	return nil
}

func (s *tournamentService) mapTournamentRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrTournamentInvalidSeason):
		return ErrSeasonNotFound
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	}
	return err
}
