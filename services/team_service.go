package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
	"github.com/Daniyar05/esports-tournament-system/standings"
	"github.com/Daniyar05/esports-tournament-system/storage"
)

const maxRosterSlots = 6

type CreateTeamInput struct {
	TournamentID string          `json:"tournament_id"`
	Players      []models.Player `json:"players"`
}

type RecordMatchScoreInput struct {
	Position            int    `json:"position"`
	PlayerKills         []int  `json:"player_kills"`
	PlayerParticipation []bool `json:"player_participation"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, ownerUserID string, input CreateTeamInput) (*models.Team, error)
	BulkImportTeams(ctx context.Context, tournamentID string, rosters [][]models.Player) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	ListTeamsByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	UpdatePlayers(ctx context.Context, teamID string, players []models.Player) (*models.Team, error)
	RecordMatchScore(ctx context.Context, teamID, matchNo string, input RecordMatchScoreInput) (*models.Team, error)
	ReconcileStats(ctx context.Context, tournamentID string) (int, error)
	UploadLogo(ctx context.Context, teamID string, contentType string, reader io.Reader) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type teamService struct {
	db             *sql.DB
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	walletService  WalletService
	uploader       storage.FileUploader
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	walletService WalletService,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		db:             db,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		walletService:  walletService,
		uploader:       uploader,
	}
}

func validateRoster(players []models.Player) error {
	if len(players) > maxRosterSlots {
		return fmt.Errorf("%w: %d slots, limit %d", ErrTeamRosterTooLarge, len(players), maxRosterSlots)
	}
	for _, p := range players {
		if p.IGN != "" {
			return nil
		}
	}
	return ErrTeamNameRequired
}

// CreateTeam регистрирует команду: проверяет окно регистрации и лимит мест,
// списывает взнос с кошелька владельца и создаёт команду в одной транзакции.
func (s *teamService) CreateTeam(ctx context.Context, ownerUserID string, input CreateTeamInput) (*models.Team, error) {
	if err := validateRoster(input.Players); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	counts, err := s.teamRepo.CountByTournament(ctx, []string{tournament.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count teams: %w", err)
	}
	if counts[tournament.ID] >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	team := &models.Team{
		Players:      input.Players,
		MatchScores:  map[string]models.MatchScore{},
		TournamentID: tournament.ID,
		SeasonID:     tournament.SeasonID,
	}
	team.TeamName = team.DeriveTeamName()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.walletService.ChargeEntryFee(ctx, tx, ownerUserID, tournament.Fee, tournament.ID); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team registration: %w", err)
	}
	return team, nil
}

// BulkImportTeams — организаторский импорт составов (например, из таблицы).
// Окно регистрации и взносы не проверяются: импорт идёт мимо самозаписи.
func (s *teamService) BulkImportTeams(ctx context.Context, tournamentID string, rosters [][]models.Player) ([]models.Team, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	teams := make([]*models.Team, 0, len(rosters))
	for i, players := range rosters {
		if err := validateRoster(players); err != nil {
			return nil, fmt.Errorf("roster %d: %w", i+1, err)
		}
		team := &models.Team{
			Players:      players,
			MatchScores:  map[string]models.MatchScore{},
			TournamentID: tournament.ID,
			SeasonID:     tournament.SeasonID,
		}
		team.TeamName = team.DeriveTeamName()
		teams = append(teams, team)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.teamRepo.BatchCreate(ctx, tx, teams); err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bulk import: %w", err)
	}

	result := make([]models.Team, len(teams))
	for i, t := range teams {
		result[i] = *t
	}
	return result, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

// UpdatePlayers меняет состав. Имя команды выводится заново из ников, а все
// сохранённые результаты матчей выравниваются под новый активный состав.
func (s *teamService) UpdatePlayers(ctx context.Context, teamID string, players []models.Player) (*models.Team, error) {
	if err := validateRoster(players); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamRepoError(err)
	}

	team.Players = players
	team.TeamName = team.DeriveTeamName()
	rosterLen := team.ActiveRosterSize()
	for matchNo, score := range team.MatchScores {
		team.MatchScores[matchNo] = standings.NormalizeMatchScore(score, rosterLen)
	}
	recomputePlayerKills(team)

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	return team, nil
}

// RecordMatchScore записывает результат матча: позиция конвертируется в очки
// за место, покилловые массивы выравниваются под состав, командные киллы —
// сумма покилловых.
func (s *teamService) RecordMatchScore(ctx context.Context, teamID, matchNo string, input RecordMatchScoreInput) (*models.Team, error) {
	if err := validateMatchNumber(matchNo); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamRepoError(err)
	}

	rosterLen := team.ActiveRosterSize()
	score := standings.NormalizeMatchScore(models.MatchScore{
		PlacementPoints:     standings.CalculatePlacementPoints(input.Position),
		PlayerKills:         input.PlayerKills,
		PlayerParticipation: input.PlayerParticipation,
	}, rosterLen)
	for _, k := range score.PlayerKills {
		score.Kills += k
	}

	if team.MatchScores == nil {
		team.MatchScores = map[string]models.MatchScore{}
	}
	team.MatchScores[matchNo] = score
	recomputePlayerKills(team)

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	return team, nil
}

// ReconcileStats прогоняет нормализацию по всем командам турнира: чинит
// массивы, разъехавшиеся после ручных правок состава. Возвращает число
// исправленных команд.
func (s *teamService) ReconcileStats(ctx context.Context, tournamentID string) (int, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for i := range teams {
		team := &teams[i]
		rosterLen := team.ActiveRosterSize()

		changed := false
		for matchNo, score := range team.MatchScores {
			normalized := standings.NormalizeMatchScore(score, rosterLen)
			if len(normalized.PlayerKills) != len(score.PlayerKills) ||
				len(normalized.PlayerParticipation) != len(score.PlayerParticipation) {
				team.MatchScores[matchNo] = normalized
				changed = true
			}
		}
		if derived := team.DeriveTeamName(); derived != team.TeamName {
			team.TeamName = derived
			changed = true
		}
		if !changed {
			continue
		}

		recomputePlayerKills(team)
		if err := s.teamRepo.Update(ctx, nil, team); err != nil {
			return fixed, fmt.Errorf("failed to reconcile team %s: %w", team.ID, err)
		}
		fixed++
	}
	return fixed, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID string, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamRepoError(err)
	}

	key := fmt.Sprintf("teams/%s/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, s.mapTeamRepoError(err)
	}
	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	return s.mapTeamRepoError(s.teamRepo.Delete(ctx, id))
}

func (s *teamService) populateLogoURL(team *models.Team) {
	populateTeamLogoURL(team, s.uploader)
}

// recomputePlayerKills пересобирает накопленные киллы игроков из всех
// матчей. Индекс в PlayerKills соответствует порядковому номеру слота
// с непустым IGN.
func recomputePlayerKills(team *models.Team) {
	totals := make([]int, team.ActiveRosterSize())
	for _, score := range team.MatchScores {
		for i, k := range score.PlayerKills {
			if i < len(totals) {
				totals[i] += k
			}
		}
	}

	active := 0
	for i := range team.Players {
		if team.Players[i].IGN == "" {
			team.Players[i].Kills = 0
			continue
		}
		if active < len(totals) {
			team.Players[i].Kills = totals[active]
		}
		active++
	}
}

func (s *teamService) mapTeamRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamInvalidTournament):
		return ErrTournamentNotFound
	}
	return err
}
