package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/live"
	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
	"github.com/Daniyar05/esports-tournament-system/standings"
	"golang.org/x/sync/errgroup"
)

// MatchAll — псевдономер матча для сводной таблицы по всем матчам.
const MatchAll = "all"

type StandingsView struct {
	Tournament *models.Tournament    `json:"tournament"`
	MatchNo    string                `json:"match_no"`
	Rows       []models.StandingsRow `json:"rows"`
}

type StandingsService interface {
	Standings(ctx context.Context, tournamentID, matchNo string) (*StandingsView, error)
	BroadcastStandings(ctx context.Context, tournamentID string)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	hub            *live.Hub
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	hub *live.Hub,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		hub:            hub,
	}
}

// Standings собирает таблицу результатов. matchNo "all" даёт сводную таблицу
// с тай-брейками и позициями, номер матча — строки в исходном порядке без
// позиций. Турнир и команды грузятся параллельно.
func (s *standingsService) Standings(ctx context.Context, tournamentID, matchNo string) (*StandingsView, error) {
	if matchNo == "" {
		matchNo = MatchAll
	}
	if matchNo != MatchAll {
		if err := validateMatchNumber(matchNo); err != nil {
			return nil, err
		}
	}

	var (
		tournament *models.Tournament
		teams      []models.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to load tournament: %w", err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.teamRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		teams = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &StandingsView{
		Tournament: tournament,
		MatchNo:    matchNo,
		Rows:       standings.BuildRows(teams, matchNo),
	}, nil
}

// BroadcastStandings пересчитывает сводную таблицу и толкает её в комнату
// турнира. Ошибки глотаются: push best-effort, источником правды остаётся
// GET /standings.
func (s *standingsService) BroadcastStandings(ctx context.Context, tournamentID string) {
	if s.hub == nil {
		return
	}
	view, err := s.Standings(ctx, tournamentID, MatchAll)
	if err != nil {
		return
	}
	s.hub.BroadcastToRoom(tournamentID, live.Message{
		Type:    "STANDINGS_UPDATED",
		RoomID:  tournamentID,
		Payload: view,
	})
}
