package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
	"github.com/stretchr/testify/assert"
)

// stubTournamentRepo отдаёт заранее заданный турнир; остальные методы
// интерфейса не вызываются в проверяемых сценариях.
type stubTournamentRepo struct {
	repositories.TournamentRepository
	tournament *models.Tournament
	err        error
}

func (s *stubTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return s.tournament, s.err
}

func newTournamentServiceForTest(repo repositories.TournamentRepository) TournamentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTournamentService(nil, repo, nil, nil, nil, nil, nil, logger)
}

func TestDeclareWinner_RequiresWinners(t *testing.T) {
	svc := newTournamentServiceForTest(&stubTournamentRepo{})

	err := svc.DeclareWinner(context.Background(), "t_1", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeclareWinner_RejectsUnfinishedTournament(t *testing.T) {
	// Призы нельзя раздать, пока турнир не дошёл хотя бы до active:
	// на soon/registration/canceled фонд ещё не сформирован.
	for _, status := range []models.TournamentStatus{
		models.StatusSoon,
		models.StatusRegistration,
		models.StatusCanceled,
	} {
		repo := &stubTournamentRepo{tournament: &models.Tournament{
			ID:     "t_1",
			Fee:    100,
			Status: status,
		}}
		svc := newTournamentServiceForTest(repo)

		err := svc.DeclareWinner(context.Background(), "t_1", []string{"user-1"})
		assert.ErrorIs(t, err, ErrTournamentNotFinished, "status %s", status)
	}
}

func TestDeclareWinner_RejectsSecondDeclaration(t *testing.T) {
	repo := &stubTournamentRepo{tournament: &models.Tournament{
		ID:               "t_1",
		Status:           models.StatusCompleted,
		IsWinnerDeclared: true,
	}}
	svc := newTournamentServiceForTest(repo)

	err := svc.DeclareWinner(context.Background(), "t_1", []string{"user-1"})
	assert.ErrorIs(t, err, ErrWinnerAlreadyDecided)
}
