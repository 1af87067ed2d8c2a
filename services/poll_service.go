package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Daniyar05/esports-tournament-system/live"
	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
)

type CreatePollInput struct {
	TournamentID string    `json:"tournament_id"`
	Question     string    `json:"question"`
	Options      []string  `json:"options"`
	ClosesAt     time.Time `json:"closes_at"`
}

type PollService interface {
	CreatePoll(ctx context.Context, input CreatePollInput) (*models.Poll, error)
	GetPollByID(ctx context.Context, id string) (*models.Poll, error)
	ListPollsByTournament(ctx context.Context, tournamentID string) ([]models.Poll, error)
	Vote(ctx context.Context, pollID, userID string, optionIndex int) (*models.PollVote, error)
	ClosePoll(ctx context.Context, id string) error
	Results(ctx context.Context, pollID string) ([]models.PollResult, error)
	CloseExpiredPolls(ctx context.Context) error
}

type pollService struct {
	pollRepo repositories.PollRepository
	hub      *live.Hub
	logger   *slog.Logger
}

func NewPollService(pollRepo repositories.PollRepository, hub *live.Hub, logger *slog.Logger) PollService {
	return &pollService{pollRepo: pollRepo, hub: hub, logger: logger}
}

func (s *pollService) CreatePoll(ctx context.Context, input CreatePollInput) (*models.Poll, error) {
	if input.Question == "" {
		return nil, fmt.Errorf("%w: poll question is required", ErrValidationFailed)
	}
	if len(input.Options) < 2 {
		return nil, ErrPollNeedsTwoOptions
	}
	for i, opt := range input.Options {
		if opt == "" {
			return nil, fmt.Errorf("%w: option %d is empty", ErrValidationFailed, i+1)
		}
	}
	if input.ClosesAt.IsZero() || !input.ClosesAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: closes_at must be in the future", ErrValidationFailed)
	}

	poll := &models.Poll{
		TournamentID: input.TournamentID,
		Question:     input.Question,
		Options:      input.Options,
		Status:       models.PollOpen,
		ClosesAt:     input.ClosesAt,
	}
	if err := s.pollRepo.Create(ctx, poll); err != nil {
		if errors.Is(err, repositories.ErrPollInvalidParent) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, nil
}

func (s *pollService) GetPollByID(ctx context.Context, id string) (*models.Poll, error) {
	poll, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return poll, nil
}

func (s *pollService) ListPollsByTournament(ctx context.Context, tournamentID string) ([]models.Poll, error) {
	return s.pollRepo.ListByTournament(ctx, tournamentID)
}

// Vote принимает голос. Опрос должен быть открыт и не просрочен, индекс
// варианта — в пределах списка; повторный голос отсекает уникальный
// индекс в БД.
func (s *pollService) Vote(ctx context.Context, pollID, userID string, optionIndex int) (*models.PollVote, error) {
	poll, err := s.GetPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Status != models.PollOpen || !poll.ClosesAt.After(time.Now()) {
		return nil, ErrPollNotOpen
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fmt.Errorf("%w: index %d of %d options", ErrPollOptionInvalid, optionIndex, len(poll.Options))
	}

	vote := &models.PollVote{
		PollID:      pollID,
		UserID:      userID,
		OptionIndex: optionIndex,
	}
	if err := s.pollRepo.AddVote(ctx, vote); err != nil {
		if errors.Is(err, repositories.ErrPollVoteConflict) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return vote, nil
}

func (s *pollService) ClosePoll(ctx context.Context, id string) error {
	poll, err := s.GetPollByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pollRepo.Close(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			// Гонка с планировщиком: опрос уже закрыт.
			return ErrPollNotOpen
		}
		return fmt.Errorf("failed to close poll: %w", err)
	}
	s.broadcastClosed(poll)
	return nil
}

func (s *pollService) Results(ctx context.Context, pollID string) ([]models.PollResult, error) {
	poll, err := s.GetPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	counts, err := s.pollRepo.CountVotes(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	results := make([]models.PollResult, len(poll.Options))
	for i, opt := range poll.Options {
		results[i] = models.PollResult{
			OptionIndex: i,
			Option:      opt,
			Votes:       counts[i],
		}
	}
	return results, nil
}

// CloseExpiredPolls закрывает опросы с истёкшим сроком. Вызывается
// планировщиком из main.
func (s *pollService) CloseExpiredPolls(ctx context.Context) error {
	ids, err := s.pollRepo.CloseExpired(ctx, nil, time.Now())
	if err != nil {
		return err
	}
	for _, id := range ids {
		poll, getErr := s.pollRepo.GetByID(ctx, id)
		if getErr != nil {
			s.logger.WarnContext(ctx, "closed poll not found for broadcast", slog.String("poll_id", id), slog.Any("error", getErr))
			continue
		}
		s.broadcastClosed(poll)
		s.logger.InfoContext(ctx, "expired poll closed", slog.String("poll_id", id))
	}
	return nil
}

func (s *pollService) broadcastClosed(poll *models.Poll) {
	if s.hub == nil || poll == nil {
		return
	}
	s.hub.BroadcastToRoom(poll.TournamentID, live.Message{
		Type:    "POLL_CLOSED",
		RoomID:  poll.TournamentID,
		Payload: map[string]interface{}{"poll_id": poll.ID, "question": poll.Question},
	})
}
