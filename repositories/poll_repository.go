package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrPollVoteConflict  = errors.New("user has already voted in this poll")
	ErrPollInvalidParent = errors.New("invalid tournament reference for poll")
)

type PollRepository interface {
	Create(ctx context.Context, poll *models.Poll) error
	GetByID(ctx context.Context, id string) (*models.Poll, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Poll, error)
	Close(ctx context.Context, exec SQLExecutor, id string) error
	CloseExpired(ctx context.Context, exec SQLExecutor, now time.Time) ([]string, error)
	AddVote(ctx context.Context, vote *models.PollVote) error
	CountVotes(ctx context.Context, pollID string) (map[int]int, error)
}

type postgresPollRepository struct {
	db *sql.DB
}

func NewPostgresPollRepository(db *sql.DB) PollRepository {
	return &postgresPollRepository{db: db}
}

func (r *postgresPollRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPollRepository) Create(ctx context.Context, poll *models.Poll) error {
	if poll.ID == "" {
		poll.ID = uuid.NewString()
	}
	optionsJSON, err := json.Marshal(poll.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal poll options: %w", err)
	}

	query := `
		INSERT INTO polls (id, tournament_id, question, options, status, closes_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		poll.ID, poll.TournamentID, poll.Question, optionsJSON, poll.Status, poll.ClosesAt,
	).Scan(&poll.CreatedAt)

	return r.handlePollError(err)
}

func (r *postgresPollRepository) scanPoll(rowScanner interface{ Scan(...interface{}) error }) (*models.Poll, error) {
	var p models.Poll
	var optionsJSON []byte
	err := rowScanner.Scan(&p.ID, &p.TournamentID, &p.Question, &optionsJSON, &p.Status, &p.ClosesAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options for poll %s: %w", p.ID, err)
	}
	return &p, nil
}

func (r *postgresPollRepository) GetByID(ctx context.Context, id string) (*models.Poll, error) {
	query := `
		SELECT id, tournament_id, question, options, status, closes_at, created_at
		FROM polls WHERE id = $1`
	return r.scanPoll(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPollRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Poll, error) {
	query := `
		SELECT id, tournament_id, question, options, status, closes_at, created_at
		FROM polls
		WHERE tournament_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := make([]models.Poll, 0)
	for rows.Next() {
		p, scanErr := r.scanPoll(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		polls = append(polls, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *postgresPollRepository) Close(ctx context.Context, exec SQLExecutor, id string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE polls SET status = $1 WHERE id = $2 AND status = $3`,
		models.PollClosed, id, models.PollOpen)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPollNotFound)
}

// CloseExpired закрывает все открытые опросы с истёкшим closes_at и
// возвращает их id (для рассылки в live-хаб).
func (r *postgresPollRepository) CloseExpired(ctx context.Context, exec SQLExecutor, now time.Time) ([]string, error) {
	executor := r.getExecutor(exec)
	query := `
		UPDATE polls SET status = $1
		WHERE status = $2 AND closes_at <= $3
		RETURNING id`

	rows, err := executor.QueryContext(ctx, query, models.PollClosed, models.PollOpen, now)
	if err != nil {
		return nil, fmt.Errorf("failed to close expired polls: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresPollRepository) AddVote(ctx context.Context, vote *models.PollVote) error {
	query := `
		INSERT INTO poll_votes (poll_id, user_id, option_index)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, vote.PollID, vote.UserID, vote.OptionIndex).Scan(&vote.CreatedAt)
	return r.handlePollError(err)
}

func (r *postgresPollRepository) CountVotes(ctx context.Context, pollID string) (map[int]int, error) {
	query := `SELECT option_index, COUNT(*) FROM poll_votes WHERE poll_id = $1 GROUP BY option_index`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var option, count int
		if scanErr := rows.Scan(&option, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[option] = count
	}
	return counts, rows.Err()
}

func (r *postgresPollRepository) handlePollError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrPollVoteConflict
		case "23503":
			return ErrPollInvalidParent
		}
	}
	return err
}
