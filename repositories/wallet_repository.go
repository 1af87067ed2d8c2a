package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/google/uuid"
)

var (
	ErrWalletNotFound          = errors.New("wallet not found")
	ErrWalletInsufficientFunds = errors.New("insufficient UC balance")
)

type WalletRepository interface {
	GetOrCreate(ctx context.Context, exec SQLExecutor, userID string) (*models.Wallet, error)
	ApplyTransaction(ctx context.Context, exec SQLExecutor, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

type postgresWalletRepository struct {
	db *sql.DB
}

func NewPostgresWalletRepository(db *sql.DB) WalletRepository {
	return &postgresWalletRepository{db: db}
}

func (r *postgresWalletRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresWalletRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, userID string) (*models.Wallet, error) {
	executor := r.getExecutor(exec)
	// Кошелёк заводится лениво при первом обращении.
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, balance, updated_at`

	var w models.Wallet
	err := executor.QueryRowContext(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create wallet for user %s: %w", userID, err)
	}
	return &w, nil
}

// ApplyTransaction атомарно меняет баланс и пишет строку в журнал.
// Отрицательный итоговый баланс отклоняется как ErrWalletInsufficientFunds.
func (r *postgresWalletRepository) ApplyTransaction(ctx context.Context, exec SQLExecutor, tx *models.Transaction) error {
	executor := r.getExecutor(exec)
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	updateQuery := `
		UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2 AND balance + $1 >= 0`
	result, err := executor.ExecContext(ctx, updateQuery, tx.Amount, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to apply wallet delta: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// Либо кошелька нет, либо не хватает средств — различаем.
		var exists bool
		if scanErr := executor.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1)`, tx.UserID).Scan(&exists); scanErr != nil {
			return scanErr
		}
		if !exists {
			return ErrWalletNotFound
		}
		return ErrWalletInsufficientFunds
	}

	insertQuery := `
		INSERT INTO transactions (id, user_id, amount, kind, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	if err := executor.QueryRowContext(ctx, insertQuery,
		tx.ID, tx.UserID, tx.Amount, tx.Kind, tx.Reference,
	).Scan(&tx.CreatedAt); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func (r *postgresWalletRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, kind, reference, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if scanErr := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Kind, &t.Reference, &t.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
