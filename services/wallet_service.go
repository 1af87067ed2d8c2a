package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/Daniyar05/esports-tournament-system/repositories"
)

// WalletService ведёт UC-бухгалтерию: каждое движение баланса — строка
// в журнале транзакций.
type WalletService interface {
	Balance(ctx context.Context, userID string) (*models.Wallet, error)
	Deposit(ctx context.Context, userID string, amount int) (*models.Transaction, error)
	ChargeEntryFee(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, tournamentID string) error
	AwardPrize(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, reference string) error
	Refund(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, reference string) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

type walletService struct {
	walletRepo repositories.WalletRepository
}

func NewWalletService(walletRepo repositories.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) Balance(ctx context.Context, userID string) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet, nil
}

func (s *walletService) Deposit(ctx context.Context, userID string, amount int) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrDepositNotPositive
	}
	if _, err := s.walletRepo.GetOrCreate(ctx, nil, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet: %w", err)
	}
	tx := &models.Transaction{
		UserID: userID,
		Amount: amount,
		Kind:   models.TransactionDeposit,
	}
	if err := s.walletRepo.ApplyTransaction(ctx, nil, tx); err != nil {
		return nil, s.mapWalletError(err)
	}
	return tx, nil
}

func (s *walletService) ChargeEntryFee(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, tournamentID string) error {
	if amount <= 0 {
		// Бесплатный турнир — движения по кошельку нет.
		return nil
	}
	if _, err := s.walletRepo.GetOrCreate(ctx, exec, userID); err != nil {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}
	tx := &models.Transaction{
		UserID:    userID,
		Amount:    -amount,
		Kind:      models.TransactionEntryFee,
		Reference: tournamentID,
	}
	return s.mapWalletError(s.walletRepo.ApplyTransaction(ctx, exec, tx))
}

func (s *walletService) AwardPrize(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, reference string) error {
	if amount <= 0 {
		return nil
	}
	if _, err := s.walletRepo.GetOrCreate(ctx, exec, userID); err != nil {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}
	tx := &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      models.TransactionPrize,
		Reference: reference,
	}
	return s.mapWalletError(s.walletRepo.ApplyTransaction(ctx, exec, tx))
}

func (s *walletService) Refund(ctx context.Context, exec repositories.SQLExecutor, userID string, amount int, reference string) error {
	if amount <= 0 {
		return nil
	}
	if _, err := s.walletRepo.GetOrCreate(ctx, exec, userID); err != nil {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}
	tx := &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      models.TransactionRefund,
		Reference: reference,
	}
	return s.mapWalletError(s.walletRepo.ApplyTransaction(ctx, exec, tx))
}

func (s *walletService) ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return s.walletRepo.ListTransactions(ctx, userID, limit)
}

func (s *walletService) mapWalletError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrWalletInsufficientFunds) {
		return ErrInsufficientFunds
	}
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return ErrUserNotFound
	}
	return err
}
