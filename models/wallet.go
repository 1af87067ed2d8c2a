package models

import "time"

// TransactionKind — тип движения UC по кошельку.
type TransactionKind string

const (
	TransactionDeposit  TransactionKind = "deposit"
	TransactionEntryFee TransactionKind = "entry_fee"
	TransactionPrize    TransactionKind = "prize"
	TransactionRefund   TransactionKind = "refund"
)

type Wallet struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Balance   int       `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Transaction — запись в журнале UC. Amount отрицательный для списаний.
// Reference хранит id турнира или опроса, породившего движение.
type Transaction struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Amount    int             `json:"amount" db:"amount"`
	Kind      TransactionKind `json:"kind" db:"kind"`
	Reference string          `json:"reference,omitempty" db:"reference"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
