package entity

import "time"

type TransactionType string

const (
	TransactionAirtime     TransactionType = "airtime"
	TransactionData        TransactionType = "data"
	TransactionElectricity TransactionType = "electricity"
	TransactionTV          TransactionType = "tv"
	TransactionWalletFund  TransactionType = "wallet-fund"
	TransactionOther       TransactionType = "other"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

type Transaction struct {
	ID          string            `json:"id"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// WalletSnapshot is the locally held copy of the remote wallet state.
// A snapshot is immutable once fetched; a new fetch replaces it wholesale.
type WalletSnapshot struct {
	Balance           float64       `json:"balance"`
	CommissionBalance float64       `json:"commissionBalance"`
	Transactions      []Transaction `json:"transactions"`
	FetchedAt         time.Time     `json:"fetchedAt"`
}
