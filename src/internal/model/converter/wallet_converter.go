package converter

import (
	"time"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
)

func RealTimeDataToSnapshot(data *model.RealTimeData, fetchedAt time.Time) entity.WalletSnapshot {
	snapshot := entity.WalletSnapshot{
		Balance:           data.WalletBalance,
		CommissionBalance: data.CommissionBalance,
		FetchedAt:         fetchedAt,
	}
	for _, tx := range data.Transactions {
		snapshot.Transactions = append(snapshot.Transactions, entity.Transaction{
			ID:          tx.ID,
			Type:        transactionType(tx.Type),
			Amount:      tx.Amount,
			Status:      transactionStatus(tx.Status),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return snapshot
}

func transactionType(raw string) entity.TransactionType {
	switch entity.TransactionType(raw) {
	case entity.TransactionAirtime, entity.TransactionData, entity.TransactionElectricity,
		entity.TransactionTV, entity.TransactionWalletFund:
		return entity.TransactionType(raw)
	default:
		return entity.TransactionOther
	}
}

func transactionStatus(raw string) entity.TransactionStatus {
	switch entity.TransactionStatus(raw) {
	case entity.StatusSuccess, entity.StatusFailed:
		return entity.TransactionStatus(raw)
	default:
		return entity.StatusPending
	}
}
