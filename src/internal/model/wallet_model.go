package model

import "time"

// RealTimeDataResponse is the wire shape of the wallet/transactions poll.
type RealTimeDataResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    RealTimeData `json:"data"`
}

type RealTimeData struct {
	WalletBalance     float64           `json:"walletBalance"`
	CommissionBalance float64           `json:"commissionBalance"`
	Transactions      []TransactionData `json:"transactions"`
}

type TransactionData struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CatalogResponse mirrors the provider catalog payload: providers keyed by
// name, each wrapping one product group.
type CatalogResponse struct {
	Success       bool                      `json:"success"`
	MobileNetwork map[string][]ProductGroup `json:"MOBILE_NETWORK"`
}

type ProductGroup struct {
	Product []ProductData `json:"PRODUCT"`
}

type ProductData struct {
	ProductID     string `json:"PRODUCT_ID"`
	ProductName   string `json:"PRODUCT_NAME"`
	ProductAmount string `json:"PRODUCT_AMOUNT"`
}

// VerifyIdentifierResponse is shared by meter and smartcard verification.
type VerifyIdentifierResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	CustomerName string `json:"customerName"`
}
