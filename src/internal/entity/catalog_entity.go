package entity

type ProductType string

const (
	ProductAirtime     ProductType = "airtime"
	ProductData        ProductType = "data"
	ProductElectricity ProductType = "electricity"
	ProductTV          ProductType = "tv"
	ProductWalletFund  ProductType = "wallet-fund"
)

// Product is one purchasable plan or package from a provider catalog.
// SellPrice is derived from BaseCost by the pricing engine and recomputed
// whenever the catalog or markup policy changes; it is never persisted.
type Product struct {
	Code        string  `json:"code"`
	DisplayName string  `json:"displayName"`
	BaseCost    float64 `json:"baseCost"`
	SellPrice   float64 `json:"sellPrice"`
}

// Provider is a network, disco or TV operator with its plan list.
type Provider struct {
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
