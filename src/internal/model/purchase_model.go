package model

import "github.com/Empire688682/chipsub-mobile/src/internal/entity"

// PurchaseRequest collects the raw input of one purchase attempt as the
// screens hand it over. Field-level rules that depend on the product type
// (identifier shape, minimum amount) live in the workflow descriptor.
type PurchaseRequest struct {
	ProductType      entity.ProductType `json:"productType" validate:"required"`
	ProviderCode     string             `json:"provider"`
	PlanCode         string             `json:"planId"`
	TargetIdentifier string             `json:"number"`
	MeterType        string             `json:"meterType"`
	Amount           float64            `json:"amount"`
	Pin              string             `json:"pin" validate:"required,len=4,numeric"`
}

// SubmitPurchaseRequest is the wire payload of the submission call.
type SubmitPurchaseRequest struct {
	MobileUserID string  `json:"mobileUserId"`
	Provider     string  `json:"network,omitempty"`
	PlanID       string  `json:"planId,omitempty"`
	Number       string  `json:"number,omitempty"`
	MeterType    string  `json:"meterType,omitempty"`
	Amount       float64 `json:"amount"`
	Pin          string  `json:"pin"`
	Reference    string  `json:"reference"`

	ProductType entity.ProductType `json:"-"`
}

// SubmitResponse is the wire shape of a submission result.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyIdentifierRequest carries the identifier and its provider to the
// verification endpoint for meter or smartcard products.
type VerifyIdentifierRequest struct {
	Identifier   string
	ProviderCode string
	ProductType  entity.ProductType
}
