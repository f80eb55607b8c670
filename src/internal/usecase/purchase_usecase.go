package usecase

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

type IdentifierKind string

const (
	IdentifierNone      IdentifierKind = "none"
	IdentifierPhone     IdentifierKind = "phone"
	IdentifierMeter     IdentifierKind = "meter"
	IdentifierSmartcard IdentifierKind = "smartcard"
)

type PriceSource string

const (
	PriceCatalog     PriceSource = "catalog"
	PriceUserEntered PriceSource = "user"
)

// ProductDescriptor captures the per-product variations of the purchase
// workflow: what the target identifier looks like, whether it must be
// verified first, where the amount comes from and its floor.
type ProductDescriptor struct {
	Type                 entity.ProductType
	Identifier           IdentifierKind
	PriceSource          PriceSource
	MinimumAmount        float64
	RequiresVerification bool
	RequiresProvider     bool
}

var productDescriptors = map[entity.ProductType]ProductDescriptor{
	entity.ProductData: {
		Type:             entity.ProductData,
		Identifier:       IdentifierPhone,
		PriceSource:      PriceCatalog,
		RequiresProvider: true,
	},
	entity.ProductAirtime: {
		Type:             entity.ProductAirtime,
		Identifier:       IdentifierPhone,
		PriceSource:      PriceUserEntered,
		MinimumAmount:    50,
		RequiresProvider: true,
	},
	entity.ProductElectricity: {
		Type:                 entity.ProductElectricity,
		Identifier:           IdentifierMeter,
		PriceSource:          PriceUserEntered,
		MinimumAmount:        1000,
		RequiresVerification: true,
		RequiresProvider:     true,
	},
	entity.ProductTV: {
		Type:                 entity.ProductTV,
		Identifier:           IdentifierSmartcard,
		PriceSource:          PriceCatalog,
		RequiresVerification: true,
		RequiresProvider:     true,
	},
	entity.ProductWalletFund: {
		Type:          entity.ProductWalletFund,
		Identifier:    IdentifierNone,
		PriceSource:   PriceUserEntered,
		MinimumAmount: 100,
	},
}

// PurchaseUseCase is the engine behind every utility-purchase screen. It
// creates one workflow per attempt; the workflow drives the shared state
// sequence with this engine's collaborators.
type PurchaseUseCase struct {
	Log          log.Log
	Validate     *validator.Validate
	Backend      backend.Client
	Catalog      *CatalogUseCase
	Sync         *SyncUseCase
	Session      *SessionUseCase
	ForbiddenPin string
}

func NewPurchaseUseCase(
	logger log.Log,
	validate *validator.Validate,
	client backend.Client,
	catalogUseCase *CatalogUseCase,
	syncUseCase *SyncUseCase,
	sessionUseCase *SessionUseCase,
	forbiddenPin string,
) *PurchaseUseCase {
	if forbiddenPin == "" {
		forbiddenPin = "1234"
	}
	return &PurchaseUseCase{
		Log:          logger,
		Validate:     validate,
		Backend:      client,
		Catalog:      catalogUseCase,
		Sync:         syncUseCase,
		Session:      sessionUseCase,
		ForbiddenPin: forbiddenPin,
	}
}

// NewWorkflow starts a fresh purchase attempt with its own idempotency
// reference. References are never reused, even for retries of the same
// logical intent.
func (u *PurchaseUseCase) NewWorkflow(request *model.PurchaseRequest) (*PurchaseWorkflow, error) {
	desc, ok := productDescriptors[request.ProductType]
	if !ok {
		return nil, &errs.ValidationError{Field: "productType", Reason: "unknown product type"}
	}
	return &PurchaseWorkflow{
		engine:    u,
		desc:      desc,
		request:   request,
		state:     model.StateIdle,
		reference: uuid.NewString(),
	}, nil
}
