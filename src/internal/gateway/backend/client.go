// Package backend is the gateway to the remote bill-payment API. The core
// depends on this interface only; the wire contract lives in the HTTP
// implementation.
package backend

import (
	"context"

	"github.com/Empire688682/chipsub-mobile/src/internal/model"
)

type Client interface {
	// SetAuthToken installs (or clears, with "") the bearer token attached
	// to subsequent calls.
	SetAuthToken(token string)

	Authenticate(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error)
	Register(ctx context.Context, request *model.RegisterRequest) (*model.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error

	FetchWalletSnapshot(ctx context.Context, userID string) (*model.RealTimeData, error)
	FetchCatalog(ctx context.Context) (*model.CatalogResponse, error)

	// VerifyIdentifier resolves the customer name behind a meter or
	// smartcard number. A backend rejection returns errs.VerificationFailed.
	VerifyIdentifier(ctx context.Context, request *model.VerifyIdentifierRequest) (string, error)

	// SubmitPurchase issues exactly one purchase call carrying the
	// client-generated idempotency reference.
	SubmitPurchase(ctx context.Context, request *model.SubmitPurchaseRequest) (*model.SubmitResponse, error)
}
