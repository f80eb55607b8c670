package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

const (
	loginPath          = "api/auth/login"
	registerPath       = "api/auth/register"
	forgottenPwdPath   = "api/auth/forgottenPwd"
	realTimeDataPath   = "api/real-time-data"
	catalogPath        = "api/data-plans"
	verifyMeterPath    = "api/verify-meter-number"
	verifyTVPath       = "api/verify-uic-tv-number"
	fundWalletPath     = "api/fund-wallet"
	providerPathPrefix = "api/provider/"
)

// submissionPaths maps each product type to its provider endpoint.
var submissionPaths = map[entity.ProductType]string{
	entity.ProductData:        providerPathPrefix + "data-provider",
	entity.ProductAirtime:     providerPathPrefix + "airtime-provider",
	entity.ProductElectricity: providerPathPrefix + "electric-provider",
	entity.ProductTV:          providerPathPrefix + "tv-provider",
	entity.ProductWalletFund:  fundWalletPath,
}

// HTTPClient talks to the backend over the fiber agent.
type HTTPClient struct {
	BaseURL string
	Timeout time.Duration
	Log     log.Log

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger log.Log) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{BaseURL: baseURL, Timeout: timeout, Log: logger}
}

func (c *HTTPClient) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) authToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) decorate(a *fiber.Agent) {
	a.Timeout(c.Timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token := c.authToken(); token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
}

// Network calls are never cancelled mid-flight; the context gates entry
// into the call only.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out interface{}, op string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a := fiber.Post(c.BaseURL + path)
	c.decorate(a)
	if body != nil {
		a.JSON(body)
	}
	code, _, errList := a.Struct(out)
	if len(errList) > 0 {
		c.Log.Error("backend-"+op, errList[0].Error(), "postJSON", path)
		return code, &errs.NetworkFailure{Op: op, Err: errList[0]}
	}
	return code, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out interface{}, op string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a := fiber.Get(c.BaseURL + path)
	c.decorate(a)
	code, _, errList := a.Struct(out)
	if len(errList) > 0 {
		c.Log.Error("backend-"+op, errList[0].Error(), "getJSON", path)
		return code, &errs.NetworkFailure{Op: op, Err: errList[0]}
	}
	return code, nil
}

func (c *HTTPClient) Authenticate(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if _, err := c.postJSON(ctx, loginPath, request, &resp, "authenticate"); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" || resp.FinalUserData == nil {
		return nil, &errs.AuthenticationFailed{Message: resp.Message}
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, request *model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if _, err := c.postJSON(ctx, registerPath, request, &resp, "register"); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" || resp.FinalUserData == nil {
		return nil, &errs.AuthenticationFailed{Message: resp.Message}
	}
	return &resp, nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	var resp model.AckResponse
	if _, err := c.postJSON(ctx, forgottenPwdPath, &model.PasswordResetRequest{Email: email}, &resp, "password-reset"); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("password reset rejected: %s", resp.Message)
	}
	return nil
}

func (c *HTTPClient) FetchWalletSnapshot(ctx context.Context, userID string) (*model.RealTimeData, error) {
	var resp model.RealTimeDataResponse
	path := realTimeDataPath + "?mobileUserId=" + url.QueryEscape(userID)
	if _, err := c.getJSON(ctx, path, &resp, "fetch-wallet"); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &errs.NetworkFailure{Op: "fetch-wallet", Err: fmt.Errorf("backend rejected: %s", resp.Message)}
	}
	return &resp.Data, nil
}

func (c *HTTPClient) FetchCatalog(ctx context.Context) (*model.CatalogResponse, error) {
	var resp model.CatalogResponse
	if _, err := c.getJSON(ctx, catalogPath, &resp, "fetch-catalog"); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &errs.NetworkFailure{Op: "fetch-catalog", Err: fmt.Errorf("backend rejected catalog fetch")}
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyIdentifier(ctx context.Context, request *model.VerifyIdentifierRequest) (string, error) {
	path := verifyMeterPath
	body := map[string]string{"meterNumber": request.Identifier, "disco": request.ProviderCode}
	if request.ProductType == entity.ProductTV {
		path = verifyTVPath
		body = map[string]string{"smartcardNumber": request.Identifier, "provider": request.ProviderCode}
	}

	var resp model.VerifyIdentifierResponse
	if _, err := c.postJSON(ctx, path, body, &resp, "verify-identifier"); err != nil {
		return "", err
	}
	if !resp.Success || resp.CustomerName == "" {
		return "", &errs.VerificationFailed{Identifier: request.Identifier, Provider: request.ProviderCode}
	}
	return resp.CustomerName, nil
}

func (c *HTTPClient) SubmitPurchase(ctx context.Context, request *model.SubmitPurchaseRequest) (*model.SubmitResponse, error) {
	path, ok := submissionPaths[request.ProductType]
	if !ok {
		return nil, fmt.Errorf("no submission endpoint for product %q", request.ProductType)
	}
	var resp model.SubmitResponse
	if _, err := c.postJSON(ctx, path, request, &resp, "submit-purchase"); err != nil {
		return nil, err
	}
	return &resp, nil
}
