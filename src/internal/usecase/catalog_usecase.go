package usecase

import (
	"context"
	"sync"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/internal/model/converter"
	"github.com/Empire688682/chipsub-mobile/src/internal/pricing"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

// CatalogUseCase owns the provider catalog and the markup policy. Sell
// prices are derived from base costs on every load and policy change,
// never persisted.
type CatalogUseCase struct {
	Log     log.Log
	Backend backend.Client

	mu        sync.RWMutex
	policy    pricing.Policy
	providers []entity.Provider
	loaded    bool
}

func NewCatalogUseCase(logger log.Log, client backend.Client, policy pricing.Policy) *CatalogUseCase {
	return &CatalogUseCase{
		Log:     logger,
		Backend: client,
		policy:  policy,
	}
}

// Load fetches the provider catalog and derives every sell price.
func (c *CatalogUseCase) Load(ctx context.Context) error {
	resp, err := c.Backend.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	providers := converter.CatalogToProviders(resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = c.reprice(providers)
	c.loaded = true
	return nil
}

// reprice recomputes sell prices from base costs. Rows the pricing engine
// rejects are dropped rather than sold at cost. Caller holds the lock.
func (c *CatalogUseCase) reprice(providers []entity.Provider) []entity.Provider {
	out := make([]entity.Provider, 0, len(providers))
	for _, provider := range providers {
		priced := provider
		priced.Products = nil
		for _, product := range provider.Products {
			sell, err := pricing.ResolveSellPrice(product.BaseCost, c.policy)
			if err != nil {
				c.Log.Error("catalog-price", err.Error(), "reprice", provider.Code+":"+product.Code)
				continue
			}
			product.SellPrice = sell
			priced.Products = append(priced.Products, product)
		}
		out = append(out, priced)
	}
	return out
}

// SetPolicy replaces the markup policy and recomputes every sell price.
func (c *CatalogUseCase) SetPolicy(policy pricing.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy = policy
	c.providers = c.reprice(c.providers)
}

func (c *CatalogUseCase) Policy() pricing.Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

func (c *CatalogUseCase) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *CatalogUseCase) Providers() []entity.Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Plan looks up one product by provider and plan code.
func (c *CatalogUseCase) Plan(providerCode, planCode string) (*entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, provider := range c.providers {
		if provider.Code != providerCode {
			continue
		}
		for _, product := range provider.Products {
			if product.Code == planCode {
				found := product
				return &found, true
			}
		}
	}
	return nil, false
}
