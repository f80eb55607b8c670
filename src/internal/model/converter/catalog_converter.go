package converter

import (
	"sort"
	"strconv"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
)

// CatalogToProviders flattens the provider-keyed wire catalog into entity
// providers. Sell prices are left zero; the catalog usecase derives them.
func CatalogToProviders(resp *model.CatalogResponse) []entity.Provider {
	providers := make([]entity.Provider, 0, len(resp.MobileNetwork))
	for name, groups := range resp.MobileNetwork {
		provider := entity.Provider{Code: name, Name: name}
		for _, group := range groups {
			for _, p := range group.Product {
				baseCost, err := strconv.ParseFloat(p.ProductAmount, 64)
				if err != nil {
					continue
				}
				provider.Products = append(provider.Products, entity.Product{
					Code:        p.ProductID,
					DisplayName: p.ProductName,
					BaseCost:    baseCost,
				})
			}
		}
		providers = append(providers, provider)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Code < providers[j].Code })
	return providers
}
