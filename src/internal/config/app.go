package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/internal/pricing"
	"github.com/Empire688682/chipsub-mobile/src/internal/repository"
	"github.com/Empire688682/chipsub-mobile/src/internal/usecase"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
	"github.com/Empire688682/chipsub-mobile/src/pkg/storage"
)

type BootstrapConfig struct {
	Log      log.Log
	Validate *validator.Validate
	Config   *viper.Viper
	Backend  backend.Client
	Store    storage.Store
}

// Core bundles the stores and engines the UI collaborators observe:
// session, wallet snapshot, catalog and the purchase engine.
type Core struct {
	Session  *usecase.SessionUseCase
	Sync     *usecase.SyncUseCase
	Catalog  *usecase.CatalogUseCase
	Purchase *usecase.PurchaseUseCase
}

func Bootstrap(config *BootstrapConfig) *Core {
	// setup repositories
	sessionRepository := repository.NewSessionRepository(
		config.Store,
		[]byte(config.Config.GetString("storage.secret")),
	)

	// setup use cases
	syncUseCase := usecase.NewSyncUseCase(
		config.Log,
		config.Backend,
		time.Duration(config.Config.GetInt("sync.interval_seconds"))*time.Second,
	)
	catalogUseCase := usecase.NewCatalogUseCase(
		config.Log,
		config.Backend,
		pricing.Policy{
			Kind:  pricing.PolicyKind(config.Config.GetString("profit.type")),
			Value: config.Config.GetFloat64("profit.value"),
		},
	)
	sessionUseCase := usecase.NewSessionUseCase(
		config.Log,
		config.Validate,
		config.Backend,
		sessionRepository,
		syncUseCase,
		catalogUseCase,
	)
	purchaseUseCase := usecase.NewPurchaseUseCase(
		config.Log,
		config.Validate,
		config.Backend,
		catalogUseCase,
		syncUseCase,
		sessionUseCase,
		config.Config.GetString("security.forbidden_pin"),
	)

	return &Core{
		Session:  sessionUseCase,
		Sync:     syncUseCase,
		Catalog:  catalogUseCase,
		Purchase: purchaseUseCase,
	}
}
