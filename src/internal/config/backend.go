package config

import (
	"github.com/spf13/viper"

	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

func NewBackendClient(viper *viper.Viper, logger log.Log) backend.Client {
	return backend.NewHTTPClient(
		viper.GetString("backend.base_url"),
		viper.GetDuration("backend.timeout"),
		logger,
	)
}
