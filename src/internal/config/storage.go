package config

import (
	"github.com/spf13/viper"

	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
	"github.com/Empire688682/chipsub-mobile/src/pkg/storage"
)

// NewStorage picks the single-record store driver: a config-dir file by
// default, redis for hosted deployments.
func NewStorage(viper *viper.Viper, logger log.Log) storage.Store {
	switch viper.GetString("storage.driver") {
	case "redis":
		logger.Info("config", "using redis storage driver", "NewStorage", "")
		return storage.NewRedisStore(NewRedis(viper), viper.GetString("app.name"))
	default:
		return storage.NewFileStore(viper.GetString("storage.dir"))
	}
}
