package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Empire688682/chipsub-mobile/src/internal/config"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "CHIPSUB_MOBILE")
	viperConfig.SetDefault("backend.base_url", "http://localhost:8080/")
	viperConfig.SetDefault("backend.timeout", "15s")
	viperConfig.SetDefault("sync.interval_seconds", 180)
	viperConfig.SetDefault("profit.type", "percentage")
	viperConfig.SetDefault("profit.value", 3.5)
	viperConfig.SetDefault("security.forbidden_pin", "1234")
	viperConfig.SetDefault("storage.driver", "file")
	viperConfig.SetDefault("storage.secret", "chipsub-device-secret")
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	backendClient := config.NewBackendClient(viperConfig, logger)
	store := config.NewStorage(viperConfig, logger)
	validate := config.NewValidator(viperConfig)

	core := config.Bootstrap(&config.BootstrapConfig{
		Log:      logger,
		Validate: validate,
		Config:   viperConfig,
		Backend:  backendClient,
		Store:    store,
	})

	ctx := context.Background()
	if session := core.Session.Restore(ctx); session != nil {
		logger.Info("main", fmt.Sprintf("restored session for %s", session.DisplayName), "restore", session.UserID)
	} else {
		logger.Info("main", "no persisted session, waiting for login", "restore", "")
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		<-quit
		logger.Info("main", "Core chipsub-mobile is shutting down...", "gracefull", "")
		core.Sync.Stop()
		close(done)
	}()

	<-done
	logger.Info("main", fmt.Sprintf("Core %s stopped", viperConfig.GetString("app.name")), "gracefull", "")
}
