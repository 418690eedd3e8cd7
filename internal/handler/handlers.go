package handler

import (
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/handler/http"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, app config.App, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, app, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
