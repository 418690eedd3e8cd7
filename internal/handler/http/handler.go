package http

import (
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
