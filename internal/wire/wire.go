package wire

import (
	"fmt"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/store"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"
)

// App holds the wired dependencies.
type App struct {
	Service *usecase.Service
	Store   *store.Store
	Client  *api.Client
	Metrics *metrics.Metrics
}

// Wiring initializes the state store, API client and workflow services.
func Wiring(config *utils.Config, logger *zap.Logger) (*App, error) {
	st, err := store.Open(config.Client.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	m := metrics.NewMetrics()
	client := api.NewClient(config.API.BaseURL, config.API.Timeout, st, m, logger)
	service := usecase.NewService(client, st, m, config, logger)

	return &App{
		Service: service,
		Store:   st,
		Client:  client,
		Metrics: m,
	}, nil
}
