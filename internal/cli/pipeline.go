package cli

import (
	"fmt"

	"pulse-server/internal/config"
	"pulse-server/internal/core/metrics"
	"pulse-server/internal/logger"
	"pulse-server/internal/storage/history"
	"pulse-server/internal/system"
)

// pipeline is the sampling half shared by every command.
type pipeline struct {
	cfg     *config.Config
	log     logger.Logger
	history *history.Store
	sampler *metrics.Sampler
}

func newPipeline(mode string) (*pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Mode = mode
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(cfg)
	hist := history.NewStore(cfg.HistoryCapacity)

	sampler := metrics.NewSampler(
		system.NewHostProvider(cfg.DiskMount),
		system.NewThermalProvider(cfg, log),
		metrics.NewRateCalculator(),
		hist,
		log,
		metrics.Options{
			TopProcesses:   cfg.TopProcesses,
			ProcessNameMax: cfg.ProcessNameMax,
		},
	)

	return &pipeline{
		cfg:     cfg,
		log:     log,
		history: hist,
		sampler: sampler,
	}, nil
}
