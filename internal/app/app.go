package app

import (
	"context"
	"fmt"
	"log/slog"

	"ArticleIngest/internal/aggregator"
	"ArticleIngest/internal/config"
	"ArticleIngest/internal/infrastructure/scheduler"
	"ArticleIngest/internal/infrastructure/transport"
	"ArticleIngest/internal/logging"
	"ArticleIngest/internal/normalizer"
	"ArticleIngest/internal/usecase"
	"ArticleIngest/internal/validator"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	poller *usecase.Poller
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := transport.NewClient(
		cfg.Transport.TimeoutDuration(),
		cfg.Transport.UserAgent,
		logging.Component(baseLogger, "transport"),
	)

	results := aggregator.New()

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Transport:  client,
		Normalizer: normalizer.New(),
		Validator:  validator.New(results, logging.Component(baseLogger, "validator")),
		BaseURL:    cfg.Source.BaseURL,
		Logger:     logging.Component(baseLogger, "pipeline"),
	})

	poller := usecase.NewPoller(usecase.PollerDeps{
		Transport:        client,
		Processor:        pipeline,
		Recorder:         results,
		Scheduler:        scheduler.NewIntervalScheduler(cfg.Poller.IntervalDuration()),
		BaseURL:          cfg.Source.BaseURL,
		SerializeBatches: cfg.Poller.SerializeBatches,
		Logger:           logging.Component(baseLogger, "poller"),
	})

	return &Application{cfg: cfg, poller: poller}
}

// Run performs the initial full catalog pass, then polls for new descriptors
// until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.poller.Bootstrap(ctx); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	if err := a.poller.Start(ctx); err != nil {
		return fmt.Errorf("start poller: %w", err)
	}

	<-ctx.Done()
	return a.poller.Stop(context.WithoutCancel(ctx))
}
