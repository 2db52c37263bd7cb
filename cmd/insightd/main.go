// Command insightd serves the conversation insight extraction API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/insightd/internal/config"
	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/insight/spacyserver"
	"github.com/skillsenselab/insightd/internal/logger"
	"github.com/skillsenselab/insightd/internal/server"
	"github.com/skillsenselab/insightd/internal/server/endpoint"
	"github.com/skillsenselab/insightd/internal/service"
	"github.com/skillsenselab/insightd/internal/storage/s3"
	"github.com/skillsenselab/insightd/internal/transcription"
	"github.com/skillsenselab/insightd/internal/transcription/awstranscribe"
	"github.com/skillsenselab/insightd/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "insightd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := s3.NewStorage(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	transcriptionRegistry := transcription.NewRegistry()
	transcriptionRegistry.RegisterFactory(awstranscribe.ProviderName, awstranscribe.Factory())
	transcriber, err := transcriptionRegistry.Create(cfg.Transcription.Provider, cfg.Transcription.Map())
	if err != nil {
		return fmt.Errorf("init transcription provider: %w", err)
	}

	similarityRegistry := insight.NewSimilarityRegistry()
	similarityRegistry.RegisterFactory(spacyserver.ProviderName, spacyserver.Factory())
	similarity, err := similarityRegistry.Create(cfg.Insights.Similarity.Provider, cfg.Insights.Similarity.Map())
	if err != nil {
		return fmt.Errorf("init similarity provider: %w", err)
	}

	orchestrator := service.NewOrchestrator(transcriber, store, log)
	svc := service.NewInsightService(
		store,
		orchestrator,
		insight.NewExactExtractor(),
		insight.NewSemanticExtractor(similarity, cfg.Insights.SimilarityThreshold),
		log,
	)

	checker := func(ctx context.Context) []endpoint.ComponentHealth {
		return []endpoint.ComponentHealth{
			{Name: transcriber.Name(), Healthy: transcriber.IsAvailable(ctx)},
			{Name: similarity.Name(), Healthy: similarity.IsAvailable(ctx)},
		}
	}

	defaultStrategy, err := insight.ParseStrategy(cfg.Insights.DefaultStrategy)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, checker)
	srv.GinEngine().POST("/insights", endpoint.Insights(svc, defaultStrategy))

	log.Info("Starting service", map[string]interface{}{
		"version":     version.Short(),
		"environment": cfg.Environment,
		"addr":        srv.Addr(),
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return srv.Stop(context.Background())
}
