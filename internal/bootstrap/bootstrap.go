package bootstrap

import (
	"context"
	"fmt"

	"github.com/contractlens/legal-intel/internal/config"
	"github.com/contractlens/legal-intel/internal/core/classifier"
	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
	"github.com/contractlens/legal-intel/internal/core/queryrouter"
	"github.com/contractlens/legal-intel/internal/core/usecase"
	"github.com/contractlens/legal-intel/internal/infrastructure/extractor"
	"github.com/contractlens/legal-intel/internal/infrastructure/llm/ollama"
	"github.com/contractlens/legal-intel/internal/infrastructure/queue/nats"
	"github.com/contractlens/legal-intel/internal/infrastructure/report"
	"github.com/contractlens/legal-intel/internal/infrastructure/repository/postgres"
	"github.com/contractlens/legal-intel/internal/infrastructure/resilience"
	"github.com/contractlens/legal-intel/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue        *nats.Queue
	Repo         ports.DocumentRepository
	Ingestor     ports.DocumentIngestor
	QuerySvc     ports.DocumentQueryService
	Reader       ports.DocumentReader
	Dashboard    ports.DashboardService
	Reclassifier ports.DocumentReclassifier
	Renderer     *report.XLSXRenderer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSIngestedSubject, cfg.NATSReclassifySubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	tax, err := cfg.Taxonomy()
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	metadataClassifier, err := buildClassifier(cfg, tax)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, err
	}

	textExtractor := extractor.New()
	router := queryrouter.New(tax)

	ingestor := usecase.NewIngestUseCase(repo, storage, textExtractor, metadataClassifier, queue)
	querySvc := usecase.NewQueryUseCase(router, repo)
	dashboard := usecase.NewDashboardUseCase(repo)
	reclassifier := usecase.NewReclassifyUseCase(repo, metadataClassifier, queue)

	return &App{
		Config: cfg,

		Queue:        queue,
		Repo:         repo,
		Ingestor:     ingestor,
		QuerySvc:     querySvc,
		Reader:       repo,
		Dashboard:    dashboard,
		Reclassifier: reclassifier,
		Renderer:     report.NewXLSXRenderer(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// buildClassifier selects the metadata backend. The rule-based
// classifier cannot fail, so only the model-backed one gets the
// degrade-to-empty fallback wrapper.
func buildClassifier(cfg config.Config, tax *domain.Taxonomy) (ports.MetadataClassifier, error) {
	switch cfg.ClassifierBackend {
	case "rules", "":
		return classifier.NewRuleBased(tax), nil
	case "ollama":
		client := ollama.New(cfg.OllamaURL, cfg.OllamaModel)
		executor := resilience.NewExecutor(resilience.DefaultConfig())
		return classifier.WithFallback(ollama.NewClassifier(client, tax, executor)), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.ClassifierBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
