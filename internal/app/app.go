package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/hanabarena/hanab-arena/external/hanablive"
	"github.com/hanabarena/hanab-arena/external/jobqueue"
	"github.com/hanabarena/hanab-arena/internal/config"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
	"github.com/hanabarena/hanab-arena/internal/infrastructure/account/arcsession"
	cacherepo "github.com/hanabarena/hanab-arena/internal/infrastructure/repository/cache"
	"github.com/hanabarena/hanab-arena/internal/infrastructure/repository/postgres"
	"github.com/hanabarena/hanab-arena/internal/interfaces/httpapi"
	"github.com/hanabarena/hanab-arena/internal/platform/cache"
	idgen "github.com/hanabarena/hanab-arena/internal/platform/id"
	"github.com/hanabarena/hanab-arena/internal/usecase"
)

// App bundles the built HTTP server with the resources it owns.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
}

// Build wires the full service: database, repositories, upstream clients,
// use cases and the HTTP router.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	generator := idgen.NewRandomGenerator()
	eligibilityRepo := postgres.NewEligibilityRepository(db, generator)
	eventRepo := postgres.NewEventRepository(db)
	resultRepo := postgres.NewGameResultRepository(db)

	var teamRepo team.Repository = postgres.NewTeamRepository(db)
	var templateRepo template.Repository = postgres.NewTemplateRepository(db)
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		templateRepo = cacherepo.NewTemplateRepository(templateRepo, store)
	}

	matchClient := hanablive.NewClient(hanablive.ClientConfig{
		BaseURL:        cfg.HanabLiveBaseURL,
		Timeout:        cfg.HanabLiveTimeout,
		ExportCacheTTL: cfg.HanabLiveExportCacheTTL,
		CircuitBreaker: cfg.HanabLiveCircuit,
	})

	replayValidator := usecase.NewReplayValidator(teamRepo, templateRepo, matchClient, logger)
	teamService := usecase.NewTeamService(teamRepo, templateRepo, resultRepo, eligibilityRepo, logger)
	eligibilityService := usecase.NewEligibilityService(eligibilityRepo, eventRepo)
	resultService := usecase.NewResultService(teamRepo, templateRepo, resultRepo, eligibilityRepo, replayValidator, generator, logger)

	var publisher usecase.ReauditJobPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger)
	}
	auditService := usecase.NewResultAuditService(resultRepo, replayValidator, publisher, logger)

	verifier := arcsession.NewClient(arcsession.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.ArcSessionTimeout},
		BaseURL:        cfg.ArcSessionBaseURL,
		IntrospectPath: cfg.ArcSessionIntrospectPath,
		AdminKey:       cfg.ArcSessionAdminKey,
		PrincipalTTL:   cfg.ArcSessionPrincipalTTL,
		CircuitBreaker: cfg.ArcSessionCircuit,
		Logger:         logger,
	})

	handler := httpapi.NewHandler(teamService, eligibilityService, resultService, auditService, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, DB: db}, nil
}

// Close releases resources owned by the app. The HTTP server is shut down by
// the caller, which controls the drain deadline.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
