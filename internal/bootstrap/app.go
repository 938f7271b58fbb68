package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/applicants"
	"screener-backend/internal/historical"
	"screener-backend/internal/llm"
	openai "screener-backend/internal/llm/openai"
	"screener-backend/internal/ranking"
	"screener-backend/internal/screening"
	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/server"
	"screener-backend/internal/shared/storage/db"
	"screener-backend/internal/shared/storage/object"
	localstore "screener-backend/internal/shared/storage/object/local"
	s3store "screener-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	ApplicantsRepo    applicants.Repo
	HistoricalRepo    historical.Repo
	Screener          *screening.Screener
	ApplicantsService *applicants.Service
	ApplicantsHandler *applicants.Handler
	RankingHandler    *ranking.Handler
	HistoricalHandler *historical.Handler
}

// Overrides lets tests swap dependencies before the services are wired.
type Overrides struct {
	LLM llm.Client
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith is Build with test overrides applied.
func BuildWith(cfg config.Config, overrides Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app, overrides); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Handlers: []server.RouteRegistrar{
			app.ApplicantsHandler,
			app.RankingHandler,
			app.HistoricalHandler,
		},
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App, overrides Overrides) error {
	if app.DB != nil {
		app.ApplicantsRepo = &applicants.PGRepo{DB: app.DB}
		app.HistoricalRepo = &historical.PGRepo{DB: app.DB}
	} else {
		app.ApplicantsRepo = applicants.NewMemoryRepo()
		app.HistoricalRepo = historical.NewMemoryRepo()
	}

	llmClient := overrides.LLM
	if llmClient == nil {
		llmClient = llm.Client(llm.PlaceholderClient{})
		if app.Config.LLMProvider == "openai" {
			openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
			if err != nil {
				if !isDevLike(app.Config.Env) {
					return err
				}
				log.Printf("bootstrap: %v; screenings will use the fallback result", err)
			} else {
				llmClient = openaiClient
			}
		}
	}

	app.Screener = &screening.Screener{
		LLM:   llmClient,
		Model: app.Config.LLMModel,
	}
	app.ApplicantsService = &applicants.Service{
		Repo:           app.ApplicantsRepo,
		Store:          app.Store,
		Screener:       app.Screener,
		MaxUploadBytes: int64(app.Config.MaxUploadMB) << 20,
	}
	app.ApplicantsHandler = applicants.NewHandler(app.ApplicantsService)
	app.RankingHandler = ranking.NewHandler(app.ApplicantsRepo, app.Config.TopFraction)
	app.HistoricalHandler = historical.NewHandler(app.HistoricalRepo)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
