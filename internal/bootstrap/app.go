package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/ats"
	"resume-ats/internal/documents"
	"resume-ats/internal/reports"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/server"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/storage/object"
	localstore "resume-ats/internal/shared/storage/object/local"
	s3store "resume-ats/internal/shared/storage/object/s3"
	"resume-ats/internal/shared/telemetry"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Dialect          db.Dialect
	Store            object.ObjectStore
	Analyzer         *ats.Analyzer
	DocumentsRepo    documents.Repo
	ReportsRepo      reports.Repo
	DocumentsService *documents.Service
	ReportsService   *reports.Service
	DocumentsHandler *documents.Handler
	ReportsHandler   *reports.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	analyzer, err := BuildAnalyzer(cfg.ThresholdsFile)
	if err != nil {
		return nil, err
	}

	sqlDB, dialect, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Dialect:  dialect,
		Store:    store,
		Analyzer: analyzer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		ReportHandler:   app.ReportsHandler,
		Ping:            app.ping,
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func (a *App) ping(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.PingContext(ctx)
}

// BuildAnalyzer returns the default analyzer, or one using the thresholds in
// path when path is set.
func BuildAnalyzer(path string) (*ats.Analyzer, error) {
	if strings.TrimSpace(path) == "" {
		return ats.Default(), nil
	}
	t, err := ats.LoadThresholds(path)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	a, err := ats.New(t)
	if err != nil {
		return nil, fmt.Errorf("thresholds %s: %w", path, err)
	}
	telemetry.Info("bootstrap.thresholds_loaded", map[string]any{"path": path})
	return a, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, db.Dialect, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, dialect, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, "", nil
		}
		return nil, "", err
	}

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, "", err
	}
	return sqlDB, dialect, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.SQLRepo{DB: app.DB, Dialect: app.Dialect}
		app.ReportsRepo = &reports.SQLRepo{DB: app.DB, Dialect: app.Dialect}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ReportsRepo = reports.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{
		Store:          app.Store,
		Repo:           app.DocumentsRepo,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	app.ReportsService = &reports.Service{
		Repo:      app.ReportsRepo,
		Documents: app.DocumentsService,
		Analyzer:  app.Analyzer,
	}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.ReportsHandler = reports.NewHandler(app.ReportsService)
}
