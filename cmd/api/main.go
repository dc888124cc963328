package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pollbuilder/docs"
	"pollbuilder/internal/config"
	"pollbuilder/internal/database"
	"pollbuilder/internal/database/migration"
	"pollbuilder/internal/fetch"
	handlers "pollbuilder/internal/http/handler"
	"pollbuilder/internal/http/middleware"
	"pollbuilder/internal/logging"
	"pollbuilder/internal/metrics"
	"pollbuilder/internal/model"
	"pollbuilder/internal/otel"
	"pollbuilder/internal/repository"
	"pollbuilder/internal/repository/objectstore"
	"pollbuilder/internal/repository/postgres"
	"pollbuilder/internal/service"
	"pollbuilder/internal/storage"
	"pollbuilder/internal/textract"
)

// @title						Poll Builder API
// @version					1.0
// @BasePath					/
// @securityDefinitions.apikey	AdminToken
// @in							header
// @name						Authorization
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.New(os.Stdout, loc, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Uploaded documents always live in the object store.
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	health := []handlers.Dependency{{Name: "object storage", Ping: objStore.Ping}}

	var (
		libRepo repository.LibraryRepository
		docRepo repository.DocumentRepository
		db      *sql.DB
	)
	if cfg.UsesPostgres() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		libRepo = postgres.NewSnapshotPostgres[model.Library](db, repository.LibrarySnapshot)
		docRepo = postgres.NewSnapshotPostgres[[]model.DocumentMetadata](db, repository.DocumentsSnapshot)
		health = append(health, handlers.Dependency{Name: "database", Ping: db.PingContext})
	} else {
		libRepo = objectstore.NewSnapshotObject[model.Library](objStore, repository.LibrarySnapshot)
		docRepo = objectstore.NewSnapshotObject[[]model.DocumentMetadata](objStore, repository.DocumentsSnapshot)
	}
	log.Info().Str("backend", cfg.Snapshot.Backend).Msg("snapshot_backend_configured")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics, err := metrics.NewPipeline(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register pipeline metrics")
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	maxBytes := int64(cfg.Processing.MaxDocumentMB) << 20
	libSvc := service.NewLibraryService(libRepo, service.LibraryOptions{
		MaxRetries: cfg.Snapshot.MaxRetries,
		SeedPath:   cfg.Snapshot.SeedPath,
		Logger:     log,
	})
	docSvc := service.NewDocumentService(service.DocumentDeps{
		Store:      objStore,
		Repo:       docRepo,
		Library:    libSvc,
		Fetcher:    fetch.New(objStore, fetch.NewHTTPClient(cfg.Processing.FetchTimeout), maxBytes),
		Extractor:  textract.New(),
		Metrics:    pipelineMetrics,
		Logger:     log,
		MaxRetries: cfg.Snapshot.MaxRetries,
		MaxBytes:   maxBytes,
	})
	tplSvc := service.NewTemplateService(libSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(maxBytes) + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Health:        health,
		Library:       libSvc,
		Documents:     docSvc,
		Templates:     tplSvc,
		Gatherer:      reg,
		AdminPassword: cfg.AdminPassword,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.Swagger(docs.SwaggerInfo))

	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is not set; admin routes will reject every request")
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting_down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", ":"+cfg.Port).Str("host", cfg.AppHost).Msg("server_starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
