package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/retail-inventory/internal/application/analytics"
	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	infrapdf "github.com/jhoicas/retail-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-inventory/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/retail-inventory/internal/infrastructure/redis"
	"github.com/jhoicas/retail-inventory/internal/infrastructure/scheduler"
	"github.com/jhoicas/retail-inventory/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/retail-inventory/internal/interfaces/http"
	"github.com/jhoicas/retail-inventory/pkg/config"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Importes y RSU viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	txRunner := postgres.NewTxRunner(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	itemRepo := postgres.NewBusinessItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	itemLocRepo := postgres.NewItemLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	searchRepo := postgres.NewSearchRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Artículos recientes: Redis si está configurado; si no, sin marca.
	var recent ports.RecentTracker = infraredis.NoopRecent{}
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; artículos recientes desactivados")
		} else {
			defer rdb.Close()
			recent = infraredis.NewRecentStore(rdb, cfg.Redis.RecentTTL)
		}
	}

	images, err := storage.NewDiskImageStore(cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("directorio de subidas")
	}

	searchUC := usecase.NewSearchUseCase(searchRepo, recent)
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, catalogRepo, categoryRepo, itemLocRepo)
	stocktakeUC := inventory.NewStocktakeUseCase(txRunner, recent)
	locationUC := usecase.NewLocationUseCase(txRunner, locationRepo, itemLocRepo, images)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, itemRepo)
	staffUC := usecase.NewStaffUseCase(userRepo)
	businessUC := usecase.NewBusinessUseCase(businessRepo)
	reportUC := reports.NewReportUseCase(reportRepo, snapshotRepo, businessRepo, infrapdf.NewMarotoReportRenderer())
	snapshotUC := reports.NewSnapshotUseCase(txRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, reportRepo)
	authUC := auth.NewAuthUseCase(txRunner, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var snapshots *scheduler.SnapshotScheduler
	if cfg.Snapshot.Enabled {
		snapshots, err = scheduler.NewSnapshotScheduler(cfg.Snapshot.Cron, snapshotUC, log)
		if err != nil {
			log.Fatal().Err(err).Msg("snapshot scheduler")
		}
		snapshots.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		BodyLimit:    cfg.Upload.MaxBytes + 1<<20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		StocktakeUC: stocktakeUC,
		SearchUC:    searchUC,
		LocationUC:  locationUC,
		CategoryUC:  categoryUC,
		StaffUC:     staffUC,
		BusinessUC:  businessUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.SessionCookie{
			Name:       cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			ExpMinutes: cfg.JWT.Expiration,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if snapshots != nil {
		snapshots.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
