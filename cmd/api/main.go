package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/biztrack/biztrack-api/internal/application/auth"
	"github.com/biztrack/biztrack-api/internal/application/ledger"
	"github.com/biztrack/biztrack-api/internal/application/reminder"
	"github.com/biztrack/biztrack-api/internal/application/usecase"
	"github.com/biztrack/biztrack-api/internal/infrastructure/notify"
	"github.com/biztrack/biztrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/biztrack/biztrack-api/internal/interfaces/http"
	"github.com/biztrack/biztrack-api/pkg/config"
	"github.com/biztrack/biztrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("bootstrap del esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, batchRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	ledgerUC := ledger.NewUseCase(txRunner)
	businessUC := auth.NewBusinessUseCase(businessRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Recordatorio diario: corre en segundo plano hasta el apagado.
	reminderCtx, stopReminder := context.WithCancel(ctx)
	defer stopReminder()
	scheduler := reminder.NewScheduler(businessRepo, analyticsUC, notify.NewLogNotifier(log), log)
	go scheduler.Start(reminderCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		AnalyticsUC: analyticsUC,
		LedgerUC:    ledgerUC,
		BusinessUC:  businessUC,
		JWTSecret:   cfg.JWT.Secret,
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
	stopReminder()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
