package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tuananh-dev/qltb-api/internal/application/ledger"
	appproposal "github.com/tuananh-dev/qltb-api/internal/application/proposal"
	"github.com/tuananh-dev/qltb-api/internal/infrastructure/postgres"
	httpRouter "github.com/tuananh-dev/qltb-api/internal/interfaces/http"
	"github.com/tuananh-dev/qltb-api/pkg/config"
	"github.com/tuananh-dev/qltb-api/pkg/logger"
)

// runMigrations chạy goose migration trước khi mở pool.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("đọc cấu hình: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("khởi động dịch vụ")

	if err := runMigrations(cfg.DB.DSN()); err != nil {
		log.Fatal().Err(err).Msg("chạy migration")
	}
	log.Info().Msg("migration hoàn tất")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("kết nối PostgreSQL")
	}
	defer pool.Close()

	proposalRepo := postgres.NewProposalRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	proposalUC := appproposal.NewUseCase(txRunner, proposalRepo)
	ledgerUC := ledger.NewUseCase(txRunner, movementRepo)

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
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProposalUC: proposalUC,
		LedgerUC:   ledgerUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP dừng")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("server HTTP đã chạy")

	<-ctx.Done()
	log.Info().Msg("nhận tín hiệu dừng, đang tắt")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("tắt server HTTP")
	}
	os.Exit(0)
}
