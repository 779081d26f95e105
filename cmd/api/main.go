package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "loan-engine/internal/adapter/http"
	idemp "loan-engine/internal/adapter/middleware"
	"loan-engine/internal/adapter/repository/mysql"
	"loan-engine/internal/config"
	"loan-engine/internal/infrastructure/cache"
	"loan-engine/internal/infrastructure/db"
	"loan-engine/internal/logger"
	loanuc "loan-engine/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	loans := mysql.NewLoanRepository(gdb)
	uc := loanuc.NewUsecase(mysql.NewGormUoW(gdb), loans, mysql.NewScheduledRepaymentRepository(gdb), log.WithField("component", "loan"))

	h := httpadp.NewHandler(
		httpadp.Check{Name: "mysql", Ping: sqlDB.PingContext},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	lh := httpadp.NewLoanHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		idemp.RequestLogger(log.WithField("component", "http")),
		middleware.Recover(),
	)

	// routes
	e.GET("/health", h.Health)
	e.GET("/loans/:loan_id", lh.GetLoan)

	once := idemp.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log.WithField("component", "idempotency"))
	e.POST("/loans", lh.CreateLoan, once)
	e.POST("/loans/:loan_id/repayments", lh.RepayLoan, once)

	addr := ":" + cfg.AppPort
	go func() {
		log.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
