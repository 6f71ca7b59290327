package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/subslot/subslot-backend/api/routes"
	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/internal/ads"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/internal/categories"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/db"
	"github.com/subslot/subslot-backend/pkg/logger"
	"github.com/subslot/subslot-backend/pkg/mailer"
	"github.com/subslot/subslot-backend/pkg/metrics"
	"github.com/subslot/subslot-backend/pkg/migrate"
	"github.com/subslot/subslot-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := accounts.NewUserRepository(dbClient.DB())
	adminRepo := accounts.NewAdminRepository(dbClient.DB())
	adRepo := ads.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())

	seeder, err := categories.NewSeeder(categories.SeederParams{
		Categories:     categoryRepo,
		Users:          userRepo,
		Admins:         adminRepo,
		SeedConfig:     cfg.Seed,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}
	if err := seeder.Run(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed startup data", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Users:          userRepo,
		Admins:         adminRepo,
		Mailer:         mailer.NewSMTP(cfg.SMTP),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		OTPConfig:      cfg.OTP,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	directory, err := accounts.NewDirectory(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create account directory", err)
		os.Exit(1)
	}

	adsService, err := ads.NewService(ads.ServiceParams{
		Store:   adRepo,
		Posters: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ads service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.ServiceParams{
		Store:  categoryRepo,
		Cache:  redisClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Metrics:     httpMetrics,
			AuthService: authService,
			Directory:   directory,
			AdsService:  adsService,
			Categories:  categoryService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
