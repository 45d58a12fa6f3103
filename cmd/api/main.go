package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GanehsaConsulting/cms-admin-api/internal/cache"
	"github.com/GanehsaConsulting/cms-admin-api/internal/config"
	"github.com/GanehsaConsulting/cms-admin-api/internal/email"
	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	activityhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/activity"
	articlehandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/article"
	authhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/auth"
	cataloghandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/catalog"
	clienthandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/client"
	mediahandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/media"
	packagehandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/packages"
	projecthandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/project"
	userhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/user"
	"github.com/GanehsaConsulting/cms-admin-api/internal/middleware"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository/postgres"
	"github.com/GanehsaConsulting/cms-admin-api/internal/router"
	activitysvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/activity"
	articlesvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/article"
	authsvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/auth"
	catalogsvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/catalog"
	clientsvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/client"
	mediasvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/media"
	packagesvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/packages"
	projectsvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/project"
	usersvc "github.com/GanehsaConsulting/cms-admin-api/internal/service/user"
	pkgauth "github.com/GanehsaConsulting/cms-admin-api/pkg/auth"
	"github.com/GanehsaConsulting/cms-admin-api/pkg/retry"
	"github.com/GanehsaConsulting/cms-admin-api/pkg/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	handler.RegisterValidations()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	// Redis is optional; without it single-package reads skip caching.
	pkgCache := cache.Noop()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, caching disabled")
		} else {
			pkgCache = cache.NewRedisPackageCache(redisClient, cfg.Redis.CacheTTL)
		}
	}

	store := storage.Disabled()
	if cfg.Storage.Endpoint != "" {
		store, err = storage.NewMinIOStore(ctx, storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to object storage")
		}
	} else {
		log.Warn().Msg("object storage not configured, media uploads disabled")
	}

	var mailer email.Service
	if cfg.SMTP.Host != "" {
		mailer = email.NewService(cfg.SMTP, retry.DefaultPolicy())
	}

	base := postgres.NewBaseRepository(db)
	serviceRepo := postgres.NewServiceRepository(base)
	packageRepo := postgres.NewPackageRepository(base, postgres.PackageTxConfig{
		BatchSize: cfg.Packages.ReconcileBatchSize,
		TxTimeout: cfg.Packages.TxTimeout,
	})
	clientRepo := postgres.NewClientRepository(base)
	projectRepo := postgres.NewProjectRepository(base)
	articleRepo := postgres.NewArticleRepository(base)
	activityRepo := postgres.NewActivityRepository(base)
	mediaRepo := postgres.NewMediaRepository(base)
	userRepo := postgres.NewUserRepository(base)

	jwtService := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	handlers := router.Handlers{
		Health: handler.NewHealthHandler(db),
		Auth:   authhandler.NewHandler(authsvc.NewService(userRepo, jwtService)),
		Service: cataloghandler.NewHandler(
			catalogsvc.NewService(serviceRepo),
		),
		Package: packagehandler.NewHandler(
			packagesvc.NewService(packageRepo, pkgCache, packagesvc.Limits{
				MaxFeatures:     cfg.Packages.MaxFeatures,
				MaxRequirements: cfg.Packages.MaxRequirements,
			}),
		),
		Client:   clienthandler.NewHandler(clientsvc.NewService(clientRepo)),
		Project:  projecthandler.NewHandler(projectsvc.NewService(projectRepo)),
		Article:  articlehandler.NewHandler(articlesvc.NewService(articleRepo)),
		Activity: activityhandler.NewHandler(activitysvc.NewService(activityRepo)),
		Media:    mediahandler.NewHandler(mediasvc.NewService(mediaRepo, store)),
		User:     userhandler.NewHandler(usersvc.NewService(userRepo, mailer)),
	}

	r := router.New(router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, middleware.NewAuthMiddleware(jwtService), handlers)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
