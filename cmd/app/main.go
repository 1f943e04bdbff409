package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/tourtrek/api"
	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/auth"
	"github.com/Domenick1991/tourtrek/internal/bootstrap"
	"github.com/Domenick1991/tourtrek/internal/cache"
	"github.com/Domenick1991/tourtrek/internal/kafka"
	"github.com/Domenick1991/tourtrek/internal/logger"
	"github.com/Domenick1991/tourtrek/internal/service/booking"
	"github.com/Domenick1991/tourtrek/internal/service/packages"
	"github.com/Domenick1991/tourtrek/internal/service/users"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	store, err := bootstrap.OpenStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	var (
		packageOpts []packages.PackageServiceOption
		bookingOpts []booking.BookingServiceOption
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		packageOpts = append(packageOpts, packages.WithCache(redisCache))
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	issuer := auth.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	router := api.NewRouter(cfg.HTTP, log, api.Services{
		Issuer:   issuer,
		Verifier: issuer,
		Users:    users.NewUserService(store.Users),
		Packages: packages.NewPackageService(store.Packages, packageOpts...),
		Bookings: booking.NewBookingService(store.Bookings, store.Packages, bookingOpts...),
	})

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("server stopped")
}
