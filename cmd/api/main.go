package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fittrack-api/internal/core/auth"
	"fittrack-api/internal/core/cache"
	"fittrack-api/internal/core/config"
	"fittrack-api/internal/core/database"
	"fittrack-api/internal/core/logger"
	"fittrack-api/internal/core/server"
	"fittrack-api/internal/domain"
	"fittrack-api/internal/repo"
	"fittrack-api/internal/repo/memory"
	"fittrack-api/internal/service"
	"fittrack-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 存储（memory 驱动免外部依赖，自带演示数据）
	stores := mustOpenStores(cfg, log)

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// redis 缓存可选
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 服务装配
	eventSvc := service.NewEventService(stores.Events, c, log)
	workoutSvc := service.NewWorkoutService(stores.Workouts, stores.Registrations, log)
	userSvc := service.NewUserService(stores.Users, workoutSvc, jwter, log)
	regSvc := service.NewRegistrationService(stores.Registrations, eventSvc, log)

	// 路由（用户端）
	r := router.NewAPIEngine(log, router.Deps{
		Users:         userSvc,
		Events:        eventSvc,
		Registrations: regSvc,
		Workouts:      workoutSvc,
		JWTer:         jwter,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()
	log.Info("user api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
			cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenStores(cfg *config.Config, l *zap.Logger) repo.Stores {
	if cfg.DB.Driver == "memory" {
		s := memory.NewStores()
		if err := repo.Seed(context.Background(), s); err != nil {
			l.Fatal("seed memory stores", zap.Error(err))
		}
		l.Info("memory stores ready (demo data seeded)")
		return s
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Event{}, &domain.Registration{},
			&domain.Workout{}, &domain.Exercise{},
		); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}

	s := repo.NewGormStores(db)
	if cfg.DB.Seed {
		if err := repo.Seed(context.Background(), s); err != nil {
			l.Fatal("seed failed", zap.Error(err))
		}
		l.Info("seed done")
	}
	return s
}
