package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"radar/pkg/auth"
	"radar/pkg/config"
	"radar/pkg/db"
	"radar/pkg/logger"
	"radar/pkg/mq"
	"radar/pkg/redis"
	"radar/services/auth/handler"
	"radar/services/auth/repository"
	"radar/services/auth/service"
	"radar/services/auth/transport"
	user_event "radar/services/user/event"
	user_repository "radar/services/user/repository"
	user_service "radar/services/user/service"

	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger.InitLogger(logger.ServiceTypeAuth, cfg.Log.Level)

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Panic("DB 연결 실패: ", err)
	}

	var emitter user_service.EventEmitter = user_event.NoopEmitter{}
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Panic("RabbitMQ 연결 실패: ", err)
		}
		defer mqClient.Close()

		for _, exchange := range []string{mq.ExchangeUserEvents, mq.ExchangeLog} {
			if err := mqClient.DeclareExchange(exchange, mq.ExchangeTypeFanout); err != nil {
				log.Panicf("Failed to declare exchange %s: %v", exchange, err)
			}
		}
		logger.AttachPublisher(mqClient)
		emitter = user_event.NewEmitter(mqClient)
	}

	var revocations auth.RevocationStore = auth.NoopRevocationStore{}
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}
		defer redisClient.Close()
		revocations = redisClient
	} else {
		log.Println("⚠️ REDIS_HOST is not set, logout will not revoke tokens")
	}

	// 의존성 주입 (DI)
	userRepo := user_repository.NewUserRepository(dbConn) // Repository 생성
	if err := userRepo.InitDB(); err != nil {
		log.Panic("Failed to User DB Migration: ", err)
	}
	interestRepo := user_repository.NewInterestRepository(dbConn)
	userService := user_service.NewUserService(userRepo, interestRepo, emitter) // Service 생성

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authRepo := repository.NewAuthRepository(revocations)
	authService := service.NewAuthService(authRepo, userService, tokens)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(&db.SQLDatabase{DB: dbConn})

	e := echo.New()
	e.HideBanner = true

	transport.RegisterAuthRoutes(e, authHandler, healthHandler, tokens, authRepo, logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Auth Service Started on Port %d", cfg.Server.AuthPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.AuthPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Auth Service stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	log.Println("👋 Auth Service stopped")
}
