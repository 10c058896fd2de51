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
	"radar/services/user/event"
	"radar/services/user/handler"
	"radar/services/user/repository"
	"radar/services/user/service"
	"radar/services/user/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger.InitLogger(logger.ServiceTypeUser, cfg.Log.Level)

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Panic("DB 연결 실패: ", err)
	}

	// 이벤트 발행 (RabbitMQ가 없으면 no-op)
	var emitter service.EventEmitter = event.NoopEmitter{}
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
		emitter = event.NewEmitter(mqClient)
	}

	// 토큰 폐기 저장소 (Redis가 없으면 비활성)
	var revocations auth.RevocationStore = auth.NoopRevocationStore{}
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}
		defer redisClient.Close()
		revocations = redisClient
	}

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn) // Repository 생성
	if err := userRepo.InitDB(); err != nil {
		log.Panic("Failed to User DB Migration: ", err)
	}
	interestRepo := repository.NewInterestRepository(dbConn)

	userService := service.NewUserService(userRepo, interestRepo, emitter) // Service 생성
	interestService := service.NewInterestService(interestRepo, emitter)

	handlers := transport.Handlers{
		User:     handler.NewUserHandler(userService),
		Interest: handler.NewInterestHandler(interestService),
		Health:   handler.NewHealthHandler(&db.SQLDatabase{DB: dbConn}),
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	router := transport.NewRouter(handlers, tokens, revocations, logger.Logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.UserPort),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 User Service Started on Port %d", cfg.Server.UserPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ User Service stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	log.Println("👋 User Service stopped")
}
