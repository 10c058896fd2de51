package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"radar/pkg/config"
	"radar/pkg/logger"
	"radar/pkg/mq"
	"radar/services/gateway/handler"
	"radar/services/gateway/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger.InitLogger(logger.ServiceTypeGateway, cfg.Log.Level)

	if cfg.RabbitMQ.URL != "" {
		mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Panic("RabbitMQ 연결 실패: ", err)
		}
		defer mqClient.Close()

		if err := mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
			log.Panicf("Failed to declare exchange %s: %v", mq.ExchangeLog, err)
		}
		logger.AttachPublisher(mqClient)
	}

	gatewayHandler := handler.NewGatewayHandler(cfg.Gateway)
	e := transport.NewRouter(gatewayHandler, cfg.Gateway, logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Gateway Service Started on Port %d", cfg.Server.GatewayPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.GatewayPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Gateway Service stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	log.Println("👋 Gateway Service stopped")
}
