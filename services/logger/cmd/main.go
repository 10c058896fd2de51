package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"radar/pkg/config"
	"radar/pkg/db"
	"radar/pkg/logger"
	"radar/pkg/mq"
	"radar/services/logger/event"
	"radar/services/logger/repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger.InitLogger(logger.ServiceTypeLogger, cfg.Log.Level)

	mongoClient, err := db.ConnectMongo(cfg.Mongo)
	if err != nil {
		log.Panic("MongoDB 연결 실패: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	if cfg.RabbitMQ.URL == "" {
		log.Panic("RABBITMQ_URL is required for the logger service")
	}
	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Close()

	logRepo := repo.NewLogRepository(mongoClient, cfg.Mongo.Database)

	eventConsumer := event.NewConsumer(mqClient, logRepo)
	if err := eventConsumer.StartListening(); err != nil {
		log.Panicf("❌ Failed to start consumer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("🚀 Logger Service Started")
	<-ctx.Done()
	log.Println("👋 Logger Service stopped")
}
