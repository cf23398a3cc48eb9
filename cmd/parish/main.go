package main

import (
	"context"

	"sagradago/internal/parish/handler"
	"sagradago/internal/parish/repository"
	"sagradago/internal/parish/service"
	"sagradago/pkg/app"
	"sagradago/pkg/client"
	"sagradago/pkg/config"
	"sagradago/pkg/kafka"
	kafka_config "sagradago/pkg/kafka/config"
	kafka_middleware "sagradago/pkg/kafka/middleware"
)

const ServiceName = "parish"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Parish service")

	mongoClient := client.NewMongoClient(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer mongoClient.Disconnect(context.Background())

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	parishService := initServices(cfg, mongoClient, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(mongoClient.Client, handler.NewParishHandler(parishService, cfg.Log))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka publishing disabled")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	return producer
}

func initServices(cfg *config.Config, mongoClient *client.MongoClient, producer *kafka.Producer) service.ParishService {
	parishRepo := repository.NewMongoParishRepository(cfg, mongoClient.Client)

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	parishService := service.NewParishService(parishRepo, publisher, cfg)

	cfg.Log.Info("Parish service initialized", "database", cfg.MongoDatabaseName)
	return parishService
}
