package main

import (
	"context"

	"sagradago/internal/bookings/handler"
	"sagradago/internal/bookings/leadtime"
	"sagradago/internal/bookings/repository"
	"sagradago/internal/bookings/service"
	"sagradago/internal/bookings/validator"
	"sagradago/pkg/app"
	"sagradago/pkg/client"
	"sagradago/pkg/config"
	"sagradago/pkg/kafka"
	kafka_config "sagradago/pkg/kafka/config"
	kafka_middleware "sagradago/pkg/kafka/middleware"
	"sagradago/pkg/sealer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Bookings service")

	mongoClient := client.NewMongoClient(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer mongoClient.Disconnect(context.Background())

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	bookingService := initServices(cfg, mongoClient, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(mongoClient.Client, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

// initProducer returns nil when Kafka is disabled; the service then
// skips event publishing entirely.
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

func initServices(cfg *config.Config, mongoClient *client.MongoClient, producer *kafka.Producer) service.BookingService {
	bookingRepo := repository.NewMongoBookingRepository(cfg, mongoClient.Client)
	documentRepo := repository.NewMongoDocumentRepository(cfg, mongoClient.Client)
	profileRepo := repository.NewMongoProfileRepository(cfg, mongoClient.Client)

	var tokenSealer *sealer.Sealer
	if cfg.TrackingTokenKey != "" {
		var err error
		tokenSealer, err = sealer.New(cfg.TrackingTokenKey)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize tracking token sealer", "error", err)
		}
	} else {
		cfg.Log.Warn("Tracking token key not set, bookings will be created without tracking tokens")
	}

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		documentRepo,
		leadtime.NewRule(nil),
		validator.New(),
		profileRepo,
		publisher,
		tokenSealer,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
