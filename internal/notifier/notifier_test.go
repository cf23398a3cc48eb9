package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"sagradago/pkg/kafka"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestHandleBookingCreated(t *testing.T) {
	n := New(testLogger())

	msg := kafka.NewMessage().
		WithKey("user-1").
		WithValue(model.Booking{
			ID:            "665f1c0a2f8b9a0012345678",
			UserID:        "user-1",
			Sacrament:     model.SacramentWedding,
			Date:          time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			Status:        model.StatusPending,
			TransactionID: "TRX-1700000000000-abcd1234",
		}).
		WithEventType(kafka.EventBookingCreated).
		Build()

	if err := n.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
}

func TestHandleUnknownEventTypeIsPermanent(t *testing.T) {
	n := New(testLogger())

	msg := kafka.NewMessage().
		WithKey("user-1").
		WithRawValue([]byte(`{}`)).
		WithEventType("donation.recorded").
		Build()

	err := n.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error for event type the notifier does not handle")
	}
	var kafkaErr *kafka.KafkaError
	if !errors.As(err, &kafkaErr) || !kafkaErr.IsPermanent() {
		t.Errorf("err = %v, want permanent so it is not retried", err)
	}
}

func TestHandleMalformedPayloadIsPermanent(t *testing.T) {
	n := New(testLogger())

	msg := kafka.NewMessage().
		WithKey("user-1").
		WithRawValue([]byte(`not json`)).
		WithEventType(kafka.EventBookingCreated).
		Build()

	err := n.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	var kafkaErr *kafka.KafkaError
	if !errors.As(err, &kafkaErr) || !kafkaErr.IsPermanent() {
		t.Errorf("err = %v, want permanent so it goes straight to the DLQ", err)
	}
}
