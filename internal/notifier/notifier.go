// Package notifier turns booking events into parish-office
// notifications. For now a notification is a structured log line; the
// delivery channel can change without touching the producers.
package notifier

import (
	"context"
	"fmt"

	"sagradago/pkg/kafka"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"
)

type Notifier struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

// Handle processes one booking event. Unknown event types are dropped
// as permanent errors so they never cycle through the retry path.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()

	switch eventType {
	case kafka.EventBookingCreated:
		return n.handleBookingCreated(msg)
	case kafka.EventBookingUpdated:
		return n.handleBookingUpdated(msg)
	default:
		n.log.Warn("Dropping event with unknown type",
			"event_type", eventType,
			"event_id", msg.GetEventID(),
		)
		return kafka.NewPermanentError("unhandled event type", fmt.Errorf("unknown event type %q", eventType))
	}
}

func (n *Notifier) handleBookingCreated(msg kafka.Message) error {
	var booking model.Booking
	if err := msg.DecodeValue(&booking); err != nil {
		return kafka.NewPermanentError("malformed booking payload", err)
	}

	n.log.Info("New sacrament booking received",
		"booking_id", booking.ID,
		"sacrament", booking.Sacrament,
		"date", booking.Date,
		"pax", booking.Pax,
		"transaction_id", booking.TransactionID,
		"event_id", msg.GetEventID(),
	)
	return nil
}

func (n *Notifier) handleBookingUpdated(msg kafka.Message) error {
	var booking model.Booking
	if err := msg.DecodeValue(&booking); err != nil {
		return kafka.NewPermanentError("malformed booking payload", err)
	}

	n.log.Info("Booking status changed",
		"booking_id", booking.ID,
		"status", booking.Status,
		"event_id", msg.GetEventID(),
	)
	return nil
}
