package notify

import (
	"context"

	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers order confirmations. Delivery is a log line until a
// mail gateway is configured.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	s.log.WithFields(logrus.Fields{
		"event":    event.Type,
		"order_id": event.OrderID,
		"owner_id": event.OwnerID,
		"tickets":  len(event.Tickets),
	}).Info("order confirmation sent")
	return nil
}
