package notify

import (
	"context"
	"testing"

	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	log, hook := test.NewNullLogger()
	sender := NewSender(log)

	err := sender.Send(context.Background(), kafka.OrderEvent{
		Type:    kafka.EventOrderCreated,
		OrderID: 7,
		OwnerID: 3,
		Tickets: []kafka.TicketEvent{{Row: 1, Seat: 1, FlightID: 2}},
	})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, int64(7), entry.Data["order_id"])
	assert.Equal(t, 1, entry.Data["tickets"])
}
