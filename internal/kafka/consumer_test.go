package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConsumer(t *testing.T) {
	consumer := NewConsumer([]string{"localhost:9092"}, "flightservice-worker", "reservation-notifications", nil)
	assert.NotNil(t, consumer)
	assert.NoError(t, consumer.Close())
}

func TestDecodeEvent(t *testing.T) {
	event, err := decodeEvent([]byte(`{"type":"reservation_paid","reservation_id":7,"username":"alice","amount":150}`))

	assert.NoError(t, err)
	assert.Equal(t, "reservation_paid", event.Type)
	assert.Equal(t, int64(7), event.ReservationID)
	assert.Equal(t, "alice", event.Username)
	assert.Equal(t, int64(150), event.Amount)
}

func TestDecodeEvent_BadPayload(t *testing.T) {
	_, err := decodeEvent([]byte("not json"))
	assert.Error(t, err)
}
