package email

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers reservation notifications. Delivery is a stand-in: events
// are logged until a mail provider is wired up.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	s.logger.Info("sending reservation notification",
		zap.String("type", event.Type),
		zap.String("username", event.Username),
		zap.Int64("reservation_id", event.ReservationID))
	return nil
}
