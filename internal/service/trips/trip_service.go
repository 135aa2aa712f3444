package trips

import (
	"context"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/kafka"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/Domenick1991/flightservice/internal/session"
	"go.uber.org/zap"
)

const (
	EventBooked    = "reservation_booked"
	EventPaid      = "reservation_paid"
	EventCancelled = "reservation_cancelled"
)

type TripUseCase interface {
	Book(ctx context.Context, sess *session.Session, itineraryID int) (int64, error)
	Pay(ctx context.Context, sess *session.Session, reservationID int64) (int64, error)
	Cancel(ctx context.Context, sess *session.Session, reservationID int64) error
	Reservations(ctx context.Context, sess *session.Session) ([]ReservationDetails, error)
}

// TxRunner bounds each protocol in one atomic unit of work.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// FlightCache fronts catalog lookups when resolving reservations to flights.
// Cache misses and cache errors both fall through to the store.
type FlightCache interface {
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	SetFlight(ctx context.Context, f *domain.Flight) error
}

// ReservationDetails is a ledger row with its flights resolved for listing.
type ReservationDetails struct {
	ID      int64
	Paid    bool
	Flights []domain.Flight
}

type TripService struct {
	tx                 TxRunner
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	producer           Producer
	topic              string
	notificationsTopic string
	flightCache        FlightCache
	logger             *zap.Logger
}

type TripServiceOption func(*TripService)

// WithNotificationsTopic mirrors every reservation event onto the topic the
// notification worker consumes.
func WithNotificationsTopic(topic string) TripServiceOption {
	return func(s *TripService) {
		s.notificationsTopic = topic
	}
}

// WithFlightCache serves reservation listings from the catalog cache where
// possible, falling back to the store.
func WithFlightCache(cache FlightCache) TripServiceOption {
	return func(s *TripService) {
		s.flightCache = cache
	}
}

func NewTripService(
	tx TxRunner,
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	producer Producer,
	topic string,
	logger *zap.Logger,
	opts ...TripServiceOption,
) *TripService {
	if logger == nil {
		logger = zap.NewNop()
	}
	service := &TripService{
		tx:           tx,
		reservations: reservations,
		flights:      flights,
		users:        users,
		producer:     producer,
		topic:        topic,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves the itinerary cached under itineraryID by the session's last
// search. The same-day check, the capacity check of every referenced flight
// and the id allocation happen inside one serializable unit: a concurrent
// booking that would overbook a seat or reuse the id aborts with a
// serialization failure instead of committing.
func (s *TripService) Book(ctx context.Context, sess *session.Session, itineraryID int) (int64, error) {
	username, ok := sess.User()
	if !ok {
		return 0, domain.ErrNotLoggedIn
	}
	itinerary, err := sess.Itinerary(itineraryID)
	if err != nil {
		return 0, err
	}

	day := itinerary.Flights[0].DayOfMonth
	var reservationID int64
	err = s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		conflict, err := s.reservations.HasSameDay(ctx, username, day)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrDateConflict
		}

		for _, f := range itinerary.Flights {
			taken, err := s.reservations.SeatsTaken(ctx, f.ID)
			if err != nil {
				return err
			}
			if taken >= f.Capacity {
				return domain.ErrCapacityFull
			}
		}

		var fid2 int64
		if len(itinerary.Flights) == 2 {
			fid2 = itinerary.Flights[1].ID
		}
		reservationID, err = s.reservations.Create(ctx, username, itinerary.Flights[0].ID, fid2, day)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:          EventBooked,
		ReservationID: reservationID,
		Username:      username,
		FlightID1:     itinerary.Flights[0].ID,
		FlightID2:     secondFlightID(itinerary),
	})
	return reservationID, nil
}

// Pay settles an unpaid reservation owned by the caller and returns the
// remaining balance. The balance check and the debit share one serializable
// unit, so the balance can never go negative under concurrent payments.
func (s *TripService) Pay(ctx context.Context, sess *session.Session, reservationID int64) (int64, error) {
	username, ok := sess.User()
	if !ok {
		return 0, domain.ErrNotLoggedIn
	}

	var remaining, cost int64
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		unpaid, err := s.reservations.FindUnpaid(ctx, username, reservationID)
		if err != nil {
			return err
		}
		if !unpaid {
			return domain.ErrReservationNotFound
		}

		cost, err = s.reservations.Price(ctx, reservationID)
		if err != nil {
			return err
		}
		balance, err := s.users.Balance(ctx, username)
		if err != nil {
			return err
		}
		if balance < cost {
			return &domain.InsufficientFundsError{Balance: balance, Cost: cost}
		}

		if err := s.users.Debit(ctx, username, cost); err != nil {
			return err
		}
		if err := s.reservations.SetPaid(ctx, reservationID); err != nil {
			return err
		}
		remaining = balance - cost
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:          EventPaid,
		ReservationID: reservationID,
		Username:      username,
		Amount:        cost,
	})
	return remaining, nil
}

// Cancel retires the caller's reservation. A paid reservation is refunded
// before its fields are cleared; the cleared row keeps the id out of
// circulation forever.
func (s *TripService) Cancel(ctx context.Context, sess *session.Session, reservationID int64) error {
	username, ok := sess.User()
	if !ok {
		return domain.ErrNotLoggedIn
	}

	var refunded int64
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		owner, paid, err := s.reservations.OwnerAndPaid(ctx, reservationID)
		if err != nil {
			return err
		}
		if !strings.EqualFold(owner, username) {
			return domain.ErrForbidden
		}

		if paid {
			refund, err := s.reservations.Price(ctx, reservationID)
			if err != nil {
				return err
			}
			if err := s.users.Credit(ctx, username, refund); err != nil {
				return err
			}
			refunded = refund
		}
		return s.reservations.Clear(ctx, reservationID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, kafka.ReservationEvent{
		Type:          EventCancelled,
		ReservationID: reservationID,
		Username:      username,
		Amount:        refunded,
	})
	return nil
}

// Reservations lists the caller's non-cancelled reservations with their
// flights, in reservation-id order. An empty list is a normal outcome.
func (s *TripService) Reservations(ctx context.Context, sess *session.Session) ([]ReservationDetails, error) {
	username, ok := sess.User()
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}

	details := make([]ReservationDetails, 0)
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		list, err := s.reservations.ListByUser(ctx, username)
		if err != nil {
			return err
		}
		for _, res := range list {
			flights := make([]domain.Flight, 0, 2)
			f1, err := s.flightByID(ctx, res.FlightID1)
			if err != nil {
				return err
			}
			flights = append(flights, *f1)
			if res.FlightID2 != 0 {
				f2, err := s.flightByID(ctx, res.FlightID2)
				if err != nil {
					return err
				}
				flights = append(flights, *f2)
			}
			details = append(details, ReservationDetails{ID: res.ID, Paid: res.Paid, Flights: flights})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *TripService) flightByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if s.flightCache != nil {
		cached, err := s.flightCache.GetFlight(ctx, id)
		if err != nil {
			s.logger.Warn("flight cache read failed", zap.Int64("flight_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.flightCache != nil {
		if err := s.flightCache.SetFlight(ctx, f); err != nil {
			s.logger.Warn("flight cache write failed", zap.Int64("flight_id", id), zap.Error(err))
		}
	}
	return f, nil
}

func (s *TripService) publish(ctx context.Context, event kafka.ReservationEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	key := strconv.FormatInt(event.ReservationID, 10)
	topics := []string{s.topic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, key, event); err != nil {
			s.logger.Warn("failed to publish reservation event",
				zap.String("topic", topic),
				zap.String("type", event.Type),
				zap.Int64("reservation_id", event.ReservationID),
				zap.Error(err))
		}
	}
}

func secondFlightID(it domain.Itinerary) int64 {
	if len(it.Flights) == 2 {
		return it.Flights[1].ID
	}
	return 0
}

var _ TripUseCase = (*TripService)(nil)
