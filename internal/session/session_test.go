package session

import (
	"testing"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	registry := NewRegistry()

	sess := registry.Create()
	assert.NotEmpty(t, sess.Token())

	found, ok := registry.Get(sess.Token())
	assert.True(t, ok)
	assert.Same(t, sess, found)

	_, ok = registry.Get("unknown-token")
	assert.False(t, ok)
}

func TestSession_Authenticate(t *testing.T) {
	sess := NewRegistry().Create()

	_, ok := sess.User()
	assert.False(t, ok)

	assert.NoError(t, sess.Authenticate("alice"))

	username, ok := sess.User()
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	// A session carries one identity for its lifetime.
	err := sess.Authenticate("bob")
	assert.ErrorIs(t, err, domain.ErrAlreadyLoggedIn)

	username, _ = sess.User()
	assert.Equal(t, "alice", username)
}

func TestSession_ItineraryBeforeSearch(t *testing.T) {
	sess := NewRegistry().Create()

	_, err := sess.Itinerary(0)
	assert.ErrorIs(t, err, domain.ErrInvalidItinerary)
}

func TestSession_ItineraryAddressing(t *testing.T) {
	sess := NewRegistry().Create()

	first := domain.Itinerary{Flights: []domain.Flight{{ID: 1}}, Duration: 100}
	second := domain.Itinerary{Flights: []domain.Flight{{ID: 2}}, Duration: 200}
	sess.SetItineraries([]domain.Itinerary{first, second})

	got, err := sess.Itinerary(1)
	assert.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = sess.Itinerary(2)
	assert.ErrorIs(t, err, domain.ErrInvalidItinerary)
	_, err = sess.Itinerary(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidItinerary)
}

func TestSession_NewSearchReplacesItineraries(t *testing.T) {
	sess := NewRegistry().Create()

	sess.SetItineraries([]domain.Itinerary{{Flights: []domain.Flight{{ID: 1}}}, {Flights: []domain.Flight{{ID: 2}}}})
	sess.SetItineraries([]domain.Itinerary{{Flights: []domain.Flight{{ID: 9}}}})

	got, err := sess.Itinerary(0)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), got.Flights[0].ID)

	_, err = sess.Itinerary(1)
	assert.ErrorIs(t, err, domain.ErrInvalidItinerary)
}
