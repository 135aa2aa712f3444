package render

import (
	"testing"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	assert.Equal(t, "Logged in as alice\n", LoggedIn("alice"))
	assert.Equal(t, "Created user alice\n", CreatedUser("alice"))
	assert.Equal(t, "Booked flight(s), reservation ID: 7\n", Booked(7))
	assert.Equal(t, "No such itinerary 3\n", NoSuchItinerary(3))
	assert.Equal(t, "Paid reservation: 7 remaining balance: 50\n", Paid(7, 50))
	assert.Equal(t, "Cannot find unpaid reservation 7 under user: alice\n", UnpaidNotFound(7, "alice"))
	assert.Equal(t, "User has only 10 in account but itinerary costs 20\n", InsufficientFunds(10, 20))
	assert.Equal(t, "Failed to pay for reservation 7\n", PayFailed("7"))
	assert.Equal(t, "Canceled reservation 3\n", Canceled(3))
	assert.Equal(t, "Failed to cancel reservation 3\n", CancelFailed("3"))

	// Unparsable references are echoed back as given.
	assert.Equal(t, "Failed to pay for reservation seven\n", PayFailed("seven"))
	assert.Equal(t, "Failed to cancel reservation seven\n", CancelFailed("seven"))
}

func TestFlightLine(t *testing.T) {
	f := domain.Flight{
		ID: 4, DayOfMonth: 12, Carrier: "AA", FlightNumber: 100,
		Origin: "Seattle WA", Destination: "Boston MA",
		Duration: 300, Capacity: 10, Price: 250,
	}
	assert.Equal(t, "ID: 4 Day: 12 Carrier: AA Number: 100 Origin: Seattle WA Dest: Boston MA Duration: 300 Capacity: 10 Price: 250\n", FlightLine(f))
}

func TestItineraries(t *testing.T) {
	direct := domain.Flight{ID: 1, DayOfMonth: 12, Carrier: "AA", FlightNumber: 10, Origin: "A", Destination: "B", Duration: 100, Capacity: 5, Price: 50}
	leg1 := domain.Flight{ID: 2, DayOfMonth: 12, Carrier: "BB", FlightNumber: 20, Origin: "A", Destination: "C", Duration: 60, Capacity: 5, Price: 30}
	leg2 := domain.Flight{ID: 3, DayOfMonth: 12, Carrier: "CC", FlightNumber: 30, Origin: "C", Destination: "B", Duration: 70, Capacity: 5, Price: 40}

	got := Itineraries([]domain.Itinerary{
		{Flights: []domain.Flight{direct}, Duration: 100},
		{Flights: []domain.Flight{leg1, leg2}, Duration: 130},
	})

	want := "Itinerary 0: 1 flight(s), 100 minutes\n" +
		FlightLine(direct) +
		"Itinerary 1: 2 flight(s), 130 minutes\n" +
		FlightLine(leg1) +
		FlightLine(leg2)
	assert.Equal(t, want, got)
}

func TestReservations(t *testing.T) {
	f := domain.Flight{ID: 4, DayOfMonth: 12, Carrier: "AA", FlightNumber: 100, Origin: "A", Destination: "B", Duration: 300, Capacity: 10, Price: 250}

	got := Reservations([]ReservationView{
		{ID: 1, Paid: true, Flights: []domain.Flight{f}},
		{ID: 2, Paid: false, Flights: []domain.Flight{f, f}},
	})

	want := "Reservation 1 paid: true:\n" +
		FlightLine(f) +
		"Reservation 2 paid: false:\n" +
		FlightLine(f) +
		FlightLine(f)
	assert.Equal(t, want, got)
}
