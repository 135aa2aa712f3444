package domain

// Reservation links a user to one or two flights. FlightID2 is 0 for a direct
// itinerary. A cancelled reservation keeps its row with owner and flight
// fields cleared, so its id is never reassigned.
type Reservation struct {
	ID         int64
	Username   string
	FlightID1  int64
	FlightID2  int64
	FlightDate int
	Paid       bool
}
