package domain

// Flight is a row of the read-only flight catalog. Duration is in minutes,
// price in currency minor units.
type Flight struct {
	ID           int64
	DayOfMonth   int
	Carrier      string
	FlightNumber int
	Origin       string
	Destination  string
	Duration     int
	Capacity     int
	Price        int64
	Canceled     bool
}

// Itinerary is one search result: a direct flight or a one-stop pair.
// It is addressed by its 0-based position in the issuing session's last
// search and is invalidated by the next search.
type Itinerary struct {
	Flights  []Flight
	Duration int
}
