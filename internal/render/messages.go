// Package render produces the user-facing texts of every operation. The
// strings are a compatibility surface shared with the legacy service and must
// not change.
package render

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightservice/internal/domain"
)

const (
	MsgAlreadyLoggedIn   = "User already logged in\n"
	MsgLoginFailed       = "Login failed\n"
	MsgCreateUserFailed  = "Failed to create user\n"
	MsgNoMatch           = "No flights match your selection\n"
	MsgSearchFailed      = "Failed to search\n"
	MsgBookNotLoggedIn   = "Cannot book reservations, not logged in\n"
	MsgDateConflict      = "You cannot book two flights in the same day\n"
	MsgBookingFailed     = "Booking failed\n"
	MsgViewNotLoggedIn   = "Cannot view reservations, not logged in\n"
	MsgNoReservations    = "No reservations found\n"
	MsgViewFailed        = "Failed to retrieve reservations\n"
	MsgPayNotLoggedIn    = "Cannot pay, not logged in\n"
	MsgCancelNotLoggedIn = "Cannot cancel reservations, not logged in\n"
)

func LoggedIn(username string) string {
	return fmt.Sprintf("Logged in as %s\n", username)
}

func CreatedUser(username string) string {
	return fmt.Sprintf("Created user %s\n", username)
}

func Booked(reservationID int64) string {
	return fmt.Sprintf("Booked flight(s), reservation ID: %d\n", reservationID)
}

func NoSuchItinerary(id int) string {
	return fmt.Sprintf("No such itinerary %d\n", id)
}

func Paid(reservationID, remaining int64) string {
	return fmt.Sprintf("Paid reservation: %d remaining balance: %d\n", reservationID, remaining)
}

func UnpaidNotFound(reservationID int64, username string) string {
	return fmt.Sprintf("Cannot find unpaid reservation %d under user: %s\n", reservationID, username)
}

func InsufficientFunds(balance, cost int64) string {
	return fmt.Sprintf("User has only %d in account but itinerary costs %d\n", balance, cost)
}

// PayFailed and CancelFailed take the reservation reference as given by the
// caller, so an unparsable one is echoed back rather than rendered as 0.
func PayFailed(ref string) string {
	return fmt.Sprintf("Failed to pay for reservation %s\n", ref)
}

func Canceled(reservationID int64) string {
	return fmt.Sprintf("Canceled reservation %d\n", reservationID)
}

func CancelFailed(ref string) string {
	return fmt.Sprintf("Failed to cancel reservation %s\n", ref)
}

// FlightLine formats one flight the way every listing prints it.
func FlightLine(f domain.Flight) string {
	return fmt.Sprintf("ID: %d Day: %d Carrier: %s Number: %d Origin: %s Dest: %s Duration: %d Capacity: %d Price: %d\n",
		f.ID, f.DayOfMonth, f.Carrier, f.FlightNumber, f.Origin, f.Destination, f.Duration, f.Capacity, f.Price)
}

// Itineraries renders a search result. Itinerary numbers start from 0 within
// each search.
func Itineraries(itineraries []domain.Itinerary) string {
	var b strings.Builder
	for n, it := range itineraries {
		fmt.Fprintf(&b, "Itinerary %d: %d flight(s), %d minutes\n", n, len(it.Flights), it.Duration)
		for _, f := range it.Flights {
			b.WriteString(FlightLine(f))
		}
	}
	return b.String()
}

// ReservationView pairs a ledger row with its resolved flights for listing.
type ReservationView struct {
	ID      int64
	Paid    bool
	Flights []domain.Flight
}

// Reservations renders the view-reservations listing in the legacy format.
func Reservations(views []ReservationView) string {
	var b strings.Builder
	for _, v := range views {
		fmt.Fprintf(&b, "Reservation %d paid: %t:\n", v.ID, v.Paid)
		for _, f := range v.Flights {
			b.WriteString(FlightLine(f))
		}
	}
	return b.String()
}
