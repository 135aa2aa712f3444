package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/render"
	"github.com/Domenick1991/flightservice/internal/service/trips"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	service trips.TripUseCase
}

type bookRequest struct {
	Itinerary int `json:"itinerary"`
}

func NewTripHandler(service trips.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router gin.IRouter) {
	router.POST("/bookings", h.book)
	router.GET("/reservations", h.reservations)
	router.POST("/reservations/:id/pay", h.pay)
	router.DELETE("/reservations/:id", h.cancel)
}

func (h *TripHandler) book(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, render.MsgBookNotLoggedIn)
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, render.MsgBookingFailed)
		return
	}

	reservationID, err := h.service.Book(c.Request.Context(), sess, req.Itinerary)
	switch {
	case err == nil:
		c.String(http.StatusCreated, render.Booked(reservationID))
	case errors.Is(err, domain.ErrNotLoggedIn):
		c.String(http.StatusUnauthorized, render.MsgBookNotLoggedIn)
	case errors.Is(err, domain.ErrInvalidItinerary):
		c.String(http.StatusNotFound, render.NoSuchItinerary(req.Itinerary))
	case errors.Is(err, domain.ErrDateConflict):
		c.String(http.StatusConflict, render.MsgDateConflict)
	default:
		// Capacity conflicts, serialization failures and store errors all
		// reduce to the generic booking failure; the unit has already been
		// rolled back and the caller may retry.
		c.String(http.StatusConflict, render.MsgBookingFailed)
	}
}

func (h *TripHandler) reservations(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, render.MsgViewNotLoggedIn)
		return
	}

	details, err := h.service.Reservations(c.Request.Context(), sess)
	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		c.String(http.StatusUnauthorized, render.MsgViewNotLoggedIn)
	case err != nil:
		c.String(http.StatusInternalServerError, render.MsgViewFailed)
	case len(details) == 0:
		c.String(http.StatusOK, render.MsgNoReservations)
	default:
		views := make([]render.ReservationView, 0, len(details))
		for _, d := range details {
			views = append(views, render.ReservationView{ID: d.ID, Paid: d.Paid, Flights: d.Flights})
		}
		c.String(http.StatusOK, render.Reservations(views))
	}
}

func (h *TripHandler) pay(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, render.MsgPayNotLoggedIn)
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, render.PayFailed(c.Param("id")))
		return
	}

	remaining, err := h.service.Pay(c.Request.Context(), sess, reservationID)
	var funds *domain.InsufficientFundsError
	switch {
	case err == nil:
		c.String(http.StatusOK, render.Paid(reservationID, remaining))
	case errors.Is(err, domain.ErrNotLoggedIn):
		c.String(http.StatusUnauthorized, render.MsgPayNotLoggedIn)
	case errors.Is(err, domain.ErrReservationNotFound):
		username, _ := sess.User()
		c.String(http.StatusNotFound, render.UnpaidNotFound(reservationID, username))
	case errors.As(err, &funds):
		c.String(http.StatusConflict, render.InsufficientFunds(funds.Balance, funds.Cost))
	default:
		c.String(http.StatusInternalServerError, render.PayFailed(c.Param("id")))
	}
}

func (h *TripHandler) cancel(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, render.MsgCancelNotLoggedIn)
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, render.CancelFailed(c.Param("id")))
		return
	}

	err = h.service.Cancel(c.Request.Context(), sess, reservationID)
	switch {
	case err == nil:
		c.String(http.StatusOK, render.Canceled(reservationID))
	case errors.Is(err, domain.ErrNotLoggedIn):
		c.String(http.StatusUnauthorized, render.MsgCancelNotLoggedIn)
	default:
		// Ownership mismatches and missing reservations are not
		// distinguished to the caller, matching the legacy contract.
		c.String(http.StatusConflict, render.CancelFailed(c.Param("id")))
	}
}
