package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightservice/internal/render"
	"github.com/Domenick1991/flightservice/internal/service/search"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service search.SearchUseCase
}

func NewSearchHandler(service search.SearchUseCase) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Register(router gin.IRouter) {
	router.GET("/search", h.search)
}

func (h *SearchHandler) search(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
		return
	}

	origin := c.Query("origin")
	dest := c.Query("dest")
	directOnly := c.Query("direct") == "true"
	day, dayErr := strconv.Atoi(c.Query("day"))
	count, countErr := strconv.Atoi(c.DefaultQuery("count", "10"))
	if origin == "" || dest == "" || dayErr != nil || countErr != nil {
		c.String(http.StatusBadRequest, render.MsgSearchFailed)
		return
	}

	itineraries, err := h.service.Search(c.Request.Context(), sess, origin, dest, directOnly, day, count)
	if err != nil {
		c.String(http.StatusInternalServerError, render.MsgSearchFailed)
		return
	}
	if len(itineraries) == 0 {
		c.String(http.StatusOK, render.MsgNoMatch)
		return
	}
	c.String(http.StatusOK, render.Itineraries(itineraries))
}
