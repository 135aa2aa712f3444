package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/render"
	"github.com/Domenick1991/flightservice/internal/service/accounts"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service accounts.AccountUseCase
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Balance  int64  `json:"balance"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAccountHandler(service accounts.AccountUseCase) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Register(router gin.IRouter) {
	router.POST("/users", h.create)
	router.POST("/sessions/login", h.login)
}

func (h *AccountHandler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.String(http.StatusBadRequest, render.MsgCreateUserFailed)
		return
	}

	if err := h.service.CreateUser(c.Request.Context(), req.Username, req.Password, req.Balance); err != nil {
		c.String(http.StatusBadRequest, render.MsgCreateUserFailed)
		return
	}
	c.String(http.StatusCreated, render.CreatedUser(req.Username))
}

func (h *AccountHandler) login(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnauthorized, render.MsgLoginFailed)
		return
	}

	err := h.service.Login(c.Request.Context(), sess, req.Username, req.Password)
	switch {
	case err == nil:
		c.String(http.StatusOK, render.LoggedIn(req.Username))
	case errors.Is(err, domain.ErrAlreadyLoggedIn):
		c.String(http.StatusConflict, render.MsgAlreadyLoggedIn)
	default:
		c.String(http.StatusUnauthorized, render.MsgLoginFailed)
	}
}
