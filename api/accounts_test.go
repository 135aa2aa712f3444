package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/render"
	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAccountUseCase is a mock implementation of accounts.AccountUseCase
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) CreateUser(ctx context.Context, username, password string, balance int64) error {
	args := m.Called(ctx, username, password, balance)
	return args.Error(0)
}

func (m *MockAccountUseCase) Login(ctx context.Context, sess *session.Session, username, password string) error {
	args := m.Called(ctx, sess, username, password)
	return args.Error(0)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAccountHandler_create(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	c, w := newTestContext(t)
	c.Request = jsonRequest("POST", "/users", createUserRequest{
		Username: "alice", Password: "secret", Balance: 1000,
	})

	mockService.On("CreateUser", c.Request.Context(), "alice", "secret", int64(1000)).Return(nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, render.CreatedUser("alice"), w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAccountHandler_createEmptyUsername(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	c, w := newTestContext(t)
	c.Request = jsonRequest("POST", "/users", createUserRequest{Password: "secret"})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, render.MsgCreateUserFailed, w.Body.String())
	mockService.AssertNotCalled(t, "CreateUser")
}

func TestAccountHandler_createStoreFailure(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	c, w := newTestContext(t)
	c.Request = jsonRequest("POST", "/users", createUserRequest{
		Username: "alice", Password: "secret", Balance: -5,
	})

	mockService.On("CreateUser", c.Request.Context(), "alice", "secret", int64(-5)).
		Return(domain.ErrNegativeBalance)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, render.MsgCreateUserFailed, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAccountHandler_login(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	sess := session.NewRegistry().Create()
	c, w := newTestContext(t)
	c.Set(sessionKey, sess)
	c.Request = jsonRequest("POST", "/sessions/login", loginRequest{Username: "alice", Password: "secret"})

	mockService.On("Login", c.Request.Context(), sess, "alice", "secret").Return(nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, render.LoggedIn("alice"), w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAccountHandler_loginAlreadyLoggedIn(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	sess := session.NewRegistry().Create()
	c, w := newTestContext(t)
	c.Set(sessionKey, sess)
	c.Request = jsonRequest("POST", "/sessions/login", loginRequest{Username: "bob", Password: "secret"})

	mockService.On("Login", c.Request.Context(), sess, "bob", "secret").
		Return(domain.ErrAlreadyLoggedIn)

	handler.login(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, render.MsgAlreadyLoggedIn, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAccountHandler_loginBadCredentials(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	sess := session.NewRegistry().Create()
	c, w := newTestContext(t)
	c.Set(sessionKey, sess)
	c.Request = jsonRequest("POST", "/sessions/login", loginRequest{Username: "alice", Password: "wrong"})

	mockService.On("Login", c.Request.Context(), sess, "alice", "wrong").
		Return(domain.ErrAuthFailed)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, render.MsgLoginFailed, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAccountHandler_loginUnknownSession(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)

	c, w := newTestContext(t)
	c.Request = jsonRequest("POST", "/sessions/login", loginRequest{Username: "alice", Password: "secret"})

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Login")
}
