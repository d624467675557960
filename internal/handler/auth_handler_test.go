package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/middleware"
	"github.com/noah-isme/training-capacity-api/internal/models"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

type authSrvMock struct {
	req models.LoginRequest
	err error
}

func (m *authSrvMock) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.LoginResponse{AccessToken: "token", TokenType: "Bearer", User: models.UserInfo{Username: req.Username, Role: models.RoleAdmin}}, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &authSrvMock{}
	h := NewAuthHandler(svc)

	c, w := newGinContext(http.MethodPost, "/auth/login", mustJSON(t, models.LoginRequest{Username: "admin", Password: "secret"}))
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", svc.req.Username)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"accessToken":"token"`)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&authSrvMock{err: appErrors.ErrInvalidCredentials})

	c, w := newGinContext(http.MethodPost, "/auth/login", mustJSON(t, models.LoginRequest{Username: "admin", Password: "nope"}))
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, w).Error.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	h := NewAuthHandler(&authSrvMock{})

	c, w := newGinContext(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newGinContext(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "admin", Role: models.RoleAdmin})
	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"admin","role":"admin"}`, string(decodeEnvelope(t, w).Data))
}
