package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raulcudris/microservices-fargate-demo/internal/config"
	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/logging"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthClient struct {
	identity *dto.TokenResponse
	err      error

	gotToken  string
	gotPath   string
	gotMethod string
}

func (f *fakeAuthClient) Validate(ctx context.Context, token, path, method string) (*dto.TokenResponse, error) {
	f.gotToken = token
	f.gotPath = path
	f.gotMethod = method
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// echoHeaders replies with the identity headers the middleware injected.
func echoHeaders(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"userId":   c.Request().Header.Get(HeaderUserID),
		"role":     c.Request().Header.Get(HeaderUserRole),
		"username": c.Request().Header.Get(HeaderUsername),
	})
}

func runRequest(t *testing.T, auth *fakeAuthClient, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	log := logging.Setup(config.Log{Level: "error", Format: "text"}, "gateway-test")
	mw := GatewayAuth(auth, policy.Default(), log)
	e.Any("/*", echoHeaders, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGatewayAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	rec := runRequest(t, &fakeAuthClient{}, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGatewayAuth_MalformedScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc123")
	rec := runRequest(t, &fakeAuthClient{}, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGatewayAuth_FailsClosedOnAuthServiceError(t *testing.T) {
	auth := &fakeAuthClient{err: fmt.Errorf("auth service call: %w", model.ErrUpstreamUnavailable)}

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	rec := runRequest(t, auth, req)

	// an unreachable auth service is indistinguishable from a bad token
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGatewayAuth_RejectedToken(t *testing.T) {
	auth := &fakeAuthClient{err: fmt.Errorf("token rejected: %w", model.ErrInvalidToken)}

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired-token")
	rec := runRequest(t, auth, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGatewayAuth_InjectsVerifiedIdentity(t *testing.T) {
	auth := &fakeAuthClient{identity: &dto.TokenResponse{
		Token:    "valid-token",
		UserID:   42,
		Role:     model.RoleUser,
		Username: "alice",
	}}

	req := httptest.NewRequest(http.MethodPut, "/orders/1/confirm", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	// the client tries to smuggle its own identity
	req.Header.Set(HeaderUserID, "1")
	req.Header.Set(HeaderUserRole, model.RoleAdmin)

	rec := runRequest(t, auth, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "valid-token", auth.gotToken)
	assert.Equal(t, "/orders/1/confirm", auth.gotPath)
	assert.Equal(t, http.MethodPut, auth.gotMethod)

	assert.Contains(t, rec.Body.String(), `"userId":"42"`)
	assert.Contains(t, rec.Body.String(), `"role":"USER"`)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestGatewayAuth_PublicPathSkipsValidation(t *testing.T) {
	auth := &fakeAuthClient{}

	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	// spoofed identity headers are stripped even on public paths
	req.Header.Set(HeaderUserID, "1")

	rec := runRequest(t, auth, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, auth.gotToken, "validate must not be called for public paths")
	assert.Contains(t, rec.Body.String(), `"userId":""`)
}
