package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/sony/gobreaker"
)

// AuthClient performs the gateway's synchronous token validation against
// the user service. Every failure mode, including an open breaker, must be
// treated by the caller as an authentication failure.
type AuthClient interface {
	Validate(ctx context.Context, token, path, method string) (*dto.TokenResponse, error)
}

type authClientImpl struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

func NewAuthClient(baseURL string, timeout time.Duration) AuthClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "auth-validate",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A rejected token is a normal outcome; only transport-level
		// failures should trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, model.ErrInvalidToken)
		},
	})

	return &authClientImpl{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		breaker:    breaker,
	}
}

func (c *authClientImpl) Validate(ctx context.Context, token, path, method string) (*dto.TokenResponse, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.validate(ctx, token, path, method)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.TokenResponse), nil
}

func (c *authClientImpl) validate(ctx context.Context, token, path, method string) (*dto.TokenResponse, error) {
	body, err := json.Marshal(dto.ValidateRequest{Path: path, Method: method})
	if err != nil {
		return nil, fmt.Errorf("marshal validate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/validate?token=%s", c.baseURL, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service call: %w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token rejected: %w", model.ErrInvalidToken)
	}

	var tokenResp dto.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", err)
	}
	return &tokenResp, nil
}
