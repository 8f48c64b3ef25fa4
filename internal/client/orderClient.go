package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
)

// OrderClient drives the payment-side leg of the checkout saga: confirming
// or cancelling an order on the order service.
type OrderClient interface {
	ConfirmOrder(ctx context.Context, orderID uint) error
	CancelOrder(ctx context.Context, orderID uint) error
}

type orderClientImpl struct {
	httpClient *http.Client
	baseURL    string
}

func NewOrderClient(baseURL string, timeout time.Duration) OrderClient {
	return &orderClientImpl{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *orderClientImpl) ConfirmOrder(ctx context.Context, orderID uint) error {
	return c.transition(ctx, orderID, "confirm")
}

func (c *orderClientImpl) CancelOrder(ctx context.Context, orderID uint) error {
	return c.transition(ctx, orderID, "cancel")
}

func (c *orderClientImpl) transition(ctx context.Context, orderID uint, action string) error {
	url := fmt.Sprintf("%s/orders/%d/%s", c.baseURL, orderID, action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order service call: %w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("order %d %s: %w", orderID, action, model.ErrInvalidTransition)
	default:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("order service status %d: %s: %w", resp.StatusCode, string(b), model.ErrUpstreamUnavailable)
	}
}
