package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
)

// ProductClient is the order service's view of the product catalog. It is
// consulted once per order item to snapshot the current price.
type ProductClient interface {
	GetProduct(ctx context.Context, productID uint) (*dto.ProductResponse, error)
}

type productClientImpl struct {
	httpClient *http.Client
	baseURL    string
}

func NewProductClient(baseURL string, timeout time.Duration) ProductClient {
	return &productClientImpl{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *productClientImpl) GetProduct(ctx context.Context, productID uint) (*dto.ProductResponse, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product service call: %w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("product service status %d: %s: %w", resp.StatusCode, string(b), model.ErrUpstreamUnavailable)
	}

	var product dto.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	return &product, nil
}
