package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"
	"github.com/Raulcudris/microservices-fargate-demo/internal/testutil"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProductClient struct {
	prices map[uint]decimal.Decimal
}

func (s *staticProductClient) GetProduct(ctx context.Context, productID uint) (*dto.ProductResponse, error) {
	price, ok := s.prices[productID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &dto.ProductResponse{ID: productID, Price: price}, nil
}

func newOrderEcho(t *testing.T) *echo.Echo {
	t.Helper()

	db := testutil.OpenDB(t, &model.Order{}, &model.OrderItem{})
	products := &staticProductClient{prices: map[uint]decimal.Decimal{
		1: decimal.NewFromFloat(10.00),
	}}
	orderService := service.NewOrderService(db, repository.NewOrderRepository(db), products)
	h := NewOrderHandler(orderService)

	e := echo.New()
	orders := e.Group("/orders")
	orders.GET("", h.GetAll)
	orders.POST("", h.Create)
	orders.GET("/:id", h.GetByID)
	orders.PUT("/:id/confirm", h.Confirm)
	orders.PUT("/:id/cancel", h.Cancel)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOrderEndpoints_CheckoutScenario(t *testing.T) {
	e := newOrderEcho(t)

	// create: 2 x 10.00 -> total 20.00, PENDING
	rec := doJSON(e, http.MethodPost, "/orders",
		`{"customerId":7,"contactPhone":"555-0100","items":[{"productId":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Total.Equal(decimal.NewFromFloat(20.00)), "total = %s", created.Total)
	assert.Equal(t, model.OrderPending, created.Status)

	orderPath := "/orders/" + itoa(created.OrderID)

	// confirm succeeds once
	rec = doJSON(e, http.MethodPut, orderPath+"/confirm", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, orderPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, model.OrderConfirmed, fetched.Status)

	// a second confirm observes the terminal state
	rec = doJSON(e, http.MethodPut, orderPath+"/confirm", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// as does a late cancel
	rec = doJSON(e, http.MethodPut, orderPath+"/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderEndpoints_Validation(t *testing.T) {
	e := newOrderEcho(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty items", `{"customerId":7,"items":[]}`, http.StatusBadRequest},
		{"zero quantity", `{"customerId":7,"items":[{"productId":1,"quantity":0}]}`, http.StatusBadRequest},
		{"unknown product", `{"customerId":7,"items":[{"productId":99,"quantity":1}]}`, http.StatusNotFound},
		{"garbage body", `{"items":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/orders", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestOrderEndpoints_TransitionErrors(t *testing.T) {
	e := newOrderEcho(t)

	rec := doJSON(e, http.MethodPut, "/orders/999/confirm", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/orders/abc/confirm", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
