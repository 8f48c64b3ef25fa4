package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
	"github.com/Raulcudris/microservices-fargate-demo/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProductClient serves prices from a map, standing in for the product
// service.
type fakeProductClient struct {
	prices map[uint]decimal.Decimal
	down   bool
}

func (f *fakeProductClient) GetProduct(ctx context.Context, productID uint) (*dto.ProductResponse, error) {
	if f.down {
		return nil, fmt.Errorf("product service call: %w", model.ErrUpstreamUnavailable)
	}
	price, ok := f.prices[productID]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	return &dto.ProductResponse{ID: productID, Name: "product", Price: price}, nil
}

func newOrderService(t *testing.T, products *fakeProductClient) (OrderService, *gorm.DB) {
	t.Helper()

	db := testutil.OpenDB(t, &model.Order{}, &model.OrderItem{})
	return NewOrderService(db, repository.NewOrderRepository(db), products), db
}

func TestOrderService_CreateSnapshotsPrices(t *testing.T) {
	products := &fakeProductClient{prices: map[uint]decimal.Decimal{
		1: decimal.NewFromFloat(10.00),
	}}
	svc, db := newOrderService(t, products)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateOrderRequest{
		CustomerID: 7,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(20.00)), "total = %s", resp.Total)

	// a later catalog price change must not touch the stored order
	products.prices[1] = decimal.NewFromFloat(99.99)

	stored, err := svc.GetByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.NewFromFloat(20.00)), "total = %s", stored.Total)

	var items []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", resp.OrderID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromFloat(10.00)))
	assert.Equal(t, int32(2), items[0].Quantity)
}

func TestOrderService_CreateMultiItemTotal(t *testing.T) {
	products := &fakeProductClient{prices: map[uint]decimal.Decimal{
		1: decimal.NewFromFloat(10.00),
		2: decimal.NewFromFloat(25.50),
	}}
	svc, _ := newOrderService(t, products)

	resp, err := svc.Create(context.Background(), &dto.CreateOrderRequest{
		CustomerID: 7,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// 3*10.00 + 2*25.50
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(81.00)), "total = %s", resp.Total)
}

func TestOrderService_CreateAbortsWhenCatalogDown(t *testing.T) {
	products := &fakeProductClient{down: true}
	svc, db := newOrderService(t, products)

	_, err := svc.Create(context.Background(), &dto.CreateOrderRequest{
		CustomerID: 7,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)

	// no partial order may survive a failed lookup
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderService_CreateUnknownProduct(t *testing.T) {
	products := &fakeProductClient{prices: map[uint]decimal.Decimal{}}
	svc, _ := newOrderService(t, products)

	_, err := svc.Create(context.Background(), &dto.CreateOrderRequest{
		CustomerID: 7,
		Items:      []dto.OrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOrderService_ConfirmIsTerminal(t *testing.T) {
	products := &fakeProductClient{prices: map[uint]decimal.Decimal{
		1: decimal.NewFromFloat(10.00),
	}}
	svc, _ := newOrderService(t, products)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateOrderRequest{
		CustomerID: 7,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, resp.OrderID))

	stored, err := svc.GetByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, stored.Status)

	// the second confirm loses
	assert.ErrorIs(t, svc.Confirm(ctx, resp.OrderID), model.ErrInvalidTransition)
	// and so does a late cancel
	assert.ErrorIs(t, svc.Cancel(ctx, resp.OrderID), model.ErrInvalidTransition)
}

func TestOrderService_ConfirmSetsTimestamp(t *testing.T) {
	products := &fakeProductClient{prices: map[uint]decimal.Decimal{
		1: decimal.NewFromFloat(10.00),
	}}
	svc, db := newOrderService(t, products)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateOrderRequest{
		CustomerID: 7,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, resp.OrderID))

	var order model.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.NotNil(t, order.ConfirmedAt)
}

func TestOrderService_TransitionUnknownOrder(t *testing.T) {
	svc, _ := newOrderService(t, &fakeProductClient{})

	assert.ErrorIs(t, svc.Confirm(context.Background(), 12345), model.ErrNotFound)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 12345), model.ErrNotFound)
}
