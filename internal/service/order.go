package service

import (
	"context"
	"fmt"

	"github.com/Raulcudris/microservices-fargate-demo/internal/client"
	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetAll(ctx context.Context) ([]*dto.OrderResponse, error)
	GetByID(ctx context.Context, orderID uint) (*dto.OrderResponse, error)
	Confirm(ctx context.Context, orderID uint) error
	Cancel(ctx context.Context, orderID uint) error
}

type orderServiceImpl struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	productClient client.ProductClient
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productClient client.ProductClient,
) OrderService {
	return &orderServiceImpl{
		db:            db,
		orderRepo:     orderRepo,
		productClient: productClient,
	}
}

// Create resolves every item against the product catalog, snapshots the
// current unit price into the order and persists it as PENDING. If any
// lookup fails nothing is stored: an order must never exist with missing
// price data.
func (s *orderServiceImpl) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	total := decimal.Zero
	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}

		product, err := s.productClient.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", item.ProductID, err)
		}

		items[i] = model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	order := &model.Order{
		CustomerID:   req.CustomerID,
		Total:        total,
		Status:       model.OrderPending,
		Channel:      model.ChannelWeb,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		Items:        items,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapOrder(order), nil
}

func (s *orderServiceImpl) GetAll(ctx context.Context) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = mapOrder(order)
	}
	return out, nil
}

func (s *orderServiceImpl) GetByID(ctx context.Context, orderID uint) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return mapOrder(order), nil
}

func (s *orderServiceImpl) Confirm(ctx context.Context, orderID uint) error {
	return s.orderRepo.Transition(ctx, orderID, model.OrderConfirmed)
}

func (s *orderServiceImpl) Cancel(ctx context.Context, orderID uint) error {
	return s.orderRepo.Transition(ctx, orderID, model.OrderCancelled)
}

func mapOrder(order *model.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		OrderID: order.ID,
		Total:   order.Total,
		Status:  order.Status,
	}
}
