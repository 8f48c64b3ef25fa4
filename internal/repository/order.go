package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	Transition(ctx context.Context, orderID uint, to string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, orderID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// Transition flips a PENDING order to a terminal status with a conditional
// update, so a confirm and a cancel racing on the same order resolve with
// exactly one winner. The loser observes ErrInvalidTransition.
func (r *orderRepoImpl) Transition(ctx context.Context, orderID uint, to string) error {
	updates := map[string]any{"status": to}
	if to == model.OrderConfirmed {
		now := time.Now()
		updates["confirmed_at"] = &now
	}

	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderPending).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).
			Where("id = ?", orderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return model.ErrNotFound
		}
		return model.ErrInvalidTransition
	}

	return nil
}
