package repository

import (
	"context"
	"errors"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, paymentID uint) (*model.Payment, error)
	FindAll(ctx context.Context) ([]*model.Payment, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, paymentID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).First(&payment, paymentID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) FindAll(ctx context.Context) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
