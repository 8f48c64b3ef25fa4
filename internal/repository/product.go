package repository

import (
	"context"
	"errors"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	FindOrCreateCategory(ctx context.Context, name string) (*model.Category, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: decimal.NewFromFloat(10.00), Stock: 100},
		{ID: 2, Name: "Mouse", Description: "Wireless mouse", Price: decimal.NewFromFloat(25.50), Stock: 80},
		{ID: 3, Name: "Monitor", Description: "27 inch monitor", Price: decimal.NewFromFloat(199.99), Stock: 25},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, productID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where(model.Category{Name: name}).
		FirstOrCreate(&category).Error

	if err != nil {
		return nil, err
	}

	return &category, nil
}
