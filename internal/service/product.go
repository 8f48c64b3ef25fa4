package service

import (
	"context"
	"fmt"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
)

type ProductService interface {
	GetAll(ctx context.Context) ([]*dto.ProductResponse, error)
	GetByID(ctx context.Context, productID uint) (*dto.ProductResponse, error)
	Create(ctx context.Context, req *dto.NewProductRequest) (*dto.ProductResponse, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) GetAll(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	return out, nil
}

func (s *productServiceImpl) GetByID(ctx context.Context, productID uint) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapProduct(product), nil
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.NewProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("product price must not be negative")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if req.Category != "" {
		category, err := s.productRepo.FindOrCreateCategory(ctx, req.Category)
		if err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		product.CategoryID = &category.ID
		product.Category = category
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}

	return mapProduct(product), nil
}

func mapProduct(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}
