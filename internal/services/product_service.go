package services

import (
	"context"
	"errors"
	"fmt"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/internal/validators"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService interface {
	CreateProduct(ctx context.Context, merchantID primitive.ObjectID, req *CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, merchantID, productID primitive.ObjectID) (*models.Product, error)
	UpdateProduct(ctx context.Context, merchantID, productID primitive.ObjectID, req *UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error)
}

type CreateProductRequest struct {
	Name         string      `json:"name" binding:"required,max=100"`
	Description  string      `json:"description" binding:"required,max=1000"`
	Category     string      `json:"category,omitempty"`
	DeliveryType string      `json:"delivery_type" binding:"omitempty,oneof=link account text file"`
	Price        float64     `json:"price" binding:"min=0"`
	Stock        int         `json:"stock" binding:"min=0"`
	Tags         []string    `json:"tags,omitempty"`
	DeliveryData interface{} `json:"delivery_data,omitempty"`
}

type UpdateProductRequest struct {
	Name         *string     `json:"name,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Category     *string     `json:"category,omitempty"`
	Price        *float64    `json:"price,omitempty"`
	Stock        *int        `json:"stock,omitempty"`
	IsActive     *bool       `json:"is_active,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	DeliveryData interface{} `json:"delivery_data,omitempty"`
}

type productService struct {
	productRepo interfaces.ProductRepository
	logger      *logger.Logger
}

func NewProductService(productRepo interfaces.ProductRepository, logger *logger.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *productService) CreateProduct(ctx context.Context, merchantID primitive.ObjectID, req *CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		DeliveryType: req.DeliveryType,
		Price:        req.Price,
		Stock:        req.Stock,
		MerchantID:   merchantID,
		IsActive:     true,
		Tags:         req.Tags,
		DeliveryData: req.DeliveryData,
	}

	if verrs := validators.ValidateStruct(product); len(verrs) > 0 {
		return nil, validationError(verrs.Error())
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id":  product.ID.Hex(),
		"merchant_id": merchantID.Hex(),
	}).Info("Product created")

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, merchantID, productID primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.GetByIDForMerchant(ctx, productID, merchantID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, merchantID, productID primitive.ObjectID, req *UpdateProductRequest) (*models.Product, error) {
	if _, err := s.productRepo.GetByIDForMerchant(ctx, productID, merchantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, validationError("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, validationError("stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.DeliveryData != nil {
		updates["delivery_data"] = req.DeliveryData
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, productID, updates); err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.productRepo.GetByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	return s.productRepo.ListByMerchant(ctx, merchantID, params)
}
