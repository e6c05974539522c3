package service

import (
	"database/sql"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/utils"
)

// ProductService provides product-related business logic for the
// back-office panel.
type ProductService struct {
	productRepo *repository.ProductRepository
}

// NewProductService constructs a ProductService.
func NewProductService(productRepo *repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProducts returns products with filters and pagination plus the total
// item count.
func (s *ProductService) GetProducts(filter *repository.ProductFilter) ([]models.Product, int, error) {
	return s.productRepo.GetAllPaged(filter)
}

// GetProductBySKUCode returns a product by sku code.
func (s *ProductService) GetProductBySKUCode(skuCode string) (*models.Product, error) {
	p, err := s.productRepo.GetBySKUCode(skuCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetProductByID returns a product by ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(p *models.Product) error {
	return s.productRepo.Create(p)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(p *models.Product) error {
	if err := s.productRepo.Update(p); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

// DeleteProduct deletes a product by ID.
func (s *ProductService) DeleteProduct(id int) error {
	return s.productRepo.Delete(id)
}

// GetCategories returns all distinct product categories.
func (s *ProductService) GetCategories() ([]string, error) {
	return s.productRepo.GetDistinctCategories()
}

// GetBrands returns all distinct brands, optionally scoped to a category.
func (s *ProductService) GetBrands(category string) ([]string, error) {
	return s.productRepo.GetDistinctBrands(category)
}
