package service

import (
	"database/sql"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/utils"
)

// CustomerService provides customer-related business logic for the
// back-office panel.
type CustomerService struct {
	customerRepo *repository.CustomerRepository
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(customerRepo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetCustomers returns customers with optional type filter and pagination.
func (s *CustomerService) GetCustomers(customerType string, page, limit int) ([]models.Customer, int, error) {
	return s.customerRepo.GetAllPaged(customerType, page, limit)
}

// GetCustomerByCode returns a customer by its public code.
func (s *CustomerService) GetCustomerByCode(code string) (*models.Customer, error) {
	c, err := s.customerRepo.GetByCode(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetCustomerByID returns a customer by ID.
func (s *CustomerService) GetCustomerByID(id int) (*models.Customer, error) {
	c, err := s.customerRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(c *models.Customer) error {
	return s.customerRepo.Create(c)
}

// UpdateCustomer updates an existing customer.
func (s *CustomerService) UpdateCustomer(c *models.Customer) error {
	if err := s.customerRepo.Update(c); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// DeleteCustomer deletes a customer by ID.
func (s *CustomerService) DeleteCustomer(id int) error {
	return s.customerRepo.Delete(id)
}
