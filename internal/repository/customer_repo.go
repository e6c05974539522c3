package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/retailops/pricing-api/internal/models"
)

// CustomerRepository handles data access for customers.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByCode returns a single customer by its public code.
func (r *CustomerRepository) GetByCode(code string) (*models.Customer, error) {
	const q = `SELECT * FROM customers WHERE code = $1 LIMIT 1`

	var c models.Customer
	if err := r.db.Get(&c, q, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}

// GetByID returns a single customer by id.
func (r *CustomerRepository) GetByID(id int) (*models.Customer, error) {
	const q = `SELECT * FROM customers WHERE id = $1 LIMIT 1`

	var c models.Customer
	if err := r.db.Get(&c, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}

// GetAllPaged returns customers with optional type filter and pagination,
// along with the total count.
func (r *CustomerRepository) GetAllPaged(customerType string, page, limit int) ([]models.Customer, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const baseWhere = `WHERE ($1 = '' OR type = $1)`

	countQuery := `SELECT COUNT(1) FROM customers ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, customerType); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM customers %s
        ORDER BY name LIMIT $2 OFFSET $3`, baseWhere)
	var customers []models.Customer
	if err := r.db.Select(&customers, listQuery, customerType, limit, offset); err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Create creates a new customer.
func (r *CustomerRepository) Create(c *models.Customer) error {
	const q = `
        INSERT INTO customers (code, name, type, loyalty_level, country, currency, lifetime_value, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		c.Code, c.Name, c.Type, c.LoyaltyLevel, c.Country, c.Currency, c.LifetimeValue, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update updates an existing customer.
func (r *CustomerRepository) Update(c *models.Customer) error {
	const q = `
        UPDATE customers
        SET code = $1, name = $2, type = $3, loyalty_level = $4, country = $5,
            currency = $6, lifetime_value = $7, is_active = $8, updated_at = NOW()
        WHERE id = $9
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		c.Code, c.Name, c.Type, c.LoyaltyLevel, c.Country, c.Currency,
		c.LifetimeValue, c.IsActive, c.ID,
	).Scan(&c.UpdatedAt)
}

// Delete deletes a customer by ID.
func (r *CustomerRepository) Delete(id int) error {
	const q = `DELETE FROM customers WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}
