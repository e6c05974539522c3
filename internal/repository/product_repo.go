package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/retailops/pricing-api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetBySKUCode returns a single product by sku_code.
func (r *ProductRepository) GetBySKUCode(skuCode string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE sku_code = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, skuCode); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// ProductFilter holds filters for product list queries.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// GetAllPaged returns products with filters and pagination and also returns
// total count. Empty filters are ignored. Page begins at 1.
func (r *ProductRepository) GetAllPaged(filter *ProductFilter) ([]models.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	// Build dynamic WHERE clause
	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Brand != "" {
		baseWhere += fmt.Sprintf(" AND brand = $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR sku_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	// Count total
	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	// Fetch page
	listQuery := fmt.Sprintf(`SELECT * FROM products %s
        ORDER BY category, brand, name LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (sku_code, name, category, brand, cost, base_price,
            retail_price, wholesale_price, vip_price, export_price,
            current_stock, minimum_stock, high_season_months, low_season_months,
            vat_rate, is_luxury, export_restricted, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		p.SKUCode, p.Name, p.Category, p.Brand, p.Cost, p.BasePrice,
		p.RetailPrice, p.WholesalePrice, p.VIPPrice, p.ExportPrice,
		p.CurrentStock, p.MinimumStock, p.HighSeasonMonths, p.LowSeasonMonths,
		p.VATRate, p.IsLuxury, p.ExportRestricted, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products
        SET sku_code = $1, name = $2, category = $3, brand = $4, cost = $5,
            base_price = $6, retail_price = $7, wholesale_price = $8,
            vip_price = $9, export_price = $10, current_stock = $11,
            minimum_stock = $12, high_season_months = $13, low_season_months = $14,
            vat_rate = $15, is_luxury = $16, export_restricted = $17,
            is_active = $18, updated_at = NOW()
        WHERE id = $19
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		p.SKUCode, p.Name, p.Category, p.Brand, p.Cost, p.BasePrice,
		p.RetailPrice, p.WholesalePrice, p.VIPPrice, p.ExportPrice,
		p.CurrentStock, p.MinimumStock, p.HighSeasonMonths, p.LowSeasonMonths,
		p.VATRate, p.IsLuxury, p.ExportRestricted, p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
}

// UpdateStatus sets the active flag of a product.
func (r *ProductRepository) UpdateStatus(id int, isActive bool) error {
	const q = `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, isActive)
	return err
}

// Delete deletes a product by ID.
func (r *ProductRepository) Delete(id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// GetDistinctCategories returns all distinct categories.
func (r *ProductRepository) GetDistinctCategories() ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE category != '' ORDER BY category`
	var categories []string
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetDistinctBrands returns all distinct brands, optionally filtered by category.
func (r *ProductRepository) GetDistinctBrands(category string) ([]string, error) {
	q := `SELECT DISTINCT brand FROM products WHERE brand != ''`
	args := []interface{}{}
	if category != "" {
		q += ` AND category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY brand`

	var brands []string
	if err := r.db.Select(&brands, q, args...); err != nil {
		return nil, err
	}
	return brands, nil
}
