package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/retailops/pricing-api/internal/models"
)

// TierRepository handles data access for pricing tiers.
type TierRepository struct {
	db *sqlx.DB
}

// NewTierRepository creates a new TierRepository.
func NewTierRepository(db *sqlx.DB) *TierRepository {
	return &TierRepository{db: db}
}

// GetActive returns all active tiers in catalog order (priority descending,
// then id ascending). This ordering is what the engine's stable sort
// preserves for equal priorities, so it must not change casually.
func (r *TierRepository) GetActive() ([]models.PricingTier, error) {
	const q = `
        SELECT * FROM pricing_tiers
        WHERE is_active = true
        ORDER BY priority DESC, id ASC`

	var tiers []models.PricingTier
	if err := r.db.Select(&tiers, q); err != nil {
		return nil, err
	}
	return tiers, nil
}

// GetAll returns every tier including inactive ones, for the admin panel.
func (r *TierRepository) GetAll() ([]models.PricingTier, error) {
	const q = `SELECT * FROM pricing_tiers ORDER BY priority DESC, id ASC`

	var tiers []models.PricingTier
	if err := r.db.Select(&tiers, q); err != nil {
		return nil, err
	}
	return tiers, nil
}

// GetByID returns a single tier by id.
func (r *TierRepository) GetByID(id int) (*models.PricingTier, error) {
	const q = `SELECT * FROM pricing_tiers WHERE id = $1 LIMIT 1`

	var t models.PricingTier
	if err := r.db.Get(&t, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tier.
func (r *TierRepository) Create(tier *models.PricingTier) error {
	const q = `
        INSERT INTO pricing_tiers (name, priority, is_active, conditions, strategy, min_margin_pct, max_discount_pct)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		tier.Name,
		tier.Priority,
		tier.IsActive,
		tier.Conditions,
		tier.Strategy,
		tier.MinMarginPct,
		tier.MaxDiscountPct,
	).Scan(&tier.ID, &tier.CreatedAt, &tier.UpdatedAt)
}

// Update updates an existing tier.
func (r *TierRepository) Update(tier *models.PricingTier) error {
	const q = `
        UPDATE pricing_tiers
        SET name = $1, priority = $2, is_active = $3, conditions = $4,
            strategy = $5, min_margin_pct = $6, max_discount_pct = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		tier.Name,
		tier.Priority,
		tier.IsActive,
		tier.Conditions,
		tier.Strategy,
		tier.MinMarginPct,
		tier.MaxDiscountPct,
		tier.ID,
	).Scan(&tier.UpdatedAt)
}

// UpdateStatus sets the active flag of a tier.
func (r *TierRepository) UpdateStatus(id int, isActive bool) error {
	const q = `UPDATE pricing_tiers SET is_active = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, isActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete deletes a tier by ID.
func (r *TierRepository) Delete(id int) error {
	const q = `DELETE FROM pricing_tiers WHERE id = $1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
