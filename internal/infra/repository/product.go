package repository

import (
	"context"

	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	const query = `
SELECT id, name, price_cents, stock_quantity, active
FROM products WHERE id = $1`

	var p shared.ProductSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.StockQuantity, &p.Active)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &p, nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	const stmt = `
UPDATE products SET stock_quantity = stock_quantity - $2
WHERE id = $1 AND stock_quantity >= $2`

	tag, err := r.db.Exec(ctx, stmt, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return infra.WrapRepoErr("insufficient stock", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	return nil
}

func (r *ProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	const stmt = `
UPDATE products SET stock_quantity = stock_quantity + $2
WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to restore stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
