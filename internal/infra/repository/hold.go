package repository

import (
	"context"
	"time"

	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type HoldRepository struct {
	db db.DBTX
}

func NewHoldRepository(dbtx db.DBTX) *HoldRepository {
	return &HoldRepository{db: dbtx}
}

const holdColumns = `id, user_id, item_type, item_id, quantity, price_cents, start_at, end_at, branch_id, expires_at, created_at`

func (r *HoldRepository) Create(ctx context.Context, h *hold.Hold) error {
	const stmt = `
INSERT INTO cart_holds (` + holdColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, stmt,
		h.ID, h.UserID, string(h.ItemType), h.ItemID, h.Quantity, h.PriceCents,
		h.Start, h.End, h.BranchID, h.ExpiresAt, h.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create cart hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	const query = `SELECT ` + holdColumns + ` FROM cart_holds WHERE id = $1`

	h, err := scanHold(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("cart hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart hold", err)
	}
	return h, nil
}

func (r *HoldRepository) ActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*hold.Hold, error) {
	const query = `
SELECT ` + holdColumns + `
FROM cart_holds
WHERE user_id = $1 AND expires_at > $2
ORDER BY created_at`

	return r.queryHolds(ctx, query, userID, now)
}

func (r *HoldRepository) ActiveOverlapping(ctx context.Context, itemID uuid.UUID, from, to time.Time, now time.Time) ([]*hold.Hold, error) {
	const query = `
SELECT ` + holdColumns + `
FROM cart_holds
WHERE item_id = $1 AND expires_at > $4 AND start_at < $3 AND end_at > $2`

	return r.queryHolds(ctx, query, itemID, from, to, now)
}

func (r *HoldRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, priceCents int64) error {
	const stmt = `UPDATE cart_holds SET quantity = $2, price_cents = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, quantity, priceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to update cart hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart hold not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *HoldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_holds WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart hold not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *HoldRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_holds WHERE user_id = $1`, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear cart", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HoldRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_holds WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HoldRepository) queryHolds(ctx context.Context, query string, args ...any) ([]*hold.Hold, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart holds", err)
	}
	defer rows.Close()

	var holds []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart hold", err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart holds", err)
	}
	return holds, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHold(row rowScanner) (*hold.Hold, error) {
	var (
		h        hold.Hold
		itemType string
	)
	err := row.Scan(
		&h.ID, &h.UserID, &itemType, &h.ItemID, &h.Quantity, &h.PriceCents,
		&h.Start, &h.End, &h.BranchID, &h.ExpiresAt, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := hold.ParseItemType(itemType)
	if err != nil {
		return nil, err
	}
	h.ItemType = parsed
	return &h, nil
}
