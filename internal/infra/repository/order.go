package repository

import (
	"context"
	"time"

	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

const orderColumns = `id, user_id, total_cents, status, method, external_id, expires_at, refund_cents, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const stmt = `
INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, stmt,
		o.ID(), o.UserID(), o.TotalCents(), o.Status().String(), o.Method().String(),
		o.ExternalID(), o.ExpiresAt(), o.RefundCents(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("order already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrderRow(ctx, query, id)
}

func (r *OrderRepository) LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOrderRow(ctx, query, id)
}

func (r *OrderRepository) LockByExternalID(ctx context.Context, externalID string) (*order.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE external_id = $1 FOR UPDATE`
	return r.scanOrderRow(ctx, query, externalID)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	const stmt = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error {
	const stmt = `UPDATE orders SET external_id = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, externalID)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("transaction already linked to another order", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to set order transaction id", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetRefund(ctx context.Context, id uuid.UUID, refundCents int64, status order.Status) error {
	const stmt = `UPDATE orders SET refund_cents = $2, status = $3, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, refundCents, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to record refund", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) AddItem(ctx context.Context, item shared.OrderItem) error {
	const stmt = `
INSERT INTO order_items (id, order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, stmt, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to create order item", err)
	}
	return nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]shared.OrderItem, error) {
	const query = `
SELECT id, order_id, product_id, quantity, price_cents
FROM order_items WHERE order_id = $1`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}
	defer rows.Close()

	var items []shared.OrderItem
	for rows.Next() {
		var item shared.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	return items, nil
}

func (r *OrderRepository) ExpiredUnsettled(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	const query = `
SELECT id FROM orders
WHERE status IN ('pending', 'in_process') AND expires_at IS NOT NULL AND expires_at <= $1
ORDER BY expires_at
LIMIT $2`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired orders", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired order id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired order ids", err)
	}
	return ids, nil
}

func (r *OrderRepository) scanOrderRow(ctx context.Context, query string, arg any) (*order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var (
		id, userID           uuid.UUID
		totalCents           int64
		statusStr, methodStr string
		externalID           *string
		expiresAt            *time.Time
		refundCents          *int64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &totalCents, &statusStr, &methodStr, &externalID, &expiresAt, &refundCents, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	method, err := order.ParseMethod(methodStr)
	if err != nil {
		return nil, err
	}

	return order.Reconstruct(id, userID, totalCents, status, method, externalID, expiresAt, refundCents, createdAt, updatedAt), nil
}
