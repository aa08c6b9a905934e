package repository

import (
	"context"
	"time"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const bookingColumns = `id, resource_id, user_id, order_id, start_at, end_at, quantity, status, total_cents, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, res *booking.Reservation) error {
	const stmt = `
INSERT INTO reservations (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, stmt,
		res.ID(), res.ResourceID(), res.UserID(), res.OrderID(),
		res.Start(), res.End(), res.Quantity(), res.Status().String(),
		res.TotalCents(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("reservation references unknown resource or order", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	const query = `SELECT ` + bookingColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *BookingRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*booking.Reservation, error) {
	const query = `SELECT ` + bookingColumns + ` FROM reservations WHERE order_id = $1 ORDER BY start_at`
	return r.queryReservations(ctx, query, orderID)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Reservation, error) {
	const query = `SELECT ` + bookingColumns + ` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryReservations(ctx, query, userID)
}

func (r *BookingRepository) ActiveOverlapping(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Reservation, error) {
	const query = `
SELECT ` + bookingColumns + `
FROM reservations
WHERE resource_id = $1
  AND status NOT IN ('cancelled', 'recused')
  AND start_at < $3 AND end_at > $2`

	return r.queryReservations(ctx, query, resourceID, from, to)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	const stmt = `UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, from, to booking.Status) (int64, error) {
	const stmt = `
UPDATE reservations SET status = $3, updated_at = now()
WHERE order_id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, stmt, orderID, from.String(), to.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update order reservations", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) queryReservations(ctx context.Context, query string, args ...any) ([]*booking.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []*booking.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return reservations, nil
}

func scanReservation(row rowScanner) (*booking.Reservation, error) {
	var (
		id, resourceID, userID, orderID uuid.UUID
		start, end                      time.Time
		quantity                        int
		statusStr                       string
		totalCents                      int64
		createdAt, updatedAt            time.Time
	)
	err := row.Scan(&id, &resourceID, &userID, &orderID, &start, &end, &quantity, &statusStr, &totalCents, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	status, err := booking.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(id, resourceID, userID, orderID, start, end, quantity, status, totalCents, createdAt, updatedAt), nil
}
