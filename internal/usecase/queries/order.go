package queries

import (
	"context"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderQueries interface {
	GetOrder(ctx context.Context, principal *identity.Principal, orderID uuid.UUID) (*OrderView, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
	ListReservations(ctx context.Context, userID uuid.UUID) ([]ReservationView, error)
}

type orderQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewOrderQueries(uow shared.UnitOfWork) OrderQueries {
	return &orderQueriesImpl{uow: uow}
}

// GetOrder returns one order with its lines and reservations. Clients see
// only their own orders; a foreign order reads as not found rather than
// forbidden so order ids are not probeable.
func (q *orderQueriesImpl) GetOrder(ctx context.Context, principal *identity.Principal, orderID uuid.UUID) (*OrderView, error) {
	var view *OrderView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.UserID() != principal.UserID && !principal.IsAdmin() {
			return ErrOrderNotFound
		}

		items, err := tx.Orders().ListItems(ctx, orderID)
		if err != nil {
			return err
		}
		reservations, err := tx.Bookings().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		v := toOrderView(o)
		for _, item := range items {
			v.Items = append(v.Items, OrderItemView{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				PriceCents: item.PriceCents,
			})
		}
		for _, r := range reservations {
			v.Reservations = append(v.Reservations, toReservationView(r))
		}
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	var views []OrderView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		orders, err := tx.Orders().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		views = make([]OrderView, len(orders))
		for i, o := range orders {
			views[i] = toOrderView(o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *orderQueriesImpl) ListReservations(ctx context.Context, userID uuid.UUID) ([]ReservationView, error) {
	var views []ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		reservations, err := tx.Bookings().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		views = make([]ReservationView, len(reservations))
		for i, r := range reservations {
			views[i] = toReservationView(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func toOrderView(o *order.Order) OrderView {
	return OrderView{
		ID:          o.ID(),
		UserID:      o.UserID(),
		TotalCents:  o.TotalCents(),
		Status:      o.Status().String(),
		Method:      o.Method().String(),
		ExternalID:  o.ExternalID(),
		ExpiresAt:   o.ExpiresAt(),
		RefundCents: o.RefundCents(),
		CreatedAt:   o.CreatedAt(),
	}
}

func toReservationView(r *booking.Reservation) ReservationView {
	return ReservationView{
		ID:         r.ID(),
		ResourceID: r.ResourceID(),
		OrderID:    r.OrderID(),
		Start:      r.Start(),
		End:        r.End(),
		Quantity:   r.Quantity(),
		Status:     r.Status().String(),
		TotalCents: r.TotalCents(),
	}
}
