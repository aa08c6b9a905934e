//go:build unit

package commands_test

import (
	"context"
	"time"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the persistence layer. It mirrors
// the table rows rather than the entities so status updates behave like SQL
// updates: a previously loaded entity does not change under the caller.

type orderRow struct {
	id          uuid.UUID
	userID      uuid.UUID
	totalCents  int64
	status      order.Status
	method      order.Method
	externalID  *string
	expiresAt   *time.Time
	refundCents *int64
	createdAt   time.Time
}

type reservationRow struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	orderID    uuid.UUID
	start      time.Time
	end        time.Time
	quantity   int
	status     booking.Status
	totalCents int64
	createdAt  time.Time
}

type auditRow struct {
	actorID  uuid.UUID
	action   string
	targetID *uuid.UUID
	reason   string
}

type memStore struct {
	resources     map[uuid.UUID]*resource.Resource
	schedules     []resource.ScheduleEntry
	blocks        map[uuid.UUID]*resource.Block
	holds         map[uuid.UUID]*hold.Hold
	reservations  map[uuid.UUID]*reservationRow
	orders        map[uuid.UUID]*orderRow
	orderItems    map[uuid.UUID][]shared.OrderItem
	products      map[uuid.UUID]*shared.ProductSnapshot
	webhookEvents map[string]string
	auditLog      []auditRow
}

func newMemStore() *memStore {
	return &memStore{
		resources:     make(map[uuid.UUID]*resource.Resource),
		blocks:        make(map[uuid.UUID]*resource.Block),
		holds:         make(map[uuid.UUID]*hold.Hold),
		reservations:  make(map[uuid.UUID]*reservationRow),
		orders:        make(map[uuid.UUID]*orderRow),
		orderItems:    make(map[uuid.UUID][]shared.OrderItem),
		products:      make(map[uuid.UUID]*shared.ProductSnapshot),
		webhookEvents: make(map[string]string),
	}
}

func (s *memStore) addResource(r *resource.Resource, entries ...resource.ScheduleEntry) {
	s.resources[r.ID()] = r
	s.schedules = append(s.schedules, entries...)
}

func (s *memStore) addOrder(o *order.Order) {
	s.orders[o.ID()] = &orderRow{
		id:          o.ID(),
		userID:      o.UserID(),
		totalCents:  o.TotalCents(),
		status:      o.Status(),
		method:      o.Method(),
		externalID:  o.ExternalID(),
		expiresAt:   o.ExpiresAt(),
		refundCents: o.RefundCents(),
		createdAt:   o.CreatedAt(),
	}
}

func (s *memStore) addReservation(r *booking.Reservation) {
	s.reservations[r.ID()] = &reservationRow{
		id:         r.ID(),
		resourceID: r.ResourceID(),
		userID:     r.UserID(),
		orderID:    r.OrderID(),
		start:      r.Start(),
		end:        r.End(),
		quantity:   r.Quantity(),
		status:     r.Status(),
		totalCents: r.TotalCents(),
		createdAt:  r.CreatedAt(),
	}
}

// memUoW runs the callback directly against the shared store. There is no
// transactionality; tests assert on observable state only.
type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{store: u.store})
}

func (u *memUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{store: u.store})
}

type memTx struct {
	store *memStore
}

func (t *memTx) Resources() shared.ResourceRepository         { return &memResources{t.store} }
func (t *memTx) Blocks() shared.BlockRepository               { return &memBlocks{t.store} }
func (t *memTx) Holds() shared.HoldRepository                 { return &memHolds{t.store} }
func (t *memTx) Bookings() shared.BookingRepository           { return &memBookings{t.store} }
func (t *memTx) Orders() shared.OrderRepository               { return &memOrders{t.store} }
func (t *memTx) Products() shared.ProductRepository           { return &memProducts{t.store} }
func (t *memTx) WebhookEvents() shared.WebhookEventRepository { return &memWebhookEvents{t.store} }
func (t *memTx) Audit() shared.AuditRepository                { return &memAudit{t.store} }
func (t *memTx) DB() db.DBTX                                  { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type memResources struct{ store *memStore }

func (r *memResources) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.store.resources[id]
	if !ok {
		return nil, notFound("resource not found")
	}
	return res, nil
}

func (r *memResources) LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func (r *memResources) ScheduleEntries(_ context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]resource.ScheduleEntry, error) {
	var entries []resource.ScheduleEntry
	for _, e := range r.store.schedules {
		if e.ResourceID == resourceID && e.Weekday == weekday {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type memBlocks struct{ store *memStore }

func (b *memBlocks) Create(_ context.Context, block *resource.Block) error {
	b.store.blocks[block.ID] = block
	return nil
}

func (b *memBlocks) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := b.store.blocks[id]; !ok {
		return notFound("block not found")
	}
	delete(b.store.blocks, id)
	return nil
}

func (b *memBlocks) Overlapping(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]*resource.Block, error) {
	var out []*resource.Block
	for _, block := range b.store.blocks {
		if block.ResourceID == resourceID && block.Overlaps(from, to) {
			out = append(out, block)
		}
	}
	return out, nil
}

type memHolds struct{ store *memStore }

func (h *memHolds) Create(_ context.Context, hd *hold.Hold) error {
	cp := *hd
	h.store.holds[hd.ID] = &cp
	return nil
}

func (h *memHolds) FindByID(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	hd, ok := h.store.holds[id]
	if !ok {
		return nil, notFound("hold not found")
	}
	cp := *hd
	return &cp, nil
}

func (h *memHolds) ActiveByUser(_ context.Context, userID uuid.UUID, now time.Time) ([]*hold.Hold, error) {
	var out []*hold.Hold
	for _, hd := range h.store.holds {
		if hd.UserID == userID && !hd.Expired(now) {
			cp := *hd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (h *memHolds) ActiveOverlapping(_ context.Context, itemID uuid.UUID, from, to time.Time, now time.Time) ([]*hold.Hold, error) {
	var out []*hold.Hold
	for _, hd := range h.store.holds {
		if hd.ItemID != itemID || hd.Expired(now) || hd.Start == nil || hd.End == nil {
			continue
		}
		if overlaps(*hd.Start, *hd.End, from, to) {
			cp := *hd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (h *memHolds) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int, priceCents int64) error {
	hd, ok := h.store.holds[id]
	if !ok {
		return notFound("hold not found")
	}
	hd.Quantity = quantity
	hd.PriceCents = priceCents
	return nil
}

func (h *memHolds) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := h.store.holds[id]; !ok {
		return notFound("hold not found")
	}
	delete(h.store.holds, id)
	return nil
}

func (h *memHolds) DeleteByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var removed int64
	for id, hd := range h.store.holds {
		if hd.UserID == userID {
			delete(h.store.holds, id)
			removed++
		}
	}
	return removed, nil
}

func (h *memHolds) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, hd := range h.store.holds {
		if hd.Expired(now) {
			delete(h.store.holds, id)
			removed++
		}
	}
	return removed, nil
}

type memBookings struct{ store *memStore }

func (b *memBookings) reconstruct(row *reservationRow) *booking.Reservation {
	return booking.Reconstruct(row.id, row.resourceID, row.userID, row.orderID,
		row.start, row.end, row.quantity, row.status, row.totalCents, row.createdAt, row.createdAt)
}

func (b *memBookings) Create(_ context.Context, r *booking.Reservation) error {
	b.store.addReservation(r)
	return nil
}

func (b *memBookings) FindByID(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	row, ok := b.store.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return b.reconstruct(row), nil
}

func (b *memBookings) ListByOrder(_ context.Context, orderID uuid.UUID) ([]*booking.Reservation, error) {
	var out []*booking.Reservation
	for _, row := range b.store.reservations {
		if row.orderID == orderID {
			out = append(out, b.reconstruct(row))
		}
	}
	return out, nil
}

func (b *memBookings) ListByUser(_ context.Context, userID uuid.UUID) ([]*booking.Reservation, error) {
	var out []*booking.Reservation
	for _, row := range b.store.reservations {
		if row.userID == userID {
			out = append(out, b.reconstruct(row))
		}
	}
	return out, nil
}

func (b *memBookings) ActiveOverlapping(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Reservation, error) {
	var out []*booking.Reservation
	for _, row := range b.store.reservations {
		if row.resourceID == resourceID && row.status.ConsumesCapacity() && overlaps(row.start, row.end, from, to) {
			out = append(out, b.reconstruct(row))
		}
	}
	return out, nil
}

func (b *memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status booking.Status) error {
	row, ok := b.store.reservations[id]
	if !ok {
		return notFound("reservation not found")
	}
	row.status = status
	return nil
}

func (b *memBookings) UpdateStatusByOrder(_ context.Context, orderID uuid.UUID, from, to booking.Status) (int64, error) {
	var updated int64
	for _, row := range b.store.reservations {
		if row.orderID == orderID && row.status == from {
			row.status = to
			updated++
		}
	}
	return updated, nil
}

type memOrders struct{ store *memStore }

func (o *memOrders) reconstruct(row *orderRow) *order.Order {
	return order.Reconstruct(row.id, row.userID, row.totalCents, row.status, row.method,
		row.externalID, row.expiresAt, row.refundCents, row.createdAt, row.createdAt)
}

func (o *memOrders) Create(_ context.Context, ord *order.Order) error {
	if _, exists := o.store.orders[ord.ID()]; exists {
		return infra.WrapRepoErr("order already exists", nil, infra.KindDuplicateKey)
	}
	o.store.addOrder(ord)
	return nil
}

func (o *memOrders) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	row, ok := o.store.orders[id]
	if !ok {
		return nil, notFound("order not found")
	}
	return o.reconstruct(row), nil
}

func (o *memOrders) LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return o.FindByID(ctx, id)
}

func (o *memOrders) LockByExternalID(_ context.Context, externalID string) (*order.Order, error) {
	for _, row := range o.store.orders {
		if row.externalID != nil && *row.externalID == externalID {
			return o.reconstruct(row), nil
		}
	}
	return nil, notFound("order not found")
}

func (o *memOrders) ListByUser(_ context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, row := range o.store.orders {
		if row.userID == userID {
			out = append(out, o.reconstruct(row))
		}
	}
	return out, nil
}

func (o *memOrders) UpdateStatus(_ context.Context, id uuid.UUID, status order.Status) error {
	row, ok := o.store.orders[id]
	if !ok {
		return notFound("order not found")
	}
	row.status = status
	return nil
}

func (o *memOrders) SetExternalID(_ context.Context, id uuid.UUID, externalID string) error {
	row, ok := o.store.orders[id]
	if !ok {
		return notFound("order not found")
	}
	row.externalID = &externalID
	return nil
}

func (o *memOrders) SetRefund(_ context.Context, id uuid.UUID, refundCents int64, status order.Status) error {
	row, ok := o.store.orders[id]
	if !ok {
		return notFound("order not found")
	}
	row.refundCents = &refundCents
	row.status = status
	return nil
}

func (o *memOrders) AddItem(_ context.Context, item shared.OrderItem) error {
	o.store.orderItems[item.OrderID] = append(o.store.orderItems[item.OrderID], item)
	return nil
}

func (o *memOrders) ListItems(_ context.Context, orderID uuid.UUID) ([]shared.OrderItem, error) {
	return o.store.orderItems[orderID], nil
}

func (o *memOrders) ExpiredUnsettled(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, row := range o.store.orders {
		if len(out) >= limit {
			break
		}
		unsettled := row.status == order.StatusPending || row.status == order.StatusInProcess
		if unsettled && row.expiresAt != nil && now.After(*row.expiresAt) {
			out = append(out, row.id)
		}
	}
	return out, nil
}

type memProducts struct{ store *memStore }

func (p *memProducts) FindByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	prod, ok := p.store.products[id]
	if !ok {
		return nil, notFound("product not found")
	}
	cp := *prod
	return &cp, nil
}

func (p *memProducts) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	prod, ok := p.store.products[id]
	if !ok || prod.StockQuantity < quantity {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	prod.StockQuantity -= quantity
	return nil
}

func (p *memProducts) RestoreStock(_ context.Context, id uuid.UUID, quantity int) error {
	prod, ok := p.store.products[id]
	if !ok {
		return notFound("product not found")
	}
	prod.StockQuantity += quantity
	return nil
}

type memWebhookEvents struct{ store *memStore }

func (w *memWebhookEvents) TryInsert(_ context.Context, eventID, externalID string) error {
	if _, seen := w.store.webhookEvents[eventID]; seen {
		return infra.WrapRepoErr("event already recorded", nil, infra.KindDuplicateKey)
	}
	w.store.webhookEvents[eventID] = externalID
	return nil
}

type memAudit struct{ store *memStore }

func (a *memAudit) Record(_ context.Context, actorID uuid.UUID, action string, targetID *uuid.UUID, reason string) error {
	a.store.auditLog = append(a.store.auditLog, auditRow{
		actorID:  actorID,
		action:   action,
		targetID: targetID,
		reason:   reason,
	})
	return nil
}

// stubGateway lets each test script the provider's behavior per call.
type stubGateway struct {
	createFn  func(ctx context.Context, req gateway.CreateRequest) (*gateway.Transaction, error)
	getFn     func(ctx context.Context, tid string) (*gateway.Transaction, error)
	captureFn func(ctx context.Context, tid string, amountCents int64) (*gateway.Transaction, error)
	refundFn  func(ctx context.Context, tid string, req gateway.RefundRequest) (*gateway.Transaction, error)
}

func (g *stubGateway) CreateTransaction(ctx context.Context, req gateway.CreateRequest) (*gateway.Transaction, error) {
	if g.createFn == nil {
		return &gateway.Transaction{ID: "txn_stub", Status: gateway.StatusInProcess}, nil
	}
	return g.createFn(ctx, req)
}

func (g *stubGateway) GetTransaction(ctx context.Context, tid string) (*gateway.Transaction, error) {
	if g.getFn == nil {
		return &gateway.Transaction{ID: tid, Status: gateway.StatusInProcess}, nil
	}
	return g.getFn(ctx, tid)
}

func (g *stubGateway) Capture(ctx context.Context, tid string, amountCents int64) (*gateway.Transaction, error) {
	if g.captureFn == nil {
		return &gateway.Transaction{ID: tid, Status: gateway.StatusPaid}, nil
	}
	return g.captureFn(ctx, tid, amountCents)
}

func (g *stubGateway) Refund(ctx context.Context, tid string, req gateway.RefundRequest) (*gateway.Transaction, error) {
	if g.refundFn == nil {
		return &gateway.Transaction{ID: tid, Status: gateway.StatusRefunded}, nil
	}
	return g.refundFn(ctx, tid, req)
}
