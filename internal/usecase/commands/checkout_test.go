//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CheckoutSuite struct {
	suite.Suite
	store    *memStore
	clock    *clock.MockClock
	gateway  *stubGateway
	checkout commands.CheckoutCommands

	client    *identity.Principal
	admin     *identity.Principal
	roomID    uuid.UUID
	productID uuid.UUID
}

func (s *CheckoutSuite) SetupTest() {
	s.store = newMemStore()
	s.clock = clock.NewMockClock(cartNow)
	s.gateway = &stubGateway{}
	s.checkout = commands.NewCheckoutUseCase(&memUoW{store: s.store}, s.gateway, s.clock, config.BookingConfig{
		HoldTTL:   15 * time.Minute,
		PixExpiry: 20 * time.Minute,
	})

	s.client = &identity.Principal{UserID: uuid.New(), Role: identity.RoleClient}
	s.admin = &identity.Principal{UserID: uuid.New(), Role: identity.RoleAdmin}
	s.roomID = uuid.New()
	s.productID = uuid.New()

	room, err := resource.NewResource(s.roomID, "Sala 1", resource.KindRoom, 1, 6000,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(20, 0),
		resource.NewWeekdays(time.Monday), true)
	s.Require().NoError(err)
	entry, err := resource.NewScheduleEntry(s.roomID, time.Monday,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(20, 0))
	s.Require().NoError(err)
	s.store.addResource(room, entry)

	s.store.products[s.productID] = &shared.ProductSnapshot{
		ID:            s.productID,
		Name:          "Answer sheets",
		PriceCents:    1500,
		StockQuantity: 10,
		Active:        true,
	}
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) holdRoom(p *identity.Principal, startHour, endHour int) *hold.Hold {
	start := time.Date(2026, 3, 2, startHour, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, endHour, 0, 0, 0, time.UTC)
	h, err := hold.New(p.UserID, hold.ItemRoom, s.roomID, 1,
		6000*int64(endHour-startHour), &start, &end, nil, s.clock.Now(), 15*time.Minute)
	s.Require().NoError(err)
	s.store.holds[h.ID] = h
	return h
}

func (s *CheckoutSuite) holdProduct(p *identity.Principal, quantity int) *hold.Hold {
	h, err := hold.New(p.UserID, hold.ItemProduct, s.productID, quantity,
		1500*int64(quantity), nil, nil, nil, s.clock.Now(), 15*time.Minute)
	s.Require().NoError(err)
	s.store.holds[h.ID] = h
	return h
}

func (s *CheckoutSuite) commit(p *identity.Principal, method order.Method) (*commands.CheckoutResult, error) {
	return s.checkout.CommitCheckout(context.Background(), p, commands.CheckoutInput{
		OrderID: uuid.New(),
		Method:  method,
		Payer:   gateway.Payer{Name: "Ana", Document: "12345678900", Email: "ana@example.com"},
	})
}

func (s *CheckoutSuite) TestCommit_PixHappyPath() {
	s.holdRoom(s.client, 9, 11)
	s.holdProduct(s.client, 2)

	var created gateway.CreateRequest
	s.gateway.createFn = func(_ context.Context, req gateway.CreateRequest) (*gateway.Transaction, error) {
		created = req
		return &gateway.Transaction{
			ID:      "txn_pix",
			Status:  gateway.StatusInProcess,
			Payload: map[string]string{"qr_code": "00020126"},
		}, nil
	}

	result, err := s.commit(s.client, order.MethodPix)
	s.Require().NoError(err)

	s.Equal(int64(15000), result.TotalCents)
	s.Equal(order.StatusInProcess, result.Status)
	s.Len(result.ReservationIDs, 1)
	s.Require().NotNil(result.Transaction)
	s.Equal("00020126", result.Transaction.Payload["qr_code"])

	s.Equal("pix", created.Method)
	s.Equal(int64(15000), created.AmountCents)
	s.Equal(result.OrderID.String(), created.ReferenceID)

	row := s.store.orders[result.OrderID]
	s.Require().NotNil(row)
	s.Equal(order.StatusInProcess, row.status)
	s.Require().NotNil(row.externalID)
	s.Equal("txn_pix", *row.externalID)
	s.Require().NotNil(row.expiresAt, "pix orders carry a payment window")
	s.Equal(s.clock.Now().Add(20*time.Minute), *row.expiresAt)

	s.Equal(booking.StatusInProcess, s.store.reservations[result.ReservationIDs[0]].status)
	s.Equal(8, s.store.products[s.productID].StockQuantity)
	s.Len(s.store.orderItems[result.OrderID], 1)
	s.Empty(s.store.holds, "cart is consumed by the commit")
}

func (s *CheckoutSuite) TestCommit_CardHasNoExpiry() {
	s.holdRoom(s.client, 9, 10)

	result, err := s.commit(s.client, order.MethodCard)
	s.Require().NoError(err)
	s.Nil(s.store.orders[result.OrderID].expiresAt)
}

func (s *CheckoutSuite) TestCommit_EmptyCart() {
	_, err := s.commit(s.client, order.MethodPix)
	s.ErrorIs(err, errs.ErrEmptyCart)
}

func (s *CheckoutSuite) TestCommit_ExpiredHoldsAreNotCommitted() {
	s.holdRoom(s.client, 9, 10)
	s.clock.Add(16 * time.Minute)

	_, err := s.commit(s.client, order.MethodPix)
	s.ErrorIs(err, errs.ErrEmptyCart)
}

func (s *CheckoutSuite) TestCommit_DuplicateOrderID() {
	s.holdRoom(s.client, 9, 10)

	existing, err := order.NewOrder(uuid.New(), s.client.UserID, 0, order.StatusInProcess, order.MethodPix, nil, s.clock.Now())
	s.Require().NoError(err)
	s.store.addOrder(existing)

	_, err = s.checkout.CommitCheckout(context.Background(), s.client, commands.CheckoutInput{
		OrderID: existing.ID(),
		Method:  order.MethodPix,
	})
	s.ErrorIs(err, commands.ErrOrderExists)
}

func (s *CheckoutSuite) TestCommit_StaleHoldAborts() {
	h := s.holdRoom(s.client, 9, 10)

	// Someone else's paid reservation now occupies the held slot.
	other, err := order.NewOrder(uuid.New(), uuid.New(), 6000, order.StatusPaid, order.MethodCard, nil, s.clock.Now())
	s.Require().NoError(err)
	s.store.addOrder(other)
	r, err := booking.NewReservation(s.roomID, other.UserID(), other.ID(),
		*h.Start, *h.End, 1, booking.StatusPaid, 6000, s.clock.Now())
	s.Require().NoError(err)
	s.store.addReservation(r)

	_, err = s.commit(s.client, order.MethodPix)
	s.ErrorIs(err, errs.ErrSlotNoLongerAvailable)
}

func (s *CheckoutSuite) TestCommit_ProductStockRanOut() {
	s.holdProduct(s.client, 2)
	s.store.products[s.productID].StockQuantity = 1

	_, err := s.commit(s.client, order.MethodPix)
	s.ErrorIs(err, errs.ErrSlotNoLongerAvailable)
}

func (s *CheckoutSuite) TestCommit_CashRequiresAdmin() {
	s.holdRoom(s.client, 9, 10)

	_, err := s.commit(s.client, order.MethodCash)
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *CheckoutSuite) TestCommit_CashSettlesImmediately() {
	s.holdRoom(s.admin, 9, 10)

	gatewayCalled := false
	s.gateway.createFn = func(_ context.Context, _ gateway.CreateRequest) (*gateway.Transaction, error) {
		gatewayCalled = true
		return nil, errs.New("must not be called")
	}

	result, err := s.commit(s.admin, order.MethodCash)
	s.Require().NoError(err)

	s.False(gatewayCalled)
	s.Nil(result.Transaction)
	s.Equal(order.StatusPaid, result.Status)
	s.Equal(order.StatusPaid, s.store.orders[result.OrderID].status)
	s.Equal(booking.StatusPaid, s.store.reservations[result.ReservationIDs[0]].status)
}

func (s *CheckoutSuite) TestCommit_GatewayFailureKeepsOrder() {
	s.holdRoom(s.client, 9, 10)

	s.gateway.createFn = func(_ context.Context, _ gateway.CreateRequest) (*gateway.Transaction, error) {
		return nil, errs.New("provider down")
	}

	result, err := s.commit(s.client, order.MethodPix)
	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrGateway)

	// The order committed before the gateway call and stays recoverable
	// through a later status poll.
	s.Require().NotNil(result)
	row := s.store.orders[result.OrderID]
	s.Require().NotNil(row)
	s.Equal(order.StatusInProcess, row.status)
	s.Nil(row.externalID)
}
