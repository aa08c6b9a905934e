//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Monday 07:00, one hour before the test resources open.
var cartNow = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

type CartSuite struct {
	suite.Suite
	store *memStore
	clock *clock.MockClock
	cart  commands.CartCommands

	userID      uuid.UUID
	roomID      uuid.UUID
	equipmentID uuid.UUID
	productID   uuid.UUID
}

func (s *CartSuite) SetupTest() {
	s.store = newMemStore()
	s.clock = clock.NewMockClock(cartNow)
	s.cart = commands.NewCartUseCase(&memUoW{store: s.store}, s.clock, config.BookingConfig{
		HoldTTL:   15 * time.Minute,
		PixExpiry: 20 * time.Minute,
	})

	s.userID = uuid.New()
	s.roomID = uuid.New()
	s.equipmentID = uuid.New()
	s.productID = uuid.New()

	room, err := resource.NewResource(s.roomID, "Sala 1", resource.KindRoom, 1, 6000,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(20, 0),
		resource.NewWeekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday), true)
	s.Require().NoError(err)
	roomEntry, err := resource.NewScheduleEntry(s.roomID, time.Monday,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(20, 0))
	s.Require().NoError(err)
	s.store.addResource(room, roomEntry)

	equipment, err := resource.NewResource(s.equipmentID, "Biofeedback kit", resource.KindEquipment, 2, 3000,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(12, 0),
		resource.NewWeekdays(time.Monday), true)
	s.Require().NoError(err)
	equipmentEntry, err := resource.NewScheduleEntry(s.equipmentID, time.Monday,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(12, 0))
	s.Require().NoError(err)
	s.store.addResource(equipment, equipmentEntry)

	s.store.products[s.productID] = &shared.ProductSnapshot{
		ID:            s.productID,
		Name:          "Answer sheets",
		PriceCents:    1500,
		StockQuantity: 10,
		Active:        true,
	}
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartSuite))
}

func (s *CartSuite) window(startHour, endHour int) (*time.Time, *time.Time) {
	start := time.Date(2026, 3, 2, startHour, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, endHour, 0, 0, 0, time.UTC)
	return &start, &end
}

func (s *CartSuite) addRoom(userID uuid.UUID, startHour, endHour int) (uuid.UUID, error) {
	start, end := s.window(startHour, endHour)
	return s.cart.AddToCart(context.Background(), userID, commands.AddToCartInput{
		ItemType: hold.ItemRoom,
		ItemID:   s.roomID,
		Quantity: 1,
		Start:    start,
		End:      end,
	})
}

func (s *CartSuite) addEquipment(userID uuid.UUID, quantity, startHour, endHour int) (uuid.UUID, error) {
	start, end := s.window(startHour, endHour)
	return s.cart.AddToCart(context.Background(), userID, commands.AddToCartInput{
		ItemType: hold.ItemEquipment,
		ItemID:   s.equipmentID,
		Quantity: quantity,
		Start:    start,
		End:      end,
	})
}

func (s *CartSuite) TestAddToCart_Room() {
	holdID, err := s.addRoom(s.userID, 9, 11)
	s.Require().NoError(err)

	h := s.store.holds[holdID]
	s.Require().NotNil(h)
	s.Equal(hold.ItemRoom, h.ItemType)
	s.Equal(int64(12000), h.PriceCents, "two hours at the hourly rate")
	s.Equal(cartNow.Add(15*time.Minute), h.ExpiresAt)
}

func (s *CartSuite) TestAddToCart_RoomDoubleBookingRejected() {
	_, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)

	_, err = s.addRoom(uuid.New(), 9, 10)
	s.ErrorIs(err, errs.ErrCapacityExceeded)

	// An adjacent window is untouched.
	_, err = s.addRoom(uuid.New(), 10, 11)
	s.NoError(err)
}

func (s *CartSuite) TestAddToCart_EquipmentPoolExhaustion() {
	// Two units held at 09:00 exhaust the pool for that hour.
	_, err := s.addEquipment(s.userID, 2, 9, 10)
	s.Require().NoError(err)

	_, err = s.addEquipment(uuid.New(), 1, 9, 10)
	s.ErrorIs(err, errs.ErrCapacityExceeded)
}

func (s *CartSuite) TestAddToCart_ExpiredHoldFreesCapacity() {
	_, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)

	// Past the TTL the hold no longer counts, even though the row is still
	// there waiting for the sweeper.
	s.clock.Add(16 * time.Minute)
	_, err = s.addRoom(uuid.New(), 9, 10)
	s.NoError(err)
	s.Len(s.store.holds, 2)
}

func (s *CartSuite) TestAddToCart_WindowValidation() {
	cases := []struct {
		name      string
		startHour int
		startMin  int
		endHour   int
	}{
		{name: "start not hour aligned", startHour: 9, startMin: 30, endHour: 11},
		{name: "start after end", startHour: 11, endHour: 9},
		{name: "start in the past", startHour: 6, endHour: 9},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			start := time.Date(2026, 3, 2, tc.startHour, tc.startMin, 0, 0, time.UTC)
			end := time.Date(2026, 3, 2, tc.endHour, 0, 0, 0, time.UTC)
			_, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
				ItemType: hold.ItemRoom,
				ItemID:   s.roomID,
				Quantity: 1,
				Start:    &start,
				End:      &end,
			})
			s.ErrorIs(err, errs.ErrInvalidRange)
		})
	}

	s.Run("missing window", func() {
		_, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
			ItemType: hold.ItemRoom,
			ItemID:   s.roomID,
			Quantity: 1,
		})
		s.ErrorIs(err, errs.ErrInvalidRange)
	})

	s.Run("closed hours", func() {
		_, err := s.addEquipment(s.userID, 1, 12, 14)
		s.ErrorIs(err, errs.ErrCapacityExceeded)
	})
}

func (s *CartSuite) TestAddToCart_UnknownResource() {
	start, end := s.window(9, 10)
	_, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
		ItemType: hold.ItemRoom,
		ItemID:   uuid.New(),
		Quantity: 1,
		Start:    start,
		End:      end,
	})
	s.ErrorIs(err, commands.ErrItemNotFound)
}

func (s *CartSuite) TestAddToCart_Product() {
	holdID, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
		ItemType: hold.ItemProduct,
		ItemID:   s.productID,
		Quantity: 3,
	})
	s.Require().NoError(err)

	h := s.store.holds[holdID]
	s.Equal(int64(4500), h.PriceCents)
	s.Nil(h.Start)
	// The hold does not decrement stock; that happens at checkout.
	s.Equal(10, s.store.products[s.productID].StockQuantity)
}

func (s *CartSuite) TestAddToCart_ProductStockAndState() {
	s.Run("quantity over stock", func() {
		_, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
			ItemType: hold.ItemProduct,
			ItemID:   s.productID,
			Quantity: 11,
		})
		s.ErrorIs(err, errs.ErrCapacityExceeded)
		s.ErrorIs(err, commands.ErrInsufficientStock)
	})

	s.Run("inactive product", func() {
		s.store.products[s.productID].Active = false
		_, err := s.cart.AddToCart(context.Background(), s.userID, commands.AddToCartInput{
			ItemType: hold.ItemProduct,
			ItemID:   s.productID,
			Quantity: 1,
		})
		s.ErrorIs(err, commands.ErrItemInactive)
	})
}

func (s *CartSuite) TestUpdateCart_ExcludesOwnHold() {
	// The room has capacity 1 and the user already holds the slot. The
	// update must not collide with the hold being updated.
	holdID, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)

	err = s.cart.UpdateCart(context.Background(), s.userID, holdID, 1)
	s.NoError(err)
}

func (s *CartSuite) TestUpdateCart_EquipmentQuantity() {
	holdID, err := s.addEquipment(s.userID, 1, 9, 10)
	s.Require().NoError(err)

	s.Require().NoError(s.cart.UpdateCart(context.Background(), s.userID, holdID, 2))
	h := s.store.holds[holdID]
	s.Equal(2, h.Quantity)
	s.Equal(int64(6000), h.PriceCents)

	// Pool capacity is 2; three units never fit.
	s.ErrorIs(s.cart.UpdateCart(context.Background(), s.userID, holdID, 3), errs.ErrCapacityExceeded)
}

func (s *CartSuite) TestUpdateCart_Guards() {
	holdID, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)

	s.Run("foreign hold", func() {
		s.ErrorIs(s.cart.UpdateCart(context.Background(), uuid.New(), holdID, 1), commands.ErrHoldNotOwned)
	})

	s.Run("unknown hold", func() {
		s.ErrorIs(s.cart.UpdateCart(context.Background(), s.userID, uuid.New(), 1), commands.ErrHoldNotFound)
	})

	s.Run("zero quantity", func() {
		s.ErrorIs(s.cart.UpdateCart(context.Background(), s.userID, holdID, 0), errs.ErrInvalidRange)
	})

	s.Run("expired hold reads as gone", func() {
		s.clock.Add(16 * time.Minute)
		s.ErrorIs(s.cart.UpdateCart(context.Background(), s.userID, holdID, 1), commands.ErrHoldNotFound)
	})
}

func (s *CartSuite) TestRemoveFromCart() {
	holdID, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)

	s.Run("foreign hold is refused", func() {
		s.ErrorIs(s.cart.RemoveFromCart(context.Background(), uuid.New(), holdID), commands.ErrHoldNotOwned)
	})

	s.Run("owner removes it", func() {
		s.Require().NoError(s.cart.RemoveFromCart(context.Background(), s.userID, holdID))
		s.Empty(s.store.holds)
	})

	s.Run("removing again is not found", func() {
		s.ErrorIs(s.cart.RemoveFromCart(context.Background(), s.userID, holdID), commands.ErrHoldNotFound)
	})
}

func (s *CartSuite) TestClearCart() {
	_, err := s.addRoom(s.userID, 9, 10)
	s.Require().NoError(err)
	_, err = s.addEquipment(s.userID, 1, 10, 11)
	s.Require().NoError(err)
	_, err = s.addRoom(uuid.New(), 14, 15)
	s.Require().NoError(err)

	removed, err := s.cart.ClearCart(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Equal(int64(2), removed)
	s.Len(s.store.holds, 1, "other users keep their holds")
}
