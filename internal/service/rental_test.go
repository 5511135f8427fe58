package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultPricingID = int32(1)

func newService() (service.RentalService, *MockInstrumentRepo, *MockRentalRepo, *MockPricingRepo) {
	instruments := new(MockInstrumentRepo)
	rentals := new(MockRentalRepo)
	pricing := new(MockPricingRepo)
	svc := service.NewRentalService(instruments, rentals, pricing, defaultPricingID)
	return svc, instruments, rentals, pricing
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		start := time.Now()
		end := start.AddDate(0, 1, 0)
		rentals.On("Rent", ctx, int32(3), int32(7), int32(2)).
			Return(&domain.Rental{ID: 42, InstrumentID: 7, StudentID: 3, StartDate: start, EndDate: &end, PricingID: 2}, nil)

		rental, err := svc.CreateRental(ctx, 3, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, int32(42), rental.ID)
		rentals.AssertExpectations(t)
	})

	t.Run("Zero pricing id falls back to default tier", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rentals.On("Rent", ctx, int32(3), int32(7), defaultPricingID).
			Return(&domain.Rental{ID: 43, PricingID: defaultPricingID}, nil)

		rental, err := svc.CreateRental(ctx, 3, 7, 0)
		require.NoError(t, err)
		assert.Equal(t, defaultPricingID, rental.PricingID)
		rentals.AssertExpectations(t)
	})

	t.Run("Missing student id", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rental, err := svc.CreateRental(ctx, 0, 7, 1)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrMissingStudentID)
		rentals.AssertNotCalled(t, "Rent")
	})

	t.Run("Missing instrument id", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rental, err := svc.CreateRental(ctx, 3, 0, 1)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrMissingInstrumentID)
		rentals.AssertNotCalled(t, "Rent")
	})

	t.Run("Instrument not available passes through", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rentals.On("Rent", ctx, int32(3), int32(7), defaultPricingID).
			Return(nil, domain.ErrInstrumentNotAvailable)

		rental, err := svc.CreateRental(ctx, 3, 7, 0)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrInstrumentNotAvailable)
	})

	t.Run("Store failure is wrapped", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		cause := errors.New("pq: connection reset")
		rentals.On("Rent", ctx, int32(3), int32(7), defaultPricingID).Return(nil, cause)

		rental, err := svc.CreateRental(ctx, 3, 7, 0)
		assert.Nil(t, rental)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "could not create rental for student 3 and instrument 7", err.Error())
		assert.NotContains(t, err.Error(), "pq:")
	})
}

func TestRentalService_TerminateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rentals.On("Terminate", ctx, int32(42)).Return(nil)

		err := svc.TerminateRental(ctx, 42)
		assert.NoError(t, err)
		rentals.AssertExpectations(t)
	})

	t.Run("Missing rental id", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		err := svc.TerminateRental(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrMissingRentalID)
		rentals.AssertNotCalled(t, "Terminate")
	})

	t.Run("Not found passes through", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rentals.On("Terminate", ctx, int32(42)).Return(domain.ErrRentalNotFound)

		err := svc.TerminateRental(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})

	t.Run("Store failure is wrapped", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		cause := errors.New("pq: connection reset")
		rentals.On("Terminate", ctx, int32(42)).Return(cause)

		err := svc.TerminateRental(ctx, 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "could not terminate rental 42", err.Error())
		assert.NotContains(t, err.Error(), "pq:")
	})
}

func TestRentalService_ListAvailableInstruments(t *testing.T) {
	ctx := context.Background()

	t.Run("Passthrough", func(t *testing.T) {
		svc, instruments, _, _ := newService()

		available := []domain.Instrument{{ID: 1, Name: "Stratocaster"}}
		instruments.On("ListAvailable", ctx, false).Return(available, nil)

		got, err := svc.ListAvailableInstruments(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, available, got)
	})

	t.Run("Exclusive flag forwarded", func(t *testing.T) {
		svc, instruments, _, _ := newService()

		instruments.On("ListAvailable", ctx, true).Return([]domain.Instrument{}, nil)

		_, err := svc.ListAvailableInstruments(ctx, true)
		require.NoError(t, err)
		instruments.AssertCalled(t, "ListAvailable", ctx, true)
	})

	t.Run("Failure is wrapped", func(t *testing.T) {
		svc, instruments, _, _ := newService()

		cause := errors.New("pq: connection reset")
		instruments.On("ListAvailable", ctx, false).Return(nil, cause)

		got, err := svc.ListAvailableInstruments(ctx, false)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, cause)
		assert.NotContains(t, err.Error(), "pq:")
	})
}

func TestRentalService_ListStudentRentals(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		rentals.On("ListByStudent", ctx, int32(3)).
			Return([]domain.Rental{{ID: 1, StudentID: 3}}, nil)

		got, err := svc.ListStudentRentals(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("Missing student id", func(t *testing.T) {
		svc, _, rentals, _ := newService()

		got, err := svc.ListStudentRentals(ctx, 0)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrMissingStudentID)
		rentals.AssertNotCalled(t, "ListByStudent")
	})
}

func TestRentalService_ListPricingTiers(t *testing.T) {
	svc, _, _, pricing := newService()
	ctx := context.Background()

	pricing.On("ListTiers", ctx).
		Return([]domain.RentalPricing{{ID: 1, Name: "standard", PriceCents: 4900}}, nil)

	tiers, err := svc.ListPricingTiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, "standard", tiers[0].Name)
}
