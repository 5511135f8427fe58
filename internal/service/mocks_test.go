package service_test

import (
	"context"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockInstrumentRepo
type MockInstrumentRepo struct {
	mock.Mock
}

func (m *MockInstrumentRepo) ListAvailable(ctx context.Context, exclusive bool) ([]domain.Instrument, error) {
	args := m.Called(ctx, exclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instrument), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Rent(ctx context.Context, studentID, instrumentID, pricingID int32) (*domain.Rental, error) {
	args := m.Called(ctx, studentID, instrumentID, pricingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Terminate(ctx context.Context, rentalID int32) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByStudent(ctx context.Context, studentID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockPricingRepo
type MockPricingRepo struct {
	mock.Mock
}

func (m *MockPricingRepo) ListTiers(ctx context.Context) ([]domain.RentalPricing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalPricing), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendExpiryDigest(ctx context.Context, recipient string, expiring []service.ExpiringRental) error {
	args := m.Called(ctx, recipient, expiring)
	return args.Error(0)
}
