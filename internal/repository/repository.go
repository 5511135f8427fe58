package repository

import (
	"context"

	"soundgood-backend/internal/domain"
)

type InstrumentRepository interface {
	// ListAvailable returns every instrument with no active rental. With
	// exclusive set, the qualifying instrument rows are read FOR UPDATE and
	// stay locked until the enclosing transaction ends.
	ListAvailable(ctx context.Context, exclusive bool) ([]domain.Instrument, error)
}

type RentalRepository interface {
	// Rent atomically verifies availability under a row lock and inserts the
	// rental. Returns domain.ErrInstrumentNotAvailable when the instrument is
	// missing or already rented; nothing is written in that case.
	Rent(ctx context.Context, studentID, instrumentID, pricingID int32) (*domain.Rental, error)
	// Terminate soft-closes the identified active rental by setting its end
	// date to the current date. Returns domain.ErrRentalNotFound when no
	// active rental matched.
	Terminate(ctx context.Context, rentalID int32) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByStudent(ctx context.Context, studentID int32) ([]domain.Rental, error)
}

type PricingRepository interface {
	ListTiers(ctx context.Context) ([]domain.RentalPricing, error)
}
