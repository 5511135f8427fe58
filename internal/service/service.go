package service

import (
	"context"
	"time"

	"soundgood-backend/internal/domain"
)

type RentalService interface {
	// CreateRental rents the instrument to the student for one month starting
	// today. A pricingID of zero selects the school's default tier.
	CreateRental(ctx context.Context, studentID, instrumentID, pricingID int32) (*domain.Rental, error)
	// TerminateRental closes the rental as of today, keeping its history.
	TerminateRental(ctx context.Context, rentalID int32) error
	// ListAvailableInstruments lists instruments with no active rental. The
	// exclusive flag requests a locking read; plain listings tolerate staleness.
	ListAvailableInstruments(ctx context.Context, exclusive bool) ([]domain.Instrument, error)
	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ListStudentRentals(ctx context.Context, studentID int32) ([]domain.Rental, error)
	ListPricingTiers(ctx context.Context) ([]domain.RentalPricing, error)
}

type EmailService interface {
	// SendExpiryDigest mails staff the list of rentals ending soon.
	SendExpiryDigest(ctx context.Context, recipient string, expiring []ExpiringRental) error
}

// ExpiringRental is one line of the expiry digest.
type ExpiringRental struct {
	RentalID       int32
	StudentID      int32
	InstrumentName string
	EndDate        time.Time
}
