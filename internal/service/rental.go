package service

import (
	"context"
	"errors"
	"fmt"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/logger"
	"soundgood-backend/internal/repository"
)

// opErr hides a repository failure behind a stable message. Driver and
// connection details stay out of Error() and are only reachable by unwrapping.
func opErr(cause error, format string, args ...any) error {
	return &domain.OperationError{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

type rentalService struct {
	instruments      repository.InstrumentRepository
	rentals          repository.RentalRepository
	pricing          repository.PricingRepository
	defaultPricingID int32
}

func NewRentalService(
	instruments repository.InstrumentRepository,
	rentals repository.RentalRepository,
	pricing repository.PricingRepository,
	defaultPricingID int32,
) RentalService {
	return &rentalService{
		instruments:      instruments,
		rentals:          rentals,
		pricing:          pricing,
		defaultPricingID: defaultPricingID,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, studentID, instrumentID, pricingID int32) (*domain.Rental, error) {
	if studentID == 0 {
		return nil, domain.ErrMissingStudentID
	}
	if instrumentID == 0 {
		return nil, domain.ErrMissingInstrumentID
	}
	if pricingID == 0 {
		pricingID = s.defaultPricingID
	}

	// Availability is checked by the store inside the same transaction as the
	// insert, under a row lock on the instrument. Checking it here first would
	// reintroduce the read-then-write race this design exists to avoid.
	rental, err := s.rentals.Rent(ctx, studentID, instrumentID, pricingID)
	if err != nil {
		if errors.Is(err, domain.ErrInstrumentNotAvailable) {
			return nil, err
		}
		return nil, opErr(err, "could not create rental for student %d and instrument %d", studentID, instrumentID)
	}

	logger.Info("Rental created", "rental_id", rental.ID, "student_id", studentID, "instrument_id", instrumentID)
	return rental, nil
}

func (s *rentalService) TerminateRental(ctx context.Context, rentalID int32) error {
	if rentalID == 0 {
		return domain.ErrMissingRentalID
	}

	if err := s.rentals.Terminate(ctx, rentalID); err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			return err
		}
		return opErr(err, "could not terminate rental %d", rentalID)
	}

	logger.Info("Rental terminated", "rental_id", rentalID)
	return nil
}

func (s *rentalService) ListAvailableInstruments(ctx context.Context, exclusive bool) ([]domain.Instrument, error) {
	instruments, err := s.instruments.ListAvailable(ctx, exclusive)
	if err != nil {
		return nil, opErr(err, "could not list available instruments")
	}
	return instruments, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	if rentalID == 0 {
		return nil, domain.ErrMissingRentalID
	}
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			return nil, err
		}
		return nil, opErr(err, "could not get rental %d", rentalID)
	}
	return rental, nil
}

func (s *rentalService) ListStudentRentals(ctx context.Context, studentID int32) ([]domain.Rental, error) {
	if studentID == 0 {
		return nil, domain.ErrMissingStudentID
	}
	rentals, err := s.rentals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, opErr(err, "could not list rentals for student %d", studentID)
	}
	return rentals, nil
}

func (s *rentalService) ListPricingTiers(ctx context.Context) ([]domain.RentalPricing, error) {
	tiers, err := s.pricing.ListTiers(ctx)
	if err != nil {
		return nil, opErr(err, "could not list pricing tiers")
	}
	return tiers, nil
}
