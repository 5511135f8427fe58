package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/logger"
)

// Rent creates a rental for the given student and instrument. The availability
// check and the insert share one transaction: the instrument row is read FOR
// UPDATE, availability is re-verified while the lock is held, and only then is
// the rental inserted. Of two concurrent attempts on the same instrument one
// blocks on the row lock until the other commits, then observes the new rental
// and fails with domain.ErrInstrumentNotAvailable.
//
// The rental starts today and runs one calendar month; the pricing tier is
// snapshotted on the rental row.
func (s *Store) Rent(ctx context.Context, studentID, instrumentID, pricingID int32) (*domain.Rental, error) {
	op := fmt.Sprintf("create rental for student %d and instrument %d", studentID, instrumentID)
	logger.DatabaseCall(op, "pricing_id", pricingID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr(op, err)
	}

	// Serialize on the instrument row. No row at all means the instrument
	// does not exist, which the caller cannot tell apart from "taken".
	var locked domain.Instrument
	err = tx.StmtContext(ctx, s.lockInstrument).QueryRowContext(ctx, instrumentID).
		Scan(&locked.ID, &locked.Name, &locked.Type, &locked.Brand, &locked.PriceCents, &locked.PricingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rollbackDomain(tx, op, domain.ErrInstrumentNotAvailable)
	}
	if err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}

	// Re-check under the lock. The statement runs on a fresh snapshot, so a
	// rental committed while we waited for the row lock is visible here.
	var taken bool
	if err := tx.StmtContext(ctx, s.hasActiveRental).QueryRowContext(ctx, instrumentID).Scan(&taken); err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}
	if taken {
		return nil, rollbackDomain(tx, op, domain.ErrInstrumentNotAvailable)
	}

	start := truncateToDate(time.Now())
	end := start.AddDate(0, 1, 0)
	rental := &domain.Rental{
		InstrumentID: instrumentID,
		StudentID:    studentID,
		StartDate:    start,
		EndDate:      &end,
		PricingID:    pricingID,
	}
	err = tx.StmtContext(ctx, s.insertRental).
		QueryRowContext(ctx, instrumentID, start, end, studentID, pricingID).
		Scan(&rental.ID)
	if err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}
	logger.DatabaseResult(op, 1, nil, "rental_id", rental.ID)
	return rental, nil
}

// Terminate soft-closes a rental by setting its end date to the current date.
// The row is kept for history and becomes immutable once the end date is past.
// Exactly one row must be affected; zero rows means no active rental matched.
func (s *Store) Terminate(ctx context.Context, rentalID int32) error {
	op := fmt.Sprintf("terminate rental %d", rentalID)
	logger.DatabaseCall(op)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(op, err)
	}
	res, err := tx.StmtContext(ctx, s.closeRental).ExecContext(ctx, rentalID)
	if err != nil {
		return rollbackAndWrap(tx, op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return rollbackAndWrap(tx, op, err)
	}
	if affected == 0 {
		return rollbackDomain(tx, op, domain.ErrRentalNotFound)
	}
	if affected != 1 {
		return rollbackAndWrap(tx, op, fmt.Errorf("expected 1 affected row, got %d", affected))
	}
	if err := tx.Commit(); err != nil {
		return rollbackAndWrap(tx, op, err)
	}
	logger.DatabaseResult(op, affected, nil)
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	r := &domain.Rental{}
	var end sql.NullTime
	err := s.getRental.QueryRowContext(ctx, id).
		Scan(&r.ID, &r.InstrumentID, &r.StudentID, &r.StartDate, &end, &r.PricingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, storeErr(fmt.Sprintf("get rental %d", id), err)
	}
	if end.Valid {
		r.EndDate = &end.Time
	}
	return r, nil
}

func (s *Store) ListByStudent(ctx context.Context, studentID int32) ([]domain.Rental, error) {
	op := fmt.Sprintf("list rentals for student %d", studentID)
	rows, err := s.listByStudent.QueryContext(ctx, studentID)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var r domain.Rental
		var end sql.NullTime
		if err := rows.Scan(&r.ID, &r.InstrumentID, &r.StudentID, &r.StartDate, &end, &r.PricingID); err != nil {
			return nil, storeErr(op, err)
		}
		if end.Valid {
			r.EndDate = &end.Time
		}
		rentals = append(rentals, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return rentals, nil
}

// rollbackDomain undoes the transaction and passes the domain sentinel through
// untouched, so callers can still branch on it with errors.Is.
func rollbackDomain(tx *sql.Tx, op string, sentinel error) error {
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		logger.Error("Transaction rollback failed", "operation", op, "error", rbErr)
		return storeErr(op, fmt.Errorf("%w (rollback failed: %v)", sentinel, rbErr))
	}
	return sentinel
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
