package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"soundgood-backend/internal/logger"

	_ "github.com/lib/pq"
)

// Statement texts, prepared once at construction. An instrument is considered
// rented while some rental row for it has a null end date or an end date after
// the current date; availability is always derived from that, never stored.
const (
	listAvailableSQL = `SELECT i.id, i.name, i.type, i.brand, p.price_cents, p.id
	FROM instruments i
	JOIN rental_pricings p ON p.id = i.pricing_id
	WHERE i.id NOT IN (
		SELECT r.instrument_id FROM rentals r
		WHERE r.end_date IS NULL OR r.end_date > CURRENT_DATE
	)`

	listAvailableLockedSQL = listAvailableSQL + ` FOR UPDATE OF i`

	lockInstrumentSQL = `SELECT i.id, i.name, i.type, i.brand, p.price_cents, p.id
	FROM instruments i
	JOIN rental_pricings p ON p.id = i.pricing_id
	WHERE i.id = $1
	FOR UPDATE OF i`

	hasActiveRentalSQL = `SELECT EXISTS (
		SELECT 1 FROM rentals r
		WHERE r.instrument_id = $1 AND (r.end_date IS NULL OR r.end_date > CURRENT_DATE)
	)`

	insertRentalSQL = `INSERT INTO rentals (instrument_id, start_date, end_date, student_id, pricing_id)
	VALUES ($1, $2, $3, $4, $5) RETURNING id`

	closeRentalSQL = `UPDATE rentals SET end_date = CURRENT_DATE
	WHERE id = $1 AND (end_date IS NULL OR end_date > CURRENT_DATE)`

	getRentalSQL = `SELECT id, instrument_id, student_id, start_date, end_date, pricing_id
	FROM rentals WHERE id = $1`

	listRentalsByStudentSQL = `SELECT id, instrument_id, student_id, start_date, end_date, pricing_id
	FROM rentals WHERE student_id = $1`

	listPricingSQL = `SELECT id, name, price_cents FROM rental_pricings`
)

// Store is the sole owner of the database handle and of every prepared
// statement. Each exported operation is atomic from the caller's point of
// view: it either commits or rolls back internally before returning an error.
type Store struct {
	db *sql.DB

	listAvailable       *sql.Stmt
	listAvailableLocked *sql.Stmt
	lockInstrument      *sql.Stmt
	hasActiveRental     *sql.Stmt
	insertRental        *sql.Stmt
	closeRental         *sql.Stmt
	getRental           *sql.Stmt
	listByStudent       *sql.Stmt
	listPricing         *sql.Stmt
}

// NewStore verifies connectivity and prepares all statements. Any failure here
// is fatal for the store: the returned error means the store must not be used.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, storeErr("connect", err)
	}

	s := &Store{db: db}
	for _, p := range []struct {
		dst  **sql.Stmt
		name string
		text string
	}{
		{&s.listAvailable, "list available instruments", listAvailableSQL},
		{&s.listAvailableLocked, "list available instruments for update", listAvailableLockedSQL},
		{&s.lockInstrument, "lock instrument", lockInstrumentSQL},
		{&s.hasActiveRental, "check active rental", hasActiveRentalSQL},
		{&s.insertRental, "insert rental", insertRentalSQL},
		{&s.closeRental, "close rental", closeRentalSQL},
		{&s.getRental, "get rental", getRentalSQL},
		{&s.listByStudent, "list rentals by student", listRentalsByStudentSQL},
		{&s.listPricing, "list pricing tiers", listPricingSQL},
	} {
		stmt, err := db.PrepareContext(ctx, p.text)
		if err != nil {
			s.Close()
			return nil, storeErr("prepare "+p.name, err)
		}
		*p.dst = stmt
	}
	return s, nil
}

// Close releases the prepared statements. The *sql.DB itself is closed by
// whoever opened it.
func (s *Store) Close() error {
	var firstErr error
	for _, stmt := range []*sql.Stmt{
		s.listAvailable, s.listAvailableLocked, s.lockInstrument, s.hasActiveRental,
		s.insertRental, s.closeRental, s.getRental, s.listByStudent, s.listPricing,
	} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// rollbackAndWrap undoes the transaction before re-signaling the failure, so
// the connection is always ready for the next unit of work. A rollback failure
// is appended to the message the way the commit/rollback pair is reported.
func rollbackAndWrap(tx *sql.Tx, op string, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		logger.Error("Transaction rollback failed", "operation", op, "error", rbErr)
		return storeErr(op, fmt.Errorf("%w (rollback failed: %v)", cause, rbErr))
	}
	return storeErr(op, cause)
}
