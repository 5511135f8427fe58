package postgres

import (
	"context"
	"database/sql"

	"soundgood-backend/internal/domain"
	"soundgood-backend/internal/logger"
)

// ListAvailable returns every instrument that has no active rental, joined
// with its current pricing tier. No ordering is guaranteed.
//
// With exclusive set, the read runs inside its own transaction and takes row
// locks on the qualifying instrument rows (SELECT ... FOR UPDATE). The locks
// are released when the transaction commits on return, so an exclusive listing
// on its own only serializes against concurrent rent attempts while it runs;
// the rent path takes the same lock and re-verifies before inserting.
func (s *Store) ListAvailable(ctx context.Context, exclusive bool) ([]domain.Instrument, error) {
	const op = "list available instruments"
	logger.DatabaseCall(op, "exclusive", exclusive)

	if !exclusive {
		rows, err := s.listAvailable.QueryContext(ctx)
		if err != nil {
			return nil, storeErr(op, err)
		}
		defer rows.Close()
		instruments, err := scanInstruments(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		return instruments, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr(op, err)
	}
	rows, err := tx.StmtContext(ctx, s.listAvailableLocked).QueryContext(ctx)
	if err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}
	instruments, err := scanInstruments(rows)
	rows.Close()
	if err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, rollbackAndWrap(tx, op, err)
	}
	return instruments, nil
}

func scanInstruments(rows *sql.Rows) ([]domain.Instrument, error) {
	var instruments []domain.Instrument
	for rows.Next() {
		var in domain.Instrument
		if err := rows.Scan(&in.ID, &in.Name, &in.Type, &in.Brand, &in.PriceCents, &in.PricingID); err != nil {
			return nil, err
		}
		instruments = append(instruments, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return instruments, nil
}
