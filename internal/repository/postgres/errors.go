package postgres

import "fmt"

// StoreError marks an infrastructure failure at the store boundary: a failed
// statement, a lost connection, an unexpected affected-row count. The current
// transaction has already been rolled back by the time one of these is
// returned. Expected conditions (instrument taken, rental missing) are NOT
// StoreErrors; they surface as domain sentinels.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
