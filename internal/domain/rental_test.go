package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRental_Active(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	t.Run("Nil end date is active", func(t *testing.T) {
		r := &Rental{EndDate: nil}
		assert.True(t, r.Active(now))
	})

	t.Run("Future end date is active", func(t *testing.T) {
		r := &Rental{EndDate: &future}
		assert.True(t, r.Active(now))
	})

	t.Run("Past end date is closed", func(t *testing.T) {
		r := &Rental{EndDate: &past}
		assert.False(t, r.Active(now))
	})

	t.Run("End date equal to now is closed", func(t *testing.T) {
		r := &Rental{EndDate: &now}
		assert.False(t, r.Active(now))
	})
}
