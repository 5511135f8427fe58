package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError(t *testing.T) {
	cause := errors.New("pq: connection reset by peer")
	err := &OperationError{Msg: "could not create rental for student 3 and instrument 7", Cause: cause}

	t.Run("Message stays stable", func(t *testing.T) {
		assert.Equal(t, "could not create rental for student 3 and instrument 7", err.Error())
		assert.NotContains(t, err.Error(), "pq:")
	})

	t.Run("Cause reachable through Unwrap", func(t *testing.T) {
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}
