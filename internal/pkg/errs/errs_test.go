//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"slotboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("sentinel is visible to errors.Is", func(t *testing.T) {
		cause := errs.New("duplicate key value violates unique constraint")
		marked := errs.Mark(cause, errs.ErrSlotTaken)

		require.ErrorIs(t, marked, errs.ErrSlotTaken)
		require.ErrorIs(t, marked, cause)
	})

	t.Run("identity survives further wrapping", func(t *testing.T) {
		marked := errs.Mark(errs.New("no rows in result set"), errs.ErrSlotNotFound)
		wrapped := errs.Wrap(marked, "reserve slot")

		require.ErrorIs(t, wrapped, errs.ErrSlotNotFound)
	})

	t.Run("nil cause yields the sentinel alone", func(t *testing.T) {
		assert.Equal(t, errs.ErrUserNotFound, errs.Mark(nil, errs.ErrUserNotFound))
	})

	t.Run("does not match unrelated sentinels", func(t *testing.T) {
		marked := errs.Mark(errs.New("boom"), errs.ErrSlotTaken)
		assert.False(t, errors.Is(marked, errs.ErrSlotNotFound))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
