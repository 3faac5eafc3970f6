package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("counter", "Sydney_2024-05-14_sameday")

		assert.Equal(t, "counter", err.ParamName)
		assert.Equal(t, "Sydney_2024-05-14_sameday", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: Sydney_2024-05-14_sameday", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("redis: connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("counter", "Perth_2024-05-14_nextday", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: counter, ID is: Perth_2024-05-14_nextday (cause: redis: connection refused)",
			err.Error())
	})

	t.Run("non string identifiers are formatted with %s", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("batch", 7)
		assert.Equal(t, "object not found: %!s(int=7)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("delivery type")

		assert.Equal(t, "value is invalid: delivery type", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New(`"24:61" is not HH:MM`)
		err := errs.NewValueIsInvalidErrorWithCause("cutoff", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, `value is invalid: cutoff (cause: "24:61" is not HH:MM)`, err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("stage flags", 12, 10, 10)

		assert.Equal(t, 12, err.Value)
		assert.Equal(t, "value is invalid: 12 is stage flags, min value is 10, max value is 10", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("too long")
		err := errs.NewValueIsOutOfRangeErrorWithCause("row limit", -1, 0, 500, cause)

		assert.Equal(t,
			"value is invalid: -1 is row limit, min value is 0, max value is 500 (cause: too long)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("order number", "A1\nB2", 0, 10)
		assert.Contains(t, err.Error(), "A1 B2")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("location")

		assert.Equal(t, "value is required: location", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("empty string")
		err := errs.NewValueIsRequiredErrorWithCause("store tag", cause)

		assert.Equal(t, "value is required: store tag (cause: empty string)", err.Error())
	})
}

func TestErrorsMatchSentinels(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("counter", "k"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 0, 0), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)

	wrapped := errors.Join(errors.New("seed failed"), errs.NewValueIsRequiredError("date"))
	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
}
