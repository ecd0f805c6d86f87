package errs_test

import (
	"errors"
	"testing"

	"fleetkernel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("vehicle", "vehicle-0001")

		assert.Equal(t, "vehicle", err.ParamName)
		assert.Equal(t, "vehicle-0001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: vehicle-0001", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("pool is closed")
		err := errs.NewObjectNotFoundErrorWithCause("bin", "bin-7", cause)

		assert.Equal(t, "bin", err.ParamName)
		assert.Equal(t, "bin-7", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: bin, ID is: bin-7 (cause: pool is closed)",
			err.Error())
	})

	t.Run("non string ids are formatted verbatim", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("location", 42)
		assert.Equal(t, "object not found: %!s(int=42)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("skuID")
	assert.Equal(t, "value is invalid: skuID", err.Error())
	assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())

	withCause := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("-1 is negative"))
	assert.Equal(t, "value is invalid: quantity (cause: -1 is negative)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("energyLevel", 150, 0, 100)

		assert.Equal(t, "energyLevel", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is invalid: 150 is energyLevel, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("capacity", -5, 1, 64, errors.New("stack too small"))
		assert.Equal(t,
			"value is invalid: -5 is capacity, min value is 1, max value is 64 (cause: stack too small)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name", "rack\nA", 0, 10)
		assert.Contains(t, err.Error(), "rack A")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("name")
	assert.Equal(t, "value is required: name", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("name", errors.New("empty"))
	assert.Equal(t, "value is required: name (cause: empty)", withCause.Error())
	assert.Equal(t, errs.ErrValueIsRequired, withCause.Unwrap())
}

func TestErrorsCanBeClassified(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("vehicle", "v"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("sku"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("name"), errs.ErrValueIsRequired)

	wrapped := errors.Join(errors.New("other"), errs.NewObjectNotFoundError("bin", "b"))
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
}
