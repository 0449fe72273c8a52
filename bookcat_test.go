package bookcat_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/bookcat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := bookcat.Errorf(bookcat.ENOTFOUND, "product %q not found", "test")

	assert.Equal(t, bookcat.ENOTFOUND, bookcat.ErrorCode(err))
	assert.Equal(t, "product \"test\" not found", bookcat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookcat.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bookcat.EINTERNAL, bookcat.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookcat.ErrorMessage(nil))
}
