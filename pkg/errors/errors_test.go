package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeNothingToDeduct, http.StatusBadRequest},
		{CodeNothingToUndo, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotOwner, http.StatusForbidden},
		{CodeRecipeNotFound, http.StatusNotFound},
		{CodeItemNotFound, http.StatusNotFound},
		{CodeInsufficientStock, http.StatusConflict},
		{CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, NewAppError(tt.code, "m", "").StatusCode())
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, NewDatabaseError("x", stderrors.New("boom")).Retryable())
	assert.True(t, NewInternalError("").Retryable())
	assert.False(t, NewNotOwnerError("id").Retryable())
	assert.False(t, NewInsufficientStockError("flour").Retryable())
}

func TestFromDomainMapsSentinels(t *testing.T) {
	tests := []struct {
		sentinel error
		code     ErrorCode
	}{
		{pantry.ErrRecipeNotFound, CodeRecipeNotFound},
		{pantry.ErrNotOwner, CodeNotOwner},
		{pantry.ErrInsufficientStock, CodeInsufficientStock},
		{pantry.ErrItemMissing, CodeItemNotFound},
		{pantry.ErrNothingToDeduct, CodeNothingToDeduct},
		{pantry.ErrNothingToUndo, CodeNothingToUndo},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got := FromDomain(tt.sentinel)
			assert.Equal(t, tt.code, got.Code)
			assert.ErrorIs(t, got, tt.sentinel, "sentinel must survive the mapping")
		})
	}
}

func TestFromDomainWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("%w: flour", pantry.ErrInsufficientStock)
	got := FromDomain(err)
	assert.Equal(t, CodeInsufficientStock, got.Code)
	assert.ErrorIs(t, got, pantry.ErrInsufficientStock)
}

func TestFromDomainPassthrough(t *testing.T) {
	assert.Nil(t, FromDomain(nil))

	appErr := NewValidationError("bad line")
	assert.Same(t, appErr, FromDomain(appErr))

	unknown := FromDomain(stderrors.New("socket closed"))
	assert.Equal(t, CodeDatabaseError, unknown.Code)
}

func TestWrapKeepsCode(t *testing.T) {
	inner := NewRecipeNotFoundError("abc")
	wrapped := Wrap(inner, "confirm use")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeRecipeNotFound, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner)
}
