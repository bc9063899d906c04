package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	err := SetCustomError(constant.ErrConfirmNotPending)

	assert.Equal(t, "only pending reservations can be confirmed", err.Error())
	assert.Equal(t, "0012", err.ErrorCode())
	assert.Equal(t, http.StatusBadRequest, err.ErrorHTTPCode())
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("confirm: %w", SetCustomError(constant.ErrInsufficientStock))

	assert.True(t, Is(wrapped, constant.ErrInsufficientStock))
	assert.False(t, Is(wrapped, constant.ErrNotFound))
	assert.False(t, Is(fmt.Errorf("plain"), constant.ErrInsufficientStock))
}

func TestEveryErrorTypeIsMapped(t *testing.T) {
	for et := range constant.ErrorTypeMessage {
		_, ok := constant.ErrorTypeHTTPCode[et]
		assert.True(t, ok, "missing http code for %d", et)
		_, ok = constant.ErrorTypeCode[et]
		assert.True(t, ok, "missing code for %d", et)
	}
}
