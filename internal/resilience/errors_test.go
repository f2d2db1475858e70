package resilience

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAccessDenied},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrRateLimited},
		{http.StatusInternalServerError, ErrRateLimited},
	}
	for _, tt := range tests {
		err := FromStatus(tt.status, "boom")
		assert.ErrorIs(t, err, tt.kind, "status %d", tt.status)

		var se *StatusError
		assert.ErrorAs(t, err, &se)
		assert.Equal(t, tt.status, se.StatusCode)
	}
}

func TestFromStatusUnclassified(t *testing.T) {
	err := FromStatus(http.StatusBadRequest, "bad payload")
	assert.NotErrorIs(t, err, ErrAuthentication)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "400")
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(FromStatus(http.StatusTooManyRequests, "")))
	assert.True(t, IsTransient(FromStatus(http.StatusServiceUnavailable, "")))
	assert.False(t, IsTransient(FromStatus(http.StatusUnauthorized, "")))
	assert.False(t, IsTransient(errors.New("segment missing")))
	assert.True(t, IsTransient(errors.New("read tcp: i/o timeout")))
}
