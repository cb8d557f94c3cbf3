package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func newTestBreaker() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Millisecond,
	})
}

func fail(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errBoom })
	}
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	cb := newTestBreaker()
	assert.Equal(t, CBClosed, cb.State())

	fail(cb, 3)
	assert.Equal(t, CBOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker()
	fail(cb, 2)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	fail(cb, 2)
	// 2 + reset + 2 never reaches the threshold of 3 consecutive failures.
	assert.Equal(t, CBClosed, cb.State())
}

func TestBreaker_HalfOpenProbeClosesAfterSuccesses(t *testing.T) {
	cb := newTestBreaker()
	fail(cb, 3)
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker()
	fail(cb, 3)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errBoom })
	assert.Equal(t, CBOpen, cb.State())
}
