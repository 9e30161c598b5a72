package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderEffectiveStatus(t *testing.T) {
	now := time.Now()

	pending := &Order{Status: OrderStatusPending, ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, OrderStatusPending, pending.EffectiveStatus(now))

	stale := &Order{Status: OrderStatusPending, ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, OrderStatusExpired, stale.EffectiveStatus(now),
		"pending order past its window reads as expired")

	// Terminal states are never reclassified by the clock.
	delivered := &Order{Status: OrderStatusDelivered, ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, OrderStatusDelivered, delivered.EffectiveStatus(now))

	cancelled := &Order{Status: OrderStatusCancelled, ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, OrderStatusCancelled, cancelled.EffectiveStatus(now))
}

func TestOrderIsExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Order{ExpiresAt: now.Add(time.Minute)}).IsExpired(now))
	assert.True(t, (&Order{ExpiresAt: now.Add(-time.Minute)}).IsExpired(now))
}
