package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWithinLockout(t *testing.T) {
	now := time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)

	t.Run("slot too close is locked", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		assert.True(t, IsWithinLockout(now, start, 4))
	})

	t.Run("slot far enough is open", func(t *testing.T) {
		start := now.Add(5 * time.Hour)
		assert.False(t, IsWithinLockout(now, start, 4))
	})

	t.Run("exact boundary is open", func(t *testing.T) {
		start := now.Add(4 * time.Hour)
		assert.False(t, IsWithinLockout(now, start, 4))
	})

	t.Run("slot in the past is locked", func(t *testing.T) {
		start := now.Add(-time.Hour)
		assert.True(t, IsWithinLockout(now, start, 4))
	})

	t.Run("zero window only locks past slots", func(t *testing.T) {
		assert.False(t, IsWithinLockout(now, now.Add(time.Minute), 0))
		assert.True(t, IsWithinLockout(now, now.Add(-time.Minute), 0))
	})
}
