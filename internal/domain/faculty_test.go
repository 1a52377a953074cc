package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveLockoutHours(t *testing.T) {
	t.Run("configured window", func(t *testing.T) {
		f := Faculty{LockoutHours: 12}
		assert.Equal(t, 12, f.EffectiveLockoutHours())
	})

	t.Run("zero means admin disabled the window", func(t *testing.T) {
		f := Faculty{LockoutHours: 0}
		assert.Equal(t, 0, f.EffectiveLockoutHours())
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		f := Faculty{LockoutHours: -1}
		assert.Equal(t, 0, f.EffectiveLockoutHours())
	})
}

func TestCancellationPolicyIsValid(t *testing.T) {
	assert.True(t, CancellationDirect.IsValid())
	assert.True(t, CancellationApproval.IsValid())
	assert.False(t, CancellationPolicy("вручную").IsValid())
}
