package retrypolicy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialDelayDoublesAndCaps(t *testing.T) {
	p := Policy{Strategy: Exponential, Base: 100 * time.Millisecond, Max: 350 * time.Millisecond, MaxRetries: 5}
	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 350*time.Millisecond, p.Delay(3), "400ms would exceed Max, so it clamps to 350ms")
}

func TestFixedAndLinearDelays(t *testing.T) {
	fixed := Policy{Strategy: Fixed, Base: 50 * time.Millisecond}
	assert.Equal(t, 50*time.Millisecond, fixed.Delay(1))
	assert.Equal(t, 50*time.Millisecond, fixed.Delay(4))

	linear := Policy{Strategy: Linear, Base: 50 * time.Millisecond}
	assert.Equal(t, 150*time.Millisecond, linear.Delay(3))
}

func TestShouldRetryRespectsMaxRetries(t *testing.T) {
	p := Policy{MaxRetries: 3}
	assert.True(t, p.ShouldRetry(1))
	assert.True(t, p.ShouldRetry(2))
	assert.False(t, p.ShouldRetry(3))
}
