package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem_NeverDecreases(t *testing.T) {
	clk := NewSystem()

	prev := clk.NowNS()
	for i := 0; i < 1000; i++ {
		now := clk.NowNS()
		assert.GreaterOrEqual(t, now, prev)
		prev = now
	}
}

func TestManual_Advance(t *testing.T) {
	clk := NewManual(100)

	assert.Equal(t, uint64(100), clk.NowNS())
	clk.Advance(50)
	assert.Equal(t, uint64(150), clk.NowNS())
	assert.Equal(t, uint64(150), clk.NowNS())
}
