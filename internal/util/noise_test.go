package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_Deterministic(t *testing.T) {
	a := NewNoise(42, 0.05)
	b := NewNoise(42, 0.05)

	for x := -20; x <= 20; x += 5 {
		for z := -20; z <= 20; z += 5 {
			v := a.At(x, z)
			assert.Equal(t, v, b.At(x, z), "Одинаковый сид должен давать одинаковый шум")
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestNoise_PickInRange(t *testing.T) {
	n := NewNoise(7, 0.1)
	for x := 0; x < 50; x++ {
		idx := n.Pick(x, -x, 3)
		assert.True(t, idx >= 0 && idx < 3, "Индекс %d вне диапазона", idx)
	}
	assert.Equal(t, 0, n.Pick(1, 1, 1))
}
