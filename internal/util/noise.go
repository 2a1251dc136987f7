package util

import (
	"github.com/aquilax/go-perlin"
)

// Noise – сидированный генератор шума Перлина
type Noise struct {
	perlin *perlin.Perlin
	Scale  float64
}

// NewNoise создаёт генератор шума с указанным сидом и масштабом координат
func NewNoise(seed int64, scale float64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &Noise{
		perlin: perlin.NewPerlin(alpha, beta, n, seed),
		Scale:  scale,
	}
}

// At возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) At(x, z int) float64 {
	// Значение шума лежит примерно в [-1, 1]
	v := n.perlin.Noise2D(float64(x)*n.Scale, float64(z)*n.Scale)

	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Pick выбирает элемент из n вариантов по значению шума в точке
func (n *Noise) Pick(x, z, count int) int {
	if count <= 1 {
		return 0
	}
	idx := int(n.At(x, z) * float64(count))
	if idx >= count {
		idx = count - 1
	}
	return idx
}
