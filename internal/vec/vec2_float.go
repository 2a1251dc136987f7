package vec

import "math"

// Vec2Float представляет 2D координаты с плавающей точкой.
// Для игрока хранит поворот камеры: X – рыскание (yaw), Y – тангаж (pitch), в градусах.
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// ClampY ограничивает компоненту Y диапазоном [lo, hi]
func (v Vec2Float) ClampY(lo, hi float64) Vec2Float {
	v.Y = math.Max(lo, math.Min(hi, v.Y))
	return v
}
