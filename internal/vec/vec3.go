package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Это координата блока в воксельной сетке: ось Y вертикальна.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ToVec2 проецирует координату на горизонтальную плоскость (X, Z)
func (v Vec3) ToVec2() Vec2 {
	return Vec2{
		X: v.X,
		Y: v.Z,
	}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Get возвращает компоненту по индексу оси (0 – X, 1 – Y, 2 – Z)
func (v Vec3) Get(axis int) int {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// With возвращает копию вектора с заменённой компонентой
func (v Vec3) With(axis, value int) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Up, Down, Left, Right, Front, Back возвращают соседние клетки
func (v Vec3) Up() Vec3    { return Vec3{v.X, v.Y + 1, v.Z} }
func (v Vec3) Down() Vec3  { return Vec3{v.X, v.Y - 1, v.Z} }
func (v Vec3) Left() Vec3  { return Vec3{v.X - 1, v.Y, v.Z} }
func (v Vec3) Right() Vec3 { return Vec3{v.X + 1, v.Y, v.Z} }
func (v Vec3) Front() Vec3 { return Vec3{v.X, v.Y, v.Z + 1} }
func (v Vec3) Back() Vec3  { return Vec3{v.X, v.Y, v.Z - 1} }

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Get возвращает компоненту по индексу оси
func (v Vec3Float) Get(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// With возвращает копию вектора с заменённой компонентой
func (v Vec3Float) With(axis int, value float64) Vec3Float {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Round округляет каждую компоненту до ближайшего целого (половина – от нуля).
// Клетка блока (x, y, z) занимает [x-0.5, x+0.5) по каждой оси.
func (v Vec3Float) Round() Vec3 {
	return Vec3{
		X: int(math.Round(v.X)),
		Y: int(math.Round(v.Y)),
		Z: int(math.Round(v.Z)),
	}
}
