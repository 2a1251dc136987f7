package vec

// Vec2 представляет 2D целочисленные координаты.
// Используется для координат секторов (X, Z) и для намерения стрейфа.
type Vec2 struct {
	X, Y int
}

// FloorDiv делит координаты на size с округлением вниз (корректно для отрицательных)
func (v Vec2) FloorDiv(size int) Vec2 {
	return Vec2{X: floorDiv(v.X, size), Y: floorDiv(v.Y, size)}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
