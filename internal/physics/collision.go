package physics

import (
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
)

// BlockChecker сообщает, занята ли клетка твёрдым блоком
type BlockChecker func(pos vec.Vec3) bool

// Collider – вертикальная колонна игрока высотой Height блоков.
// Позиция колонны – её верхняя клетка (уровень глаз), остальные клетки ниже.
type Collider struct {
	Height int     // Высота в блоках
	Pad    float64 // Допустимое проникновение в соседнюю клетку
}

// NewCollider создаёт коллайдер с указанными размерами
func NewCollider(height int, pad float64) *Collider {
	return &Collider{
		Height: height,
		Pad:    pad,
	}
}

// Resolve выталкивает колонну из твёрдых блоков, см. Collide
func (c *Collider) Resolve(pos vec.Vec3Float, solid BlockChecker) (vec.Vec3Float, bool) {
	return Collide(pos, c.Height, c.Pad, solid)
}

// Cells возвращает клетки, занятые колонной в позиции pos, сверху вниз
func (c *Collider) Cells(pos vec.Vec3Float) []vec.Vec3 {
	top := world.Normalize(pos)
	cells := make([]vec.Vec3, 0, c.Height)
	for dy := 0; dy < c.Height; dy++ {
		cells = append(cells, vec.Vec3{X: top.X, Y: top.Y - dy, Z: top.Z})
	}
	return cells
}

// Intersects проверяет, пересекается ли колонна с клеткой
func (c *Collider) Intersects(pos vec.Vec3Float, cell vec.Vec3) bool {
	for _, occupied := range c.Cells(pos) {
		if occupied == cell {
			return true
		}
	}
	return false
}

// Collide возвращает позицию колонны высотой height, вытолкнутую из твёрдых
// соседей. Грани обходятся в порядке world.Faces; по каждой оси колонна
// может углубиться в соседнюю клетку не больше чем на pad.
// Второй результат – колонна упёрлась в пол или потолок; вызывающий
// обнуляет вертикальную скорость.
func Collide(pos vec.Vec3Float, height int, pad float64, solid BlockChecker) (vec.Vec3Float, bool) {
	p := pos
	np := world.Normalize(pos) // Клетка считается один раз по исходной позиции
	vertical := false

	for _, face := range world.Faces {
		for axis := 0; axis < 3; axis++ {
			f := face.Get(axis)
			if f == 0 {
				continue
			}

			// Насколько колонна заходит в сторону грани
			d := (p.Get(axis) - float64(np.Get(axis))) * float64(f)
			if d < pad {
				continue
			}

			// Проверяем клетки от уровня глаз до ног
			for dy := 0; dy < height; dy++ {
				op := vec.Vec3{X: np.X, Y: np.Y - dy, Z: np.Z}
				op = op.With(axis, op.Get(axis)+f)
				if !solid(op) {
					continue
				}
				p = p.With(axis, p.Get(axis)-(d-pad)*float64(f))
				if face.Y != 0 {
					vertical = true
				}
				break
			}
		}
	}

	return p, vertical
}
