package world

import (
	"github.com/annel0/voxel-world/internal/vec"
)

// HitTestSubdivisions – число шагов луча на один блок
const HitTestSubdivisions = 8

// DefaultReach – дальность луча по умолчанию, в блоках
const DefaultReach = 8.0

// HitTest идёт от origin вдоль единичного вектора direction шагами по 1/8 блока
// и возвращает первую занятую клетку и клетку, пройденную перед ней
// (туда ставится новый блок). Если до maxDistance ничего не встречено,
// оба результата nil. previous равен nil, когда занята уже стартовая клетка.
func (w *World) HitTest(origin, direction vec.Vec3Float, maxDistance float64) (hit, previous *vec.Vec3) {
	step := direction.Mul(1.0 / HitTestSubdivisions)
	steps := int(maxDistance * HitTestSubdivisions)

	p := origin
	var prev *vec.Vec3
	for i := 0; i < steps; i++ {
		key := Normalize(p)
		if (prev == nil || key != *prev) && w.IsSolid(key) {
			return &key, prev
		}
		k := key
		prev = &k
		p = p.Add(step)
	}
	return nil, nil
}
