package world

import (
	"testing"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, vec.Vec3{X: 1, Y: -1, Z: 0}, Normalize(vec.Vec3Float{X: 0.5, Y: -0.5, Z: 0.49}),
		"Половина округляется от нуля")
	assert.Equal(t, vec.Vec3{X: 3, Y: -3, Z: 2}, Normalize(vec.Vec3Float{X: 2.6, Y: -2.6, Z: 2.4}))
}

func TestSectorize(t *testing.T) {
	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, Sectorize(vec.Vec3Float{X: 15.4, Y: 100, Z: 0}, DefaultSectorSize))
	assert.Equal(t, vec.Vec2{X: 1, Y: 0}, Sectorize(vec.Vec3Float{X: 15.5}, DefaultSectorSize),
		"15.5 округляется до 16 – это уже следующий сектор")
	assert.Equal(t, vec.Vec2{X: -1, Y: -1}, Sectorize(vec.Vec3Float{X: -0.6, Z: -16}, DefaultSectorSize),
		"Отрицательные координаты делятся с округлением вниз")
	assert.Equal(t, vec.Vec2{X: -2, Y: 0}, SectorOf(vec.Vec3{X: -17, Y: -5, Z: 15}, DefaultSectorSize))
}

func TestNeighbors(t *testing.T) {
	c := vec.Vec3{X: 1, Y: 1, Z: 1}
	n := Neighbors(c)
	assert.Equal(t, vec.Vec3{X: 1, Y: 2, Z: 1}, n[0], "Первая грань – верх")
	assert.Equal(t, vec.Vec3{X: 1, Y: 1, Z: 0}, n[5], "Последняя грань – зад")
	assert.Equal(t, [6]vec.Vec3{c.Up(), c.Down(), c.Left(), c.Right(), c.Front(), c.Back()}, n,
		"Порядок соседей совпадает с порядком Faces")

	seen := make(map[vec.Vec3]bool)
	for _, p := range n {
		d := abs(float64(p.X-c.X)) + abs(float64(p.Y-c.Y)) + abs(float64(p.Z-c.Z))
		assert.Equal(t, 1.0, d, "Сосед отстоит ровно на одну клетку")
		seen[p] = true
	}
	assert.Len(t, seen, 6, "Все соседи различны")
}

func TestCubeVertices(t *testing.T) {
	v := CubeVertices(0, 0, 0, 0.5)
	for i, c := range v {
		assert.InDelta(t, 0.5, abs(c), 1e-9, "Координата %d лежит на грани куба", i)
	}
	// Верхняя грань целиком на y = +n
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0.5, v[i*3+1])
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
