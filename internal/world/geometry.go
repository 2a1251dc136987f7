package world

import (
	"github.com/annel0/voxel-world/internal/vec"
)

// DefaultSectorSize – сторона сектора в блоках по осям X и Z
const DefaultSectorSize = 16

// Faces – смещения к шести соседям по граням куба.
// Порядок фиксирован: в нём же резолвер коллизий обходит грани.
var Faces = [6]vec.Vec3{
	vec.Vec3{}.Up(),
	vec.Vec3{}.Down(),
	vec.Vec3{}.Left(),
	vec.Vec3{}.Right(),
	vec.Vec3{}.Front(),
	vec.Vec3{}.Back(),
}

// Neighbors возвращает шесть соседних по граням клеток
func Neighbors(pos vec.Vec3) [6]vec.Vec3 {
	var out [6]vec.Vec3
	for i, face := range Faces {
		out[i] = pos.Add(face)
	}
	return out
}

// Normalize возвращает клетку блока, содержащую точку
func Normalize(pos vec.Vec3Float) vec.Vec3 {
	return pos.Round()
}

// SectorOf возвращает координаты сектора блока; ось Y в сектор не входит
func SectorOf(pos vec.Vec3, sectorSize int) vec.Vec2 {
	return pos.ToVec2().FloorDiv(sectorSize)
}

// Sectorize возвращает сектор, содержащий точку
func Sectorize(pos vec.Vec3Float, sectorSize int) vec.Vec2 {
	return SectorOf(Normalize(pos), sectorSize)
}

// CubeVertices возвращает вершины шести граней куба с центром (x, y, z)
// и полустороной n: 6 граней × 4 вершины × 3 координаты.
// Порядок граней: верх, низ, лево, право, перед, зад.
func CubeVertices(x, y, z, n float64) [72]float64 {
	return [72]float64{
		x - n, y + n, z - n, x - n, y + n, z + n, x + n, y + n, z + n, x + n, y + n, z - n, // верх
		x - n, y - n, z - n, x + n, y - n, z - n, x + n, y - n, z + n, x - n, y - n, z + n, // низ
		x - n, y - n, z - n, x - n, y - n, z + n, x - n, y + n, z + n, x - n, y + n, z - n, // лево
		x + n, y - n, z + n, x + n, y - n, z - n, x + n, y + n, z - n, x + n, y + n, z + n, // право
		x - n, y - n, z + n, x + n, y - n, z + n, x + n, y + n, z + n, x - n, y + n, z + n, // перед
		x + n, y - n, z - n, x - n, y - n, z - n, x - n, y + n, z - n, x + n, y + n, z - n, // зад
	}
}
