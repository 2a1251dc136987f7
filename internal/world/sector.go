package world

import (
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Sector хранит блоки одного сектора мира (колонна SectorSize × ∞ × SectorSize).
// Принадлежность блока сектору вычисляется из координаты и больше нигде не хранится.
type Sector struct {
	Coords vec.Vec2 // Координаты сектора (X, Z)

	blocks map[vec.Vec3]block.BlockID

	ChangeCounter int // Счетчик изменений: Set и успешный Delete
}

// NewSector создаёт пустой сектор
func NewSector(coords vec.Vec2) *Sector {
	return &Sector{
		Coords: coords,
		blocks: make(map[vec.Vec3]block.BlockID),
	}
}

// Get возвращает блок по мировым координатам
func (s *Sector) Get(pos vec.Vec3) (block.BlockID, bool) {
	id, ok := s.blocks[pos]
	return id, ok
}

// Set устанавливает блок; возвращает предыдущий, если он был
func (s *Sector) Set(pos vec.Vec3, id block.BlockID) (block.BlockID, bool) {
	prev, existed := s.blocks[pos]
	s.blocks[pos] = id
	s.ChangeCounter++
	return prev, existed
}

// Delete удаляет блок; возвращает удалённый, если он был
func (s *Sector) Delete(pos vec.Vec3) (block.BlockID, bool) {
	prev, existed := s.blocks[pos]
	if !existed {
		return block.AirBlockID, false
	}
	delete(s.blocks, pos)
	s.ChangeCounter++
	return prev, true
}

// Len возвращает количество блоков в секторе
func (s *Sector) Len() int {
	return len(s.blocks)
}

// Range обходит блоки сектора, пока fn возвращает true
func (s *Sector) Range(fn func(pos vec.Vec3, id block.BlockID) bool) {
	for pos, id := range s.blocks {
		if !fn(pos, id) {
			return
		}
	}
}
