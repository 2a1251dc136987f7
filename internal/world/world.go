package world

import (
	"fmt"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Options – параметры мира
type Options struct {
	SectorSize int // Сторона сектора; <= 0 – DefaultSectorSize
	// ViewDistance – радиус загруженных секторов вокруг активного.
	// <= 0 отключает отсечение: загружены все секторы.
	ViewDistance int
	Renderer     Renderer
}

// World владеет блоками мира, множеством видимых блоков и очередью
// отложенной работы по видимости. Не потокобезопасен: все вызовы
// выполняются из тика симуляции.
type World struct {
	sectorSize   int
	viewDistance int

	sectors    map[vec.Vec2]*Sector       // Блоки, разбитые по секторам
	blockCount int                        // Общее число блоков
	shown      map[vec.Vec3]block.BlockID // Видимые блоки
	queue      *PendingQueue              // Отложенные пересчёты видимости

	active *vec.Vec2             // Активный сектор игрока, nil до первой активации
	loaded map[vec.Vec2]struct{} // Загруженные секторы (при ViewDistance > 0)

	renderer  Renderer
	listeners []Listener
}

// NewWorld создаёт пустой мир
func NewWorld(opts Options) *World {
	if opts.SectorSize <= 0 {
		opts.SectorSize = DefaultSectorSize
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}

	return &World{
		sectorSize:   opts.SectorSize,
		viewDistance: opts.ViewDistance,
		sectors:      make(map[vec.Vec2]*Sector),
		shown:        make(map[vec.Vec3]block.BlockID),
		queue:        NewPendingQueue(1024),
		loaded:       make(map[vec.Vec2]struct{}),
		renderer:     opts.Renderer,
	}
}

// SetRenderer заменяет потребителя изменений видимости
func (w *World) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	w.renderer = r
}

// AddListener подписывает обработчик на события мира
func (w *World) AddListener(l Listener) {
	w.listeners = append(w.listeners, l)
}

func (w *World) emit(ev Event) {
	for _, l := range w.listeners {
		l(ev)
	}
}

// SectorSize возвращает сторону сектора
func (w *World) SectorSize() int {
	return w.sectorSize
}

// SectorOf возвращает сектор блока
func (w *World) SectorOf(pos vec.Vec3) vec.Vec2 {
	return SectorOf(pos, w.sectorSize)
}

// Sector возвращает сектор по координатам или nil
func (w *World) Sector(coords vec.Vec2) *Sector {
	return w.sectors[coords]
}

// RangeSectors обходит все непустые секторы
func (w *World) RangeSectors(fn func(s *Sector) bool) {
	for _, s := range w.sectors {
		if !fn(s) {
			return
		}
	}
}

// BlockAt возвращает тип блока в клетке
func (w *World) BlockAt(pos vec.Vec3) (block.BlockID, bool) {
	s, ok := w.sectors[w.SectorOf(pos)]
	if !ok {
		return block.AirBlockID, false
	}
	return s.Get(pos)
}

// IsSolid проверяет, занята ли клетка
func (w *World) IsSolid(pos vec.Vec3) bool {
	_, ok := w.BlockAt(pos)
	return ok
}

// BlockCount возвращает общее количество блоков
func (w *World) BlockCount() int {
	return w.blockCount
}

// AddBlock ставит блок в клетку. Занятая клетка перезаписывается:
// старый блок удаляется, новый ставится на его место.
// Видимость клетки и её соседей пересчитывается через очередь.
func (w *World) AddBlock(pos vec.Vec3, id block.BlockID) error {
	if !block.IsPlaceable(id) {
		return fmt.Errorf("%w: %s (%d) at (%d,%d,%d)", ErrInvalidPlacement, block.Name(id), id, pos.X, pos.Y, pos.Z)
	}

	if _, exists := w.BlockAt(pos); exists {
		_, _ = w.RemoveBlock(pos)
	}

	w.insert(pos, id)
	w.hide(pos, ActionCheck)

	w.EnqueueCheck(pos)
	for _, n := range Neighbors(pos) {
		w.EnqueueCheck(n)
	}

	w.emit(Event{Type: EventTypeBlockAdded, Pos: pos, Block: id, Sector: w.SectorOf(pos)})
	logging.LogBlockChange("added", pos.X, pos.Y, pos.Z, block.Name(id))
	return nil
}

// AddBlockDeferred ставит блок без пересчёта соседей – для массовой
// загрузки (генератор). Сама клетка ставится в очередь, если её сектор
// загружен; видимые соседи тоже перепроверяются, так как могли стать закрытыми.
func (w *World) AddBlockDeferred(pos vec.Vec3, id block.BlockID) error {
	if !block.IsPlaceable(id) {
		return fmt.Errorf("%w: %s (%d) at (%d,%d,%d)", ErrInvalidPlacement, block.Name(id), id, pos.X, pos.Y, pos.Z)
	}

	if prev, exists := w.BlockAt(pos); exists {
		w.sectors[w.SectorOf(pos)].Delete(pos)
		w.blockCount--
		if prev != id {
			w.hide(pos, ActionCheck)
		}
	}
	w.insert(pos, id)

	if w.IsLoaded(w.SectorOf(pos)) {
		w.EnqueueCheck(pos)
	}
	for _, n := range Neighbors(pos) {
		if _, shown := w.shown[n]; shown {
			w.EnqueueCheck(n)
		}
	}
	return nil
}

func (w *World) insert(pos vec.Vec3, id block.BlockID) {
	coords := w.SectorOf(pos)
	s, ok := w.sectors[coords]
	if !ok {
		s = NewSector(coords)
		w.sectors[coords] = s
	}
	s.Set(pos, id)
	w.blockCount++
}

// RemoveBlock удаляет блок. Для пустой клетки возвращает ErrNotFound и
// ничего не меняет. Соседи ставятся в очередь: они могли стать открытыми.
func (w *World) RemoveBlock(pos vec.Vec3) (block.BlockID, error) {
	coords := w.SectorOf(pos)
	s, ok := w.sectors[coords]
	if !ok {
		return block.AirBlockID, ErrNotFound
	}

	id, existed := s.Delete(pos)
	if !existed {
		return block.AirBlockID, ErrNotFound
	}
	w.blockCount--
	if s.Len() == 0 {
		delete(w.sectors, coords)
	}

	w.hide(pos, ActionCheck)
	for _, n := range Neighbors(pos) {
		w.EnqueueCheck(n)
	}

	w.emit(Event{Type: EventTypeBlockRemoved, Pos: pos, Block: id, Sector: coords})
	logging.LogBlockChange("removed", pos.X, pos.Y, pos.Z, block.Name(id))
	return id, nil
}
