package world

import (
	"time"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// ShownBlock – видимый блок для отрисовки
type ShownBlock struct {
	Pos   vec.Vec3
	Block block.BlockID
}

// Exposed возвращает true, если клетка занята и хотя бы один сосед по грани пуст
func (w *World) Exposed(pos vec.Vec3) bool {
	if !w.IsSolid(pos) {
		return false
	}
	for _, n := range Neighbors(pos) {
		if !w.IsSolid(n) {
			return true
		}
	}
	return false
}

// IsLoaded возвращает true, если блоки сектора могут быть видимыми
func (w *World) IsLoaded(coords vec.Vec2) bool {
	if w.viewDistance <= 0 {
		return true
	}
	_, ok := w.loaded[coords]
	return ok
}

// IsShown возвращает true, если блок находится в множестве видимых
func (w *World) IsShown(pos vec.Vec3) bool {
	_, ok := w.shown[pos]
	return ok
}

// ShownCount возвращает размер множества видимых блоков
func (w *World) ShownCount() int {
	return len(w.shown)
}

// RangeShown обходит видимые блоки, пока fn возвращает true
func (w *World) RangeShown(fn func(pos vec.Vec3, id block.BlockID) bool) {
	for pos, id := range w.shown {
		if !fn(pos, id) {
			return
		}
	}
}

// ShownInSector возвращает видимые блоки сектора
func (w *World) ShownInSector(coords vec.Vec2) []ShownBlock {
	s, ok := w.sectors[coords]
	if !ok {
		return nil
	}
	var out []ShownBlock
	s.Range(func(pos vec.Vec3, id block.BlockID) bool {
		if shownID, shown := w.shown[pos]; shown {
			out = append(out, ShownBlock{Pos: pos, Block: shownID})
		}
		return true
	})
	return out
}

// QueueLen возвращает количество отложенных элементов
func (w *World) QueueLen() int {
	return w.queue.Len()
}

// ActiveSector возвращает активный сектор, если он уже выбран
func (w *World) ActiveSector() (vec.Vec2, bool) {
	if w.active == nil {
		return vec.Vec2{}, false
	}
	return *w.active, true
}

// EnqueueCheck ставит клетку в очередь на пересчёт видимости.
// Повторы допустимы: обработка идемпотентна.
func (w *World) EnqueueCheck(pos vec.Vec3) {
	w.queue.Push(QueueItem{Action: ActionCheck, Pos: pos})
}

func (w *World) enqueue(action Action, pos vec.Vec3) {
	w.queue.Push(QueueItem{Action: action, Pos: pos})
}

// ProcessOne обрабатывает самый старый элемент очереди.
// Возвращает false, если очередь пуста.
func (w *World) ProcessOne() bool {
	item, ok := w.queue.Pop()
	if !ok {
		return false
	}
	w.resolve(item)
	return true
}

// ProcessBounded обрабатывает не более n элементов; возвращает число обработанных
func (w *World) ProcessBounded(n int) int {
	processed := 0
	for processed < n && w.ProcessOne() {
		processed++
	}
	return processed
}

// ProcessFor обрабатывает очередь, пока не истечёт бюджет времени
func (w *World) ProcessFor(budget time.Duration) int {
	deadline := time.Now().Add(budget)
	processed := 0
	for w.queue.Len() > 0 && time.Now().Before(deadline) {
		w.ProcessOne()
		processed++
	}
	return processed
}

// ProcessAll полностью опустошает очередь
func (w *World) ProcessAll() int {
	processed := 0
	for w.ProcessOne() {
		processed++
	}
	return processed
}

// resolve приводит видимость клетки к правилу: видим тот блок,
// который существует, открыт и лежит в загруженном секторе.
func (w *World) resolve(item QueueItem) {
	pos := item.Pos
	id, solid := w.BlockAt(pos)
	want := solid && w.Exposed(pos) && w.IsLoaded(w.SectorOf(pos))
	shownID, isShown := w.shown[pos]

	switch {
	case want && isShown && shownID != id:
		w.hide(pos, item.Action)
		w.show(pos, id, item.Action)
	case want && !isShown:
		w.show(pos, id, item.Action)
	case !want && isShown:
		w.hide(pos, item.Action)
	}
}

func (w *World) show(pos vec.Vec3, id block.BlockID, action Action) {
	w.shown[pos] = id
	w.renderer.ShowBlock(pos, id)
	w.emit(Event{Type: EventTypeBlockShown, Pos: pos, Block: id, Sector: w.SectorOf(pos), Action: action})
}

func (w *World) hide(pos vec.Vec3, action Action) {
	id, ok := w.shown[pos]
	if !ok {
		return
	}
	delete(w.shown, pos)
	w.renderer.HideBlock(pos)
	w.emit(Event{Type: EventTypeBlockHidden, Pos: pos, Block: id, Sector: w.SectorOf(pos), Action: action})
}

// sectorsAround возвращает секторы в круге радиуса viewDistance вокруг center
func (w *World) sectorsAround(center vec.Vec2) map[vec.Vec2]struct{} {
	pad := w.viewDistance
	out := make(map[vec.Vec2]struct{}, (2*pad+1)*(2*pad+1))
	for dx := -pad; dx <= pad; dx++ {
		for dz := -pad; dz <= pad; dz++ {
			if dx*dx+dz*dz > (pad+1)*(pad+1) {
				continue
			}
			out[center.Add(vec.Vec2{X: dx, Y: dz})] = struct{}{}
		}
	}
	return out
}

// showSector ставит в очередь открытые, но ещё не видимые блоки сектора
func (w *World) showSector(coords vec.Vec2) int {
	s, ok := w.sectors[coords]
	if !ok {
		return 0
	}
	queued := 0
	s.Range(func(pos vec.Vec3, _ block.BlockID) bool {
		if _, shown := w.shown[pos]; !shown && w.Exposed(pos) {
			w.enqueue(ActionShow, pos)
			queued++
		}
		return true
	})
	return queued
}

// hideSector ставит в очередь видимые блоки сектора
func (w *World) hideSector(coords vec.Vec2) int {
	s, ok := w.sectors[coords]
	if !ok {
		return 0
	}
	queued := 0
	s.Range(func(pos vec.Vec3, _ block.BlockID) bool {
		if _, shown := w.shown[pos]; shown {
			w.enqueue(ActionHide, pos)
			queued++
		}
		return true
	})
	return queued
}

// ChangeSectors переключает активный сектор с before на after.
// Секторы, вошедшие в радиус видимости, ставят свои блоки в очередь на показ,
// вышедшие – на скрытие. При первой активации (before == nil) очередь
// опустошается целиком, иначе работа разбирается по бюджету тиков.
// Возвращает число поставленных в очередь элементов.
func (w *World) ChangeSectors(before *vec.Vec2, after vec.Vec2) int {
	queued := 0
	if w.viewDistance > 0 {
		next := w.sectorsAround(after)
		for coords := range next {
			if _, was := w.loaded[coords]; !was {
				queued += w.showSector(coords)
			}
		}
		for coords := range w.loaded {
			if _, keep := next[coords]; !keep {
				queued += w.hideSector(coords)
			}
		}
		w.loaded = next
	}

	active := after
	w.active = &active
	w.emit(Event{Type: EventTypeSectorChanged, Sector: after})

	if before == nil {
		logging.LogSectorChange(after.X, after.Y, after.X, after.Y, queued)
		w.ProcessAll()
	} else {
		logging.LogSectorChange(before.X, before.Y, after.X, after.Y, queued)
	}
	return queued
}

// Track пересчитывает активный сектор по позиции игрока.
// Возвращает true, если сектор сменился.
func (w *World) Track(pos vec.Vec3Float) bool {
	next := Sectorize(pos, w.sectorSize)
	if w.active != nil && *w.active == next {
		return false
	}
	w.ChangeSectors(w.active, next)
	return true
}
