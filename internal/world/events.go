package world

import (
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// EventType определяет тип события мира
type EventType uint8

const (
	EventTypeBlockAdded    EventType = iota // Блок поставлен (в т.ч. перезаписан)
	EventTypeBlockRemoved                   // Блок удалён
	EventTypeBlockShown                     // Блок попал в множество видимых
	EventTypeBlockHidden                    // Блок покинул множество видимых
	EventTypeSectorChanged                  // Сменился активный сектор
)

// String возвращает имя события для логов и шины
func (t EventType) String() string {
	switch t {
	case EventTypeBlockAdded:
		return "block_added"
	case EventTypeBlockRemoved:
		return "block_removed"
	case EventTypeBlockShown:
		return "block_shown"
	case EventTypeBlockHidden:
		return "block_hidden"
	case EventTypeSectorChanged:
		return "sector_changed"
	default:
		return "unknown"
	}
}

// Event – событие мира. Для событий сектора Pos не заполняется.
type Event struct {
	Type   EventType
	Pos    vec.Vec3
	Block  block.BlockID
	Sector vec.Vec2
	// Action – действие очереди, которое привело к show/hide
	Action Action
}

// Listener получает события синхронно, в потоке тика
type Listener func(Event)

// Renderer – потребитель изменений множества видимых блоков (слой отрисовки)
type Renderer interface {
	// ShowBlock вызывается, когда блок становится видимым
	ShowBlock(pos vec.Vec3, id block.BlockID)
	// HideBlock вызывается, когда блок перестаёт быть видимым
	HideBlock(pos vec.Vec3)
}

type nopRenderer struct{}

func (nopRenderer) ShowBlock(vec.Vec3, block.BlockID) {}
func (nopRenderer) HideBlock(vec.Vec3)                {}
