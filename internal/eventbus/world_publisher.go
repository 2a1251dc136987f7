package eventbus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// BlockPayload – полезная нагрузка событий блоков
type BlockPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
	Block  string `json:"block"`
	Action string `json:"action,omitempty"` // Для block_shown/block_hidden
}

// SectorPayload – полезная нагрузка sector_changed
type SectorPayload struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// WorldPublisher переводит события мира в Envelope и публикует их в шину.
// Listener не блокирует тик: события копятся в буфере и отправляются
// отдельной горутиной. При переполнении буфера событие отбрасывается.
type WorldPublisher struct {
	bus        EventBus
	source     string
	visibility bool

	events  chan world.Event
	dropped uint64
	wg      sync.WaitGroup
	once    sync.Once
}

// NewWorldPublisher создаёт публикатор и запускает горутину отправки.
// visibility включает публикацию block_shown/block_hidden.
func NewWorldPublisher(bus EventBus, source string, visibility bool, buffer int) *WorldPublisher {
	if buffer <= 0 {
		buffer = 4096
	}
	wp := &WorldPublisher{
		bus:        bus,
		source:     source,
		visibility: visibility,
		events:     make(chan world.Event, buffer),
	}
	wp.wg.Add(1)
	go wp.loop()
	return wp
}

// Listener возвращает слушателя для world.AddListener
func (wp *WorldPublisher) Listener() world.Listener {
	return func(ev world.Event) {
		if !wp.visibility && (ev.Type == world.EventTypeBlockShown || ev.Type == world.EventTypeBlockHidden) {
			return
		}
		select {
		case wp.events <- ev:
		default:
			atomic.AddUint64(&wp.dropped, 1)
		}
	}
}

// Dropped возвращает число событий, отброшенных из-за переполнения буфера
func (wp *WorldPublisher) Dropped() uint64 {
	return atomic.LoadUint64(&wp.dropped)
}

// Close дожидается отправки накопленных событий.
// После Close слушатель больше нельзя вызывать.
func (wp *WorldPublisher) Close() {
	wp.once.Do(func() { close(wp.events) })
	wp.wg.Wait()
}

func (wp *WorldPublisher) loop() {
	defer wp.wg.Done()
	ctx := context.Background()
	for ev := range wp.events {
		env, err := Encode(wp.source, ev)
		if err != nil {
			logging.Warn("WorldPublisher: кодирование %s: %v", ev.Type, err)
			continue
		}
		if err := wp.bus.Publish(ctx, env); err != nil {
			logging.Warn("WorldPublisher: публикация %s: %v", ev.Type, err)
		}
	}
}

// Encode переводит событие мира в Envelope
func Encode(source string, ev world.Event) (*Envelope, error) {
	switch ev.Type {
	case world.EventTypeSectorChanged:
		return NewEnvelope(source, ev.Type.String(), PriorityNormal, sectorPayload(ev.Sector))
	case world.EventTypeBlockShown, world.EventTypeBlockHidden:
		return NewEnvelope(source, ev.Type.String(), PriorityLow, BlockPayload{
			X: ev.Pos.X, Y: ev.Pos.Y, Z: ev.Pos.Z,
			Block:  block.Name(ev.Block),
			Action: ev.Action.String(),
		})
	default:
		return NewEnvelope(source, ev.Type.String(), PriorityNormal, BlockPayload{
			X: ev.Pos.X, Y: ev.Pos.Y, Z: ev.Pos.Z,
			Block: block.Name(ev.Block),
		})
	}
}

func sectorPayload(s vec.Vec2) SectorPayload {
	return SectorPayload{X: s.X, Z: s.Y}
}
