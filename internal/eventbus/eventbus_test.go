package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector накапливает полученные события
type collector struct {
	mu  sync.Mutex
	evs []*Envelope
}

func (c *collector) handle(_ context.Context, ev *Envelope) {
	c.mu.Lock()
	c.evs = append(c.evs, ev)
	c.mu.Unlock()
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.evs))
	for _, ev := range c.evs {
		out = append(out, ev.EventType)
	}
	return out
}

func TestMemoryBus_FilterAndOrder(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	var all, added collector
	_, err := bus.Subscribe(ctx, Filter{}, all.handle)
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, Filter{Types: []string{"block_added"}}, added.handle)
	require.NoError(t, err)

	for _, typ := range []string{"block_added", "block_removed", "block_added"} {
		env, err := NewEnvelope("s1", typ, PriorityNormal, SectorPayload{})
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, env))
	}
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"block_added", "block_removed", "block_added"}, all.types(), "Порядок публикации сохраняется")
	assert.Equal(t, []string{"block_added", "block_added"}, added.types())

	stats := bus.Metrics()
	assert.Equal(t, uint64(3), stats.Published)
	assert.Equal(t, uint64(5), stats.Consumed)
	assert.Equal(t, 0, stats.InFlight)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	var c collector
	sub, err := bus.Subscribe(context.Background(), Filter{}, c.handle)
	require.NoError(t, err)
	sub.Unsubscribe()

	env, err := NewEnvelope("s1", "block_added", PriorityNormal, nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), env))
	require.NoError(t, bus.Close())

	assert.Empty(t, c.types())
}

func TestMemoryBus_Closed(t *testing.T) {
	bus := NewMemoryBus(4)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "Повторное закрытие безопасно")

	env, err := NewEnvelope("s1", "block_added", PriorityNormal, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, bus.Publish(context.Background(), env), ErrClosed)

	_, err = bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	bus := NewMemoryBus(1)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	_, err := bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})
	require.NoError(t, err)

	publish := func(prio int) {
		env, err := NewEnvelope("s1", "block_shown", prio, nil)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(context.Background(), env))
	}

	publish(PriorityLow)
	<-started // первое событие у обработчика, буфер пуст
	publish(PriorityLow)
	publish(PriorityLow) // буфер занят – отбрасывается

	assert.Equal(t, uint64(1), bus.Metrics().Dropped)
	close(release)
	require.NoError(t, bus.Close())
	assert.Equal(t, uint64(2), bus.Metrics().Published)
}

func TestWorldPublisher_BlockAndSectorEvents(t *testing.T) {
	bus := NewMemoryBus(64)
	var c collector
	_, err := bus.Subscribe(context.Background(), Filter{Sources: []string{"session-1"}}, c.handle)
	require.NoError(t, err)

	wp := NewWorldPublisher(bus, "session-1", false, 64)
	w := world.NewWorld(world.Options{})
	w.AddListener(wp.Listener())

	require.NoError(t, w.AddBlock(vec.Vec3{X: 1, Y: 2, Z: 3}, block.SandBlockID))
	_, err = w.RemoveBlock(vec.Vec3{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.NoError(t, w.AddBlock(vec.Vec3{}, block.BrickBlockID))
	w.Track(vec.Vec3Float{})

	wp.Close()
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"block_added", "block_removed", "block_added", "sector_changed"}, c.types(),
		"События видимости не публикуются без флага")
	assert.Equal(t, uint64(0), wp.Dropped())

	var payload BlockPayload
	require.NoError(t, c.evs[0].Decode(&payload))
	assert.Equal(t, BlockPayload{X: 1, Y: 2, Z: 3, Block: "SAND"}, payload)
	assert.NotEmpty(t, c.evs[0].ID)
	assert.NotEqual(t, c.evs[0].ID, c.evs[1].ID)
}

func TestWorldPublisher_Visibility(t *testing.T) {
	bus := NewMemoryBus(64)
	var c collector
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"block_shown"}}, c.handle)
	require.NoError(t, err)

	wp := NewWorldPublisher(bus, "s", true, 64)
	w := world.NewWorld(world.Options{})
	w.AddListener(wp.Listener())
	require.NoError(t, w.AddBlock(vec.Vec3{}, block.GrassBlockID))
	w.Track(vec.Vec3Float{})

	wp.Close()
	require.NoError(t, bus.Close())

	require.Len(t, c.evs, 1)
	var payload BlockPayload
	require.NoError(t, c.evs[0].Decode(&payload))
	assert.Equal(t, "GRASS", payload.Block)
	assert.Equal(t, PriorityLow, c.evs[0].Priority)
}

func TestEncode_Sector(t *testing.T) {
	env, err := Encode("s", world.Event{Type: world.EventTypeSectorChanged, Sector: vec.Vec2{X: 2, Y: -1}})
	require.NoError(t, err)
	assert.Equal(t, "sector_changed", env.EventType)
	assert.Equal(t, "world.s.sector_changed", Subject(env))

	var payload SectorPayload
	require.NoError(t, env.Decode(&payload))
	assert.Equal(t, SectorPayload{X: 2, Z: -1}, payload)
}

func TestMetricsExporter_Collect(t *testing.T) {
	bus := NewMemoryBus(8)
	reg := prometheus.NewRegistry()
	me := NewMetricsExporter(bus, reg)

	var c collector
	_, err := bus.Subscribe(context.Background(), Filter{}, c.handle)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		env, err := NewEnvelope("s", "block_added", PriorityNormal, nil)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(context.Background(), env))
	}
	require.NoError(t, bus.Close())

	me.Collect()
	me.Collect() // повторный снимок не удваивает счётчики
	assert.Equal(t, 3.0, testutil.ToFloat64(me.published))
	assert.Equal(t, 3.0, testutil.ToFloat64(me.consumed))
	assert.Equal(t, 0.0, testutil.ToFloat64(me.dropped))
}

func TestStartLoggingListener(t *testing.T) {
	bus := NewMemoryBus(4)
	sub, err := StartLoggingListener(bus)
	require.NoError(t, err)
	require.NotNil(t, sub)

	env, err := NewEnvelope("s", "block_removed", PriorityNormal, BlockPayload{X: 1})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), env))
	require.NoError(t, bus.Close())

	assert.Equal(t, uint64(1), bus.Metrics().Consumed, "Слушатель логов получает все события")
}
