package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/entity"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFloorSession создаёт сессию с полом из травы на y=0 и игроком над ним
func newFloorSession(t *testing.T, opts Options) *Session {
	t.Helper()
	w := world.NewWorld(world.Options{})
	for x := -5; x <= 5; x++ {
		for z := -5; z <= 5; z++ {
			require.NoError(t, w.AddBlockDeferred(vec.Vec3{X: x, Z: z}, block.GrassBlockID))
		}
	}
	p := entity.NewPlayer(entity.DefaultMotionParams(), vec.Vec3Float{Y: 1.75})
	return NewSession(w, p, opts)
}

func TestSession_FirstUpdateActivates(t *testing.T) {
	s := newFloorSession(t, Options{PerTickBudget: 1})

	st := s.Update(context.Background(), 1.0/60)
	assert.True(t, st.SectorChanged, "Первый тик активирует сектор")
	assert.Equal(t, 0, st.QueueLen, "Первая активация опустошает очередь")
	assert.Equal(t, 121, s.World.ShownCount(), "Весь пол открыт сверху")

	st = s.Update(context.Background(), 1.0/60)
	assert.False(t, st.SectorChanged)
	assert.Equal(t, uint64(2), s.Stats().Ticks)
}

func TestSession_ClampsDelta(t *testing.T) {
	s := newFloorSession(t, Options{})
	s.Player.Press(entity.DirForward)

	s.Update(context.Background(), 10)
	assert.InDelta(t, -MaxTickDelta*5, s.Player.Position.Z, 1e-6, "Длинный тик ограничен 0.2 с")
}

func TestSession_BoundedProcessing(t *testing.T) {
	s := newFloorSession(t, Options{PerTickBudget: 3})
	s.Update(context.Background(), 0)

	require.NoError(t, s.World.AddBlock(vec.Vec3{X: 3, Y: 1}, block.BrickBlockID))
	st := s.Update(context.Background(), 0)
	assert.Equal(t, 3, st.Processed, "За тик обрабатывается не больше бюджета")
	assert.Equal(t, 4, st.QueueLen)
}

func TestSession_TimeBudgetProcessing(t *testing.T) {
	s := newFloorSession(t, Options{TimeBudget: time.Second})
	s.Update(context.Background(), 0)

	require.NoError(t, s.World.AddBlock(vec.Vec3{X: 3, Y: 1}, block.BrickBlockID))
	require.Equal(t, 7, s.World.QueueLen())
	st := s.Update(context.Background(), 0)
	assert.Equal(t, 7, st.Processed, "Бюджет по времени разбирает очередь без ограничения количества")
	assert.Equal(t, 0, st.QueueLen)
}

func TestSession_MineAndPlace(t *testing.T) {
	s := newFloorSession(t, Options{})
	s.Update(context.Background(), 0)
	s.Player.Rotation = vec.Vec2Float{Y: -90} // Смотрим вниз

	pos, err := s.Place(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, vec.Vec3{Y: 1}, *pos, "Блок ставится в клетку перед полом")
	id, _ := s.World.BlockAt(*pos)
	assert.Equal(t, block.BrickBlockID, id, "Ставится активный блок")

	pos, err = s.Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vec.Vec3{Y: 1}, *pos)
	assert.False(t, s.World.IsSolid(vec.Vec3{Y: 1}))
}

func TestSession_StoneIsUnbreakable(t *testing.T) {
	s := newFloorSession(t, Options{})
	require.NoError(t, s.World.AddBlock(vec.Vec3{}, block.StoneBlockID))
	s.Update(context.Background(), 0)
	s.Player.Rotation = vec.Vec2Float{Y: -90}

	_, err := s.Mine(context.Background())
	assert.True(t, errors.Is(err, ErrUnbreakable))
	assert.True(t, s.World.IsSolid(vec.Vec3{}), "Камень остался на месте")
}

func TestSession_PreventSelfPlacement(t *testing.T) {
	s := newFloorSession(t, Options{PreventSelfPlacement: true})
	s.Update(context.Background(), 0)
	s.Player.Rotation = vec.Vec2Float{Y: -90}

	_, err := s.Place(context.Background())
	assert.True(t, errors.Is(err, ErrBlocked), "Нельзя поставить блок в себя")
	assert.False(t, s.World.IsSolid(vec.Vec3{Y: 1}))
}

func TestSession_NothingTargeted(t *testing.T) {
	s := newFloorSession(t, Options{})
	s.Player.Rotation = vec.Vec2Float{Y: 90} // Смотрим в небо

	pos, err := s.Mine(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, pos)

	pos, err = s.Place(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, pos)
}

func TestSession_OnTick(t *testing.T) {
	s := newFloorSession(t, Options{})
	var got []TickStats
	s.OnTick(func(st TickStats) { got = append(got, st) })

	s.Update(context.Background(), 1.0/60)
	s.Update(context.Background(), 1.0/60)
	assert.Len(t, got, 2)
	assert.True(t, got[0].SectorChanged)
}

func TestBootstrap(t *testing.T) {
	cfg := config.Default()
	cfg.World.Size = 20
	cfg.World.HillCount = 5
	cfg.World.ViewDistance = 1

	var sectorEvents int
	s, err := Bootstrap(cfg, nil, func(ev world.Event) {
		if ev.Type == world.EventTypeSectorChanged {
			sectorEvents++
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sectorEvents, "Сектор спавна активирован")
	assert.Equal(t, 0, s.World.QueueLen())
	assert.Greater(t, s.World.ShownCount(), 0)
	assert.Equal(t, "BRICK", s.Stats().ActiveBlock)

	cfg.Queue.TimeBudget = 5 * time.Millisecond
	timed, err := Bootstrap(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, timed.opts.TimeBudget, "queue.time_budget передаётся в сессию")

	// Игрок падает на траву y=-2 и стоит на высоте -0.25
	for i := 0; i < 120; i++ {
		s.Update(context.Background(), 1.0/60)
	}
	assert.InDelta(t, -0.25, s.Player.Position.Y, 1e-6)
}
