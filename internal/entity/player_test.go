package entity

import (
	"testing"

	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floor возвращает проверку пола y=0 размером 41×41
func floor() physics.BlockChecker {
	return func(pos vec.Vec3) bool {
		return pos.Y == 0 && pos.X >= -20 && pos.X <= 20 && pos.Z >= -20 && pos.Z <= 20
	}
}

func empty(vec.Vec3) bool { return false }

// simulate прогоняет ticks тиков по 1/60 с, каждый из 8 подшагов
func simulate(p *Player, solid physics.BlockChecker, ticks int, each func()) {
	const dt = 1.0 / 60
	for i := 0; i < ticks; i++ {
		for s := 0; s < 8; s++ {
			p.Move(dt/8, solid)
		}
		if each != nil {
			each()
		}
	}
}

func TestPlayer_RestsOnFloor(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 5})
	simulate(p, floor(), 300, nil)

	assert.InDelta(t, 1.75, p.Position.Y, 1e-6, "Игрок высотой 2 стоит на полу y=0 на высоте 1.75")
	assert.Equal(t, 0.0, p.DY, "На полу вертикальная скорость нулевая")
	assert.False(t, p.Jumped, "На полу игрок не в воздухе")
}

func TestPlayer_JumpHeight(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 1.75})
	simulate(p, floor(), 10, nil)
	require.False(t, p.Jumped)

	p.SetJumping(true)
	simulate(p, floor(), 1, nil)
	p.SetJumping(false)
	assert.True(t, p.Jumped, "После прыжка игрок в воздухе")

	apex := p.Position.Y
	simulate(p, floor(), 120, func() {
		if p.Position.Y > apex {
			apex = p.Position.Y
		}
	})

	assert.InDelta(t, 1.75+1.5, apex, 0.05, "Высота прыжка равна MaxJumpHeight")
	assert.InDelta(t, 1.75, p.Position.Y, 1e-6, "Игрок приземлился")
	assert.False(t, p.Jumped)
}

func TestPlayer_NoJumpInAir(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 10})
	p.Jumped = true
	p.DY = -3
	p.SetJumping(true)

	p.Move(0.01, empty)
	assert.InDelta(t, -3.2, p.DY, 1e-9, "В воздухе прыжок не срабатывает")
}

func TestPlayer_HoldJumpRetriggersOnlyAfterLanding(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 1.75})
	simulate(p, floor(), 10, nil)
	require.False(t, p.Jumped)

	p.SetJumping(true)
	jumps := 0
	for i := 0; i < 4*480; i++ {
		grounded, before := !p.Jumped, p.DY
		p.Move(1.0/480, floor())

		if before <= 0 && p.DY > 0 {
			require.True(t, grounded, "Прыжок начинается только с земли (шаг %d)", i)
			jumps++
			continue
		}
		if !grounded && p.Jumped {
			require.LessOrEqual(t, p.DY, before, "В воздухе вертикальная скорость только убывает (шаг %d)", i)
		}
		require.LessOrEqual(t, p.Position.Y, 1.75+1.5+0.05, "Удержание не поднимает выше MaxJumpHeight")
	}
	assert.GreaterOrEqual(t, jumps, 3, "Удерживаемый прыжок повторяется после каждого приземления")
}

func TestPlayer_RepeatedPressHoldsSingleKey(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	p.Press(DirForward)
	p.Press(DirForward)
	assert.Equal(t, [2]int{-1, 0}, p.Strafe, "Повторное нажатие не усиливает движение")

	p.Release(DirForward)
	assert.Equal(t, [2]int{0, 0}, p.Strafe, "Одно отпускание снимает клавишу")
	assert.Equal(t, vec.Vec3Float{}, p.MotionVector())
}

func TestPlayer_ReleaseWithoutPressIgnored(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 1.75})
	p.Release(DirBackward)
	p.Release(DirLeft)
	assert.Equal(t, [2]int{0, 0}, p.Strafe, "Отпускание не нажатой клавиши игнорируется")
	assert.Equal(t, vec.Vec3Float{}, p.MotionVector())

	simulate(p, floor(), 30, nil)
	assert.Equal(t, 0.0, p.Position.X)
	assert.Equal(t, 0.0, p.Position.Z, "Игрок стоит на месте")

	p.Press(DirForward)
	p.Press(DirBackward)
	assert.Equal(t, [2]int{0, 0}, p.Strafe, "Противоположные клавиши гасят друг друга")
	p.Release(DirForward)
	assert.Equal(t, [2]int{1, 0}, p.Strafe)
}

func TestPlayer_TerminalVelocity(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	simulate(p, empty, 300, nil)
	assert.Equal(t, -50.0, p.DY, "Скорость падения ограничена")
}

func TestPlayer_WalkForward(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 1.75})
	p.Press(DirForward)
	simulate(p, floor(), 60, nil)

	assert.InDelta(t, 0, p.Position.X, 1e-9)
	assert.InDelta(t, -5, p.Position.Z, 1e-6, "За секунду игрок проходит WalkingSpeed блоков вперёд (-Z)")
	assert.InDelta(t, 1.75, p.Position.Y, 1e-6)

	p.Release(DirForward)
	assert.Equal(t, [2]int{0, 0}, p.Strafe)
}

func TestPlayer_MotionVector(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	assert.Equal(t, vec.Vec3Float{}, p.MotionVector(), "Без клавиш движения нет")

	p.Press(DirRight)
	mv := p.MotionVector()
	assert.InDelta(t, 1, mv.X, 1e-9, "Вправо при рыскании 0 – по +X")
	assert.InDelta(t, 0, mv.Z, 1e-9)

	p.Rotation.Y = 45
	assert.Equal(t, 0.0, p.MotionVector().Y, "При ходьбе вектор горизонтален")

	p.ToggleFlying()
	assert.Equal(t, 0.0, p.MotionVector().Y, "Боковой полёт не меняет высоту")
	assert.InDelta(t, 1, p.MotionVector().Length(), 1e-9)

	p.Release(DirRight)
	p.Press(DirForward)
	p.Rotation.Y = 90
	mv = p.MotionVector()
	assert.InDelta(t, 1, mv.Y, 1e-9, "Полёт вперёд по взгляду вверх")

	p.Release(DirForward)
	p.Press(DirBackward)
	mv = p.MotionVector()
	assert.InDelta(t, -1, mv.Y, 1e-9, "Полёт назад против взгляда")
}

func TestPlayer_SightVector(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	sv := p.SightVector()
	assert.InDelta(t, 0, sv.X, 1e-9)
	assert.InDelta(t, -1, sv.Z, 1e-9, "Нулевой поворот смотрит в -Z")

	p.Rotation = vec.Vec2Float{X: 90, Y: -90}
	sv = p.SightVector()
	assert.InDelta(t, -1, sv.Y, 1e-9, "Взгляд вниз")
	assert.InDelta(t, 1, sv.Length(), 1e-9)
}

func TestPlayer_LookClampsPitch(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	p.Look(100, 1000)
	assert.InDelta(t, 15, p.Rotation.X, 1e-9, "Рыскание умножается на чувствительность")
	assert.Equal(t, 90.0, p.Rotation.Y, "Тангаж ограничен сверху")

	p.Look(0, -5000)
	assert.Equal(t, -90.0, p.Rotation.Y, "Тангаж ограничен снизу")
}

func TestPlayer_Select(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{})
	assert.Equal(t, block.BrickBlockID, p.ActiveBlock, "Активен первый блок инвентаря")

	assert.Equal(t, block.GrassBlockID, p.Select(4), "Индекс берётся по модулю")
	assert.Equal(t, block.SandBlockID, p.Select(-1))
}

func TestPlayer_FlyingIgnoresGravity(t *testing.T) {
	p := NewPlayer(DefaultMotionParams(), vec.Vec3Float{Y: 10})
	p.DY = -7
	p.ToggleFlying()
	assert.True(t, p.Flying)
	assert.Equal(t, "flying", p.CurrentState.Name())
	assert.Equal(t, 0.0, p.DY, "Взлёт гасит падение")

	simulate(p, empty, 60, nil)
	assert.Equal(t, 10.0, p.Position.Y, "В полёте игрок не падает")

	p.ToggleFlying()
	assert.False(t, p.Flying)
	assert.Equal(t, "walking", p.CurrentState.Name())
}

func TestMotionParams_JumpSpeed(t *testing.T) {
	assert.InDelta(t, 7.745966, DefaultMotionParams().JumpSpeed(), 1e-6)
}
