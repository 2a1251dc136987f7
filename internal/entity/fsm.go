package entity

import (
	"github.com/annel0/voxel-world/internal/physics"
)

// State представляет состояние конечного автомата движения игрока
type State interface {
	Name() string
	Enter(player *Player)
	Update(player *Player, dt float64, solid physics.BlockChecker) State
	Exit(player *Player)
}

// Move продвигает игрока на dt секунд в текущем состоянии
func (p *Player) Move(dt float64, solid physics.BlockChecker) {
	if p.CurrentState == nil {
		p.SetState(NewWalkingState())
	}

	newState := p.CurrentState.Update(p, dt, solid)
	if newState != p.CurrentState {
		p.CurrentState.Exit(p)
		p.CurrentState = newState
		p.CurrentState.Enter(p)
	}
}

// SetState устанавливает новое состояние игрока
func (p *Player) SetState(state State) {
	if p.CurrentState != nil {
		p.CurrentState.Exit(p)
	}

	p.CurrentState = state

	if p.CurrentState != nil {
		p.CurrentState.Enter(p)
	}
}

// === Конкретные состояния ===

// WalkingState - ходьба: гравитация, прыжок, скорость ходьбы
type WalkingState struct{}

// NewWalkingState создаёт состояние ходьбы
func NewWalkingState() *WalkingState {
	return &WalkingState{}
}

func (s *WalkingState) Name() string { return "walking" }

func (s *WalkingState) Enter(player *Player) {
	player.Flying = false
}

func (s *WalkingState) Update(player *Player, dt float64, solid physics.BlockChecker) State {
	if player.Jumping && !player.Jumped {
		player.DY = player.Params.JumpSpeed()
	}

	d := dt * player.Params.WalkingSpeed
	displacement := player.MotionVector().Mul(d)

	// Гравитация с ограничением скорости падения
	player.DY -= dt * player.Params.Gravity
	if player.DY < -player.Params.TerminalVelocity {
		player.DY = -player.Params.TerminalVelocity
	}
	displacement.Y += player.DY * dt

	player.collide(displacement, solid)
	return s
}

func (s *WalkingState) Exit(player *Player) {
	// Ничего не делаем при выходе
}

// FlyingState - полёт: без гравитации, движение по направлению взгляда
type FlyingState struct{}

// NewFlyingState создаёт состояние полёта
func NewFlyingState() *FlyingState {
	return &FlyingState{}
}

func (s *FlyingState) Name() string { return "flying" }

func (s *FlyingState) Enter(player *Player) {
	player.Flying = true
	// Падение прекращается при взлёте
	player.DY = 0
}

func (s *FlyingState) Update(player *Player, dt float64, solid physics.BlockChecker) State {
	d := dt * player.Params.FlyingSpeed
	player.collide(player.MotionVector().Mul(d), solid)
	return s
}

func (s *FlyingState) Exit(player *Player) {
	// Ничего не делаем при выходе
}
