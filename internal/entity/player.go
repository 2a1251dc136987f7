package entity

import (
	"math"

	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// MotionParams – физические константы игрока
type MotionParams struct {
	WalkingSpeed     float64 // Блоков в секунду
	FlyingSpeed      float64
	Gravity          float64 // Блоков в секунду²
	MaxJumpHeight    float64 // В блоках
	TerminalVelocity float64
	Height           int     // Высота колонны игрока в блоках
	Pad              float64 // Допустимое проникновение в соседнюю клетку
	MouseSensitivity float64 // Градусов на единицу смещения мыши
}

// DefaultMotionParams возвращает константы по умолчанию
func DefaultMotionParams() MotionParams {
	return MotionParams{
		WalkingSpeed:     5,
		FlyingSpeed:      15,
		Gravity:          20,
		MaxJumpHeight:    1.5,
		TerminalVelocity: 50,
		Height:           2,
		Pad:              0.25,
		MouseSensitivity: 0.15,
	}
}

// JumpSpeed – начальная скорость прыжка, при которой вершина
// траектории находится на MaxJumpHeight: v = sqrt(2·g·h)
func (m MotionParams) JumpSpeed() float64 {
	return math.Sqrt(2 * m.Gravity * m.MaxJumpHeight)
}

// Direction – клавиша движения
type Direction uint8

const (
	DirForward Direction = iota
	DirBackward
	DirLeft
	DirRight
)

// DefaultInventory – блоки, доступные для строительства
var DefaultInventory = []block.BlockID{block.BrickBlockID, block.GrassBlockID, block.SandBlockID}

// Player – состояние игрока
type Player struct {
	Position vec.Vec3Float
	Rotation vec.Vec2Float // X – рыскание, Y – тангаж в [-90, 90]
	// Strafe[0]: -1 вперёд, +1 назад; Strafe[1]: -1 влево, +1 вправо
	Strafe [2]int
	DY     float64 // Вертикальная скорость

	held [4]bool // Удерживаемые клавиши, индекс – Direction

	Flying  bool
	Jumping bool // Клавиша прыжка удерживается
	Jumped  bool // Игрок в воздухе

	Inventory   []block.BlockID
	ActiveBlock block.BlockID

	Params       MotionParams
	Collider     *physics.Collider
	CurrentState State
}

// NewPlayer создаёт игрока в указанной позиции
func NewPlayer(params MotionParams, pos vec.Vec3Float) *Player {
	inventory := append([]block.BlockID(nil), DefaultInventory...)
	p := &Player{
		Position:    pos,
		Inventory:   inventory,
		ActiveBlock: inventory[0],
		Params:      params,
		Collider:    physics.NewCollider(params.Height, params.Pad),
	}
	p.SetState(NewWalkingState())
	return p
}

// Press обрабатывает нажатие клавиши движения.
// Повторное нажатие уже удерживаемой клавиши ничего не меняет.
func (p *Player) Press(dir Direction) {
	p.setHeld(dir, true)
}

// Release обрабатывает отпускание клавиши движения.
// Отпускание не нажатой клавиши игнорируется.
func (p *Player) Release(dir Direction) {
	p.setHeld(dir, false)
}

// setHeld обновляет набор удерживаемых клавиш и пересчитывает Strafe
func (p *Player) setHeld(dir Direction, down bool) {
	if int(dir) >= len(p.held) {
		return
	}
	p.held[dir] = down
	p.Strafe = [2]int{
		axis(p.held[DirBackward], p.held[DirForward]),
		axis(p.held[DirRight], p.held[DirLeft]),
	}
}

// axis даёт +1, -1 или 0 для пары противоположных клавиш
func axis(pos, neg bool) int {
	v := 0
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// SetJumping отражает состояние клавиши прыжка
func (p *Player) SetJumping(held bool) {
	p.Jumping = held
}

// ToggleFlying переключает ходьбу и полёт
func (p *Player) ToggleFlying() {
	if p.Flying {
		p.SetState(NewWalkingState())
	} else {
		p.SetState(NewFlyingState())
	}
}

// Select делает активным блок инвентаря по индексу (по модулю размера)
func (p *Player) Select(index int) block.BlockID {
	n := len(p.Inventory)
	if n == 0 {
		return p.ActiveBlock
	}
	p.ActiveBlock = p.Inventory[((index%n)+n)%n]
	return p.ActiveBlock
}

// Look поворачивает камеру на смещение мыши
func (p *Player) Look(dx, dy float64) {
	p.Rotation = p.Rotation.Add(vec.Vec2Float{X: dx, Y: dy}.Mul(p.Params.MouseSensitivity)).ClampY(-90, 90)
}

// SightVector возвращает единичный вектор направления взгляда
func (p *Player) SightVector() vec.Vec3Float {
	yaw, pitch := p.Rotation.X, p.Rotation.Y
	m := math.Cos(radians(pitch))
	return vec.Vec3Float{
		X: math.Cos(radians(yaw-90)) * m,
		Y: math.Sin(radians(pitch)),
		Z: math.Sin(radians(yaw-90)) * m,
	}
}

// MotionVector возвращает направление движения по нажатым клавишам.
// При ходьбе вектор горизонтален; в полёте движение вперёд-назад идёт
// по направлению взгляда, боковое – горизонтально.
func (p *Player) MotionVector() vec.Vec3Float {
	if p.Strafe[0] == 0 && p.Strafe[1] == 0 {
		return vec.Vec3Float{}
	}

	yaw, pitch := p.Rotation.X, p.Rotation.Y
	strafe := degrees(math.Atan2(float64(p.Strafe[0]), float64(p.Strafe[1])))
	xAngle := radians(yaw + strafe)

	if !p.Flying {
		return vec.Vec3Float{X: math.Cos(xAngle), Y: 0, Z: math.Sin(xAngle)}
	}

	m := math.Cos(radians(pitch))
	dy := math.Sin(radians(pitch))
	if p.Strafe[1] != 0 {
		// Боковое движение в полёте не меняет высоту
		dy = 0
		m = 1
	}
	if p.Strafe[0] > 0 {
		// Назад – против взгляда
		dy = -dy
	}
	return vec.Vec3Float{X: math.Cos(xAngle) * m, Y: dy, Z: math.Sin(xAngle) * m}
}

// collide применяет смещение с разрешением коллизий
func (p *Player) collide(displacement vec.Vec3Float, solid physics.BlockChecker) {
	pos, vertical := p.Collider.Resolve(p.Position.Add(displacement), solid)
	if vertical {
		p.DY = 0
	}
	p.Position = pos
	p.Jumped = p.DY != 0
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
