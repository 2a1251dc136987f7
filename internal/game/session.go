package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/voxel-world/internal/entity"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Параметры шага симуляции
const (
	MaxTickDelta = 0.2 // Секунд; длинные паузы не превращаются в скачок
	Substeps     = 8   // Подшагов физики на тик
)

var (
	// ErrUnbreakable – блок нельзя сломать
	ErrUnbreakable = errors.New("block is unbreakable")
	// ErrBlocked – новый блок пересёкся бы с игроком
	ErrBlocked = errors.New("placement intersects player")
)

// Options – параметры сессии
type Options struct {
	// PerTickBudget – максимум элементов очереди видимости за тик
	PerTickBudget int
	// TimeBudget – если > 0, очередь разбирается по времени, а не по количеству
	TimeBudget time.Duration
	// Reach – дальность луча выбора блока
	Reach float64
	// PreventSelfPlacement запрещает ставить блок в клетку игрока
	PreventSelfPlacement bool
}

// TickStats – итог одного тика
type TickStats struct {
	Processed     int           // Элементов очереди обработано
	QueueLen      int           // Осталось в очереди
	SectorChanged bool          // Игрок сменил сектор
	Duration      time.Duration // Длительность тика
}

// Stats – сводка для HUD и REST
type Stats struct {
	SessionID   string        `json:"session_id"`
	Ticks       uint64        `json:"ticks"`
	Position    vec.Vec3Float `json:"position"`
	Rotation    vec.Vec2Float `json:"rotation"`
	Sector      vec.Vec2      `json:"sector"`
	Flying      bool          `json:"flying"`
	ActiveBlock string        `json:"active_block"`
	ShownBlocks int           `json:"shown_blocks"`
	WorldBlocks int           `json:"world_blocks"`
	QueueLen    int           `json:"queue_len"`
	LastTick    time.Duration `json:"last_tick_ns"`
}

// Session связывает мир и игрока и продвигает их по тикам.
// Не потокобезопасна: внешние адаптеры сериализуют доступ сами.
type Session struct {
	ID     string
	World  *world.World
	Player *entity.Player

	opts     Options
	ticks    uint64
	lastTick time.Duration
	tracer   trace.Tracer
	onTick   []func(TickStats)
}

// NewSession создаёт сессию над готовым миром
func NewSession(w *world.World, player *entity.Player, opts Options) *Session {
	if opts.PerTickBudget <= 0 && opts.TimeBudget <= 0 {
		opts.PerTickBudget = 2000
	}
	if opts.Reach <= 0 {
		opts.Reach = world.DefaultReach
	}

	return &Session{
		ID:     uuid.NewString(),
		World:  w,
		Player: player,
		opts:   opts,
		tracer: otel.Tracer("voxel-world/game"),
	}
}

// OnTick подписывает обработчик на итоги тиков
func (s *Session) OnTick(fn func(TickStats)) {
	s.onTick = append(s.onTick, fn)
}

// Update выполняет один тик: разбирает часть очереди видимости,
// отслеживает сектор игрока и двигает игрока за Substeps подшагов.
func (s *Session) Update(ctx context.Context, dt float64) TickStats {
	_, span := s.tracer.Start(ctx, "session.update")
	defer span.End()

	start := time.Now()
	var st TickStats

	if s.opts.TimeBudget > 0 {
		st.Processed = s.World.ProcessFor(s.opts.TimeBudget)
	} else {
		st.Processed = s.World.ProcessBounded(s.opts.PerTickBudget)
	}

	st.SectorChanged = s.World.Track(s.Player.Position)

	if dt > MaxTickDelta {
		dt = MaxTickDelta
	}
	if dt > 0 {
		sub := dt / Substeps
		for i := 0; i < Substeps; i++ {
			s.Player.Move(sub, s.World.IsSolid)
		}
	}

	s.ticks++
	st.QueueLen = s.World.QueueLen()
	st.Duration = time.Since(start)
	s.lastTick = st.Duration

	span.SetAttributes(
		attribute.Int("queue.processed", st.Processed),
		attribute.Int("queue.len", st.QueueLen),
		attribute.Bool("sector.changed", st.SectorChanged),
	)

	for _, fn := range s.onTick {
		fn(st)
	}
	return st
}

// Target возвращает блок под прицелом и клетку перед ним
func (s *Session) Target() (hit, previous *vec.Vec3) {
	return s.World.HitTest(s.Player.Position, s.Player.SightVector(), s.opts.Reach)
}

// Mine ломает блок под прицелом. Возвращает nil, если прицел пуст.
func (s *Session) Mine(ctx context.Context) (*vec.Vec3, error) {
	_, span := s.tracer.Start(ctx, "session.mine")
	defer span.End()

	hit, _ := s.Target()
	if hit == nil {
		return nil, nil
	}

	id, _ := s.World.BlockAt(*hit)
	if !block.IsBreakable(id) {
		return hit, fmt.Errorf("%w: %s at (%d,%d,%d)", ErrUnbreakable, block.Name(id), hit.X, hit.Y, hit.Z)
	}

	if _, err := s.World.RemoveBlock(*hit); err != nil {
		return hit, err
	}
	logging.Debug("Блок %s сломан в (%d,%d,%d)", block.Name(id), hit.X, hit.Y, hit.Z)
	return hit, nil
}

// Place ставит активный блок в клетку перед блоком под прицелом.
// Возвращает nil, если ставить некуда.
func (s *Session) Place(ctx context.Context) (*vec.Vec3, error) {
	_, span := s.tracer.Start(ctx, "session.place")
	defer span.End()

	hit, previous := s.Target()
	if hit == nil || previous == nil {
		return nil, nil
	}

	if s.opts.PreventSelfPlacement && s.Player.Collider.Intersects(s.Player.Position, *previous) {
		return previous, fmt.Errorf("%w: (%d,%d,%d)", ErrBlocked, previous.X, previous.Y, previous.Z)
	}

	if err := s.World.AddBlock(*previous, s.Player.ActiveBlock); err != nil {
		return previous, err
	}
	logging.Debug("Блок %s поставлен в (%d,%d,%d)", block.Name(s.Player.ActiveBlock), previous.X, previous.Y, previous.Z)
	return previous, nil
}

// Stats возвращает сводку состояния сессии
func (s *Session) Stats() Stats {
	sector, ok := s.World.ActiveSector()
	if !ok {
		sector = world.Sectorize(s.Player.Position, s.World.SectorSize())
	}

	return Stats{
		SessionID:   s.ID,
		Ticks:       s.ticks,
		Position:    s.Player.Position,
		Rotation:    s.Player.Rotation,
		Sector:      sector,
		Flying:      s.Player.Flying,
		ActiveBlock: block.Name(s.Player.ActiveBlock),
		ShownBlocks: s.World.ShownCount(),
		WorldBlocks: s.World.BlockCount(),
		QueueLen:    s.World.QueueLen(),
		LastTick:    s.lastTick,
	}
}
