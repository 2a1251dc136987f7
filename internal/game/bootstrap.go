package game

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/entity"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
)

// MotionParams переводит секцию player конфигурации в константы движения
func MotionParams(cfg config.PlayerConfig) entity.MotionParams {
	return entity.MotionParams{
		WalkingSpeed:     cfg.WalkingSpeed,
		FlyingSpeed:      cfg.FlyingSpeed,
		Gravity:          cfg.Gravity,
		MaxJumpHeight:    cfg.MaxJumpHeight,
		TerminalVelocity: cfg.TerminalVelocity,
		Height:           cfg.Height,
		Pad:              cfg.Pad,
		MouseSensitivity: cfg.MouseSensitivity,
	}
}

// Bootstrap генерирует мир по конфигурации, ставит игрока в точку спавна
// и активирует его сектор. Слушатели и отрисовка подключаются до генерации,
// чтобы увидеть первую загрузку.
func Bootstrap(cfg *config.Config, renderer world.Renderer, listeners ...world.Listener) (*Session, error) {
	start := time.Now()

	w := world.NewWorld(world.Options{
		SectorSize:   cfg.World.SectorSize,
		ViewDistance: cfg.World.ViewDistance,
		Renderer:     renderer,
	})
	for _, l := range listeners {
		w.AddListener(l)
	}

	gen := world.NewGenerator(cfg.World.Seed, cfg.World.Size, cfg.World.HillCount)
	if _, err := gen.Generate(w); err != nil {
		return nil, fmt.Errorf("генерация мира: %w", err)
	}

	player := entity.NewPlayer(MotionParams(cfg.Player), vec.Vec3Float{})
	session := NewSession(w, player, Options{
		PerTickBudget: cfg.Queue.PerTickBudget,
		TimeBudget:    cfg.Queue.TimeBudget,
		Reach:         cfg.Player.Reach,
	})

	// Первая активация сектора опустошает очередь целиком
	w.Track(player.Position)

	logging.Info("🌍 Мир готов за %v: блоков=%d видимых=%d сессия=%s",
		time.Since(start), w.BlockCount(), w.ShownCount(), session.ID)
	return session, nil
}
