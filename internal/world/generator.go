package world

import (
	"math/rand"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/util"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Константы генерации ландшафта
const (
	FloorY        = -2 // Уровень травы
	WallHeight    = 5  // Стены: от FloorY до FloorY+4
	HillBaseY     = -1 // Нижний слой холма
	HillMinHeight = 1
	HillMaxHeight = 6
	HillMinRadius = 4
	HillMaxRadius = 8
	HillMargin    = 10 // Отступ центров холмов от края мира
	SpawnClearing = 5  // Холмы не заходят в этот радиус вокруг спавна
)

// hillMaterials – материалы, из которых складываются холмы
var hillMaterials = []block.BlockID{block.GrassBlockID, block.SandBlockID, block.BrickBlockID}

// Generator строит стартовый мир: плоский пол, каменные стены по краю
// и конические холмы
type Generator struct {
	Seed       int64   // Сид для шума и расположения холмов
	Size       int     // Полуразмер мира (пол от -Size до Size)
	HillCount  int     // Количество холмов
	NoiseScale float64 // Масштаб шума, выбирающего высоту и материал

	heightNoise   *util.Noise
	materialNoise *util.Noise
}

// NewGenerator создаёт генератор мира
func NewGenerator(seed int64, size, hillCount int) *Generator {
	const noiseScale = 0.07
	return &Generator{
		Seed:          seed,
		Size:          size,
		HillCount:     hillCount,
		NoiseScale:    noiseScale,
		heightNoise:   util.NewNoise(seed, noiseScale),
		materialNoise: util.NewNoise(seed+42, noiseScale),
	}
}

// Generate заполняет мир блоками без пересчёта соседей.
// Возвращает число вставок (перезаписанные клетки учитываются повторно).
func (g *Generator) Generate(w *World) (int, error) {
	placed := 0
	put := func(x, y, z int, id block.BlockID) error {
		if err := w.AddBlockDeferred(vec.Vec3{X: x, Y: y, Z: z}, id); err != nil {
			return err
		}
		placed++
		return nil
	}

	n := g.Size
	for x := -n; x <= n; x++ {
		for z := -n; z <= n; z++ {
			// Пол: трава над камнем
			if err := put(x, FloorY, z, block.GrassBlockID); err != nil {
				return placed, err
			}
			if err := put(x, FloorY-1, z, block.StoneBlockID); err != nil {
				return placed, err
			}
			// Стены по краю мира
			if x == -n || x == n || z == -n || z == n {
				for dy := 0; dy < WallHeight; dy++ {
					if err := put(x, FloorY+dy, z, block.StoneBlockID); err != nil {
						return placed, err
					}
				}
			}
		}
	}

	rng := rand.New(rand.NewSource(g.Seed))
	o := n - HillMargin
	if o < 1 {
		logging.Debug("Мир слишком мал для холмов: size=%d", n)
		return placed, nil
	}

	for i := 0; i < g.HillCount; i++ {
		a := rng.Intn(2*o+1) - o // Центр холма
		b := rng.Intn(2*o+1) - o
		s := HillMinRadius + rng.Intn(HillMaxRadius-HillMinRadius+1)
		h := HillMinHeight + g.heightNoise.Pick(a, b, HillMaxHeight-HillMinHeight+1)
		material := hillMaterials[g.materialNoise.Pick(a, b, len(hillMaterials))]

		for y := HillBaseY; y < HillBaseY+h; y++ {
			for x := a - s; x <= a+s; x++ {
				for z := b - s; z <= b+s; z++ {
					if (x-a)*(x-a)+(z-b)*(z-b) > (s+1)*(s+1) {
						continue
					}
					if x*x+z*z < SpawnClearing*SpawnClearing {
						continue
					}
					if err := put(x, y, z, material); err != nil {
						return placed, err
					}
				}
			}
			s-- // Холм сужается кверху
		}
	}

	logging.Info("Сгенерирован мир: seed=%d size=%d hills=%d вставок=%d блоков=%d",
		g.Seed, g.Size, g.HillCount, placed, w.BlockCount())
	return placed, nil
}
