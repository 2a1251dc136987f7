package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// SectorStat – сводка по одному сектору
type SectorStat struct {
	X       int            `json:"x"`
	Z       int            `json:"z"`
	Blocks  int            `json:"blocks"`
	Exposed int            `json:"exposed"`
	Shown   int            `json:"shown"`
	Changes int            `json:"changes"` // Правок сектора, включая генерацию
	ByType  map[string]int `json:"by_type"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config path (or VOXEL_CONFIG)")
		seed       = flag.Int64("seed", 0, "Override world seed (0 – from config)")
		view       = flag.Int("view", -1, "Override view distance in sectors (-1 – from config)")
		asJSON     = flag.Bool("json", false, "Print JSON instead of a table")
	)
	flag.Parse()

	logger := logging.NewConsoleLogger("worldstat", os.Stderr)
	if err := logging.GetLoggerManager().Attach("worldstat", logger); err != nil {
		log.Fatalf("❌ Logger: %v", err)
	}
	logging.SetDefaultLogger(logger)
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *view >= 0 {
		cfg.World.ViewDistance = *view
	}

	session, err := game.Bootstrap(cfg, nil)
	if err != nil {
		log.Fatalf("❌ Bootstrap: %v", err)
	}

	stats := collect(session.World)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			log.Fatalf("❌ JSON: %v", err)
		}
		return
	}

	fmt.Printf("seed=%d size=%d sector=%d view=%d\n", cfg.World.Seed, cfg.World.Size, cfg.World.SectorSize, cfg.World.ViewDistance)
	fmt.Printf("%8s %8s %8s %8s %8s %8s\n", "sx", "sz", "blocks", "exposed", "shown", "changes")
	var total SectorStat
	for _, s := range stats {
		fmt.Printf("%8d %8d %8d %8d %8d %8d\n", s.X, s.Z, s.Blocks, s.Exposed, s.Shown, s.Changes)
		total.Blocks += s.Blocks
		total.Exposed += s.Exposed
		total.Shown += s.Shown
		total.Changes += s.Changes
	}
	fmt.Printf("%17s %8d %8d %8d %8d\n", "total", total.Blocks, total.Exposed, total.Shown, total.Changes)
}

// collect считает блоки, открытые и видимые блоки и правки по секторам
func collect(w *world.World) []SectorStat {
	var out []SectorStat
	w.RangeSectors(func(s *world.Sector) bool {
		coords := s.Coords
		st := SectorStat{X: coords.X, Z: coords.Y, Changes: s.ChangeCounter, ByType: make(map[string]int)}
		s.Range(func(pos vec.Vec3, id block.BlockID) bool {
			st.Blocks++
			st.ByType[block.Name(id)]++
			if w.Exposed(pos) {
				st.Exposed++
			}
			if w.IsShown(pos) {
				st.Shown++
			}
			return true
		})
		out = append(out, st)
		return true
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}
