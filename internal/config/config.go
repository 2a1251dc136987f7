package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Queue     QueueConfig     `yaml:"queue"`
	Player    PlayerConfig    `yaml:"player"`
	Server    ServerConfig    `yaml:"server"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	LogLevel  string          `yaml:"log_level"`
}

// WorldConfig параметры генерации и секторизации мира
type WorldConfig struct {
	Seed         int64 `yaml:"seed"`
	Size         int   `yaml:"size"`          // Половина стороны квадратного пола в блоках
	SectorSize   int   `yaml:"sector_size"`   // Сторона сектора в блоках
	ViewDistance int   `yaml:"view_distance"` // Радиус загрузки в секторах; <= 0 – без отсечения
	HillCount    int   `yaml:"hill_count"`
}

// QueueConfig параметры очереди видимости
type QueueConfig struct {
	PerTickBudget int           `yaml:"per_tick_budget"` // Максимум элементов очереди за тик
	TickRate      int           `yaml:"tick_rate"`       // Тиков в секунду
	TimeBudget    time.Duration `yaml:"time_budget"`     // Если > 0, очередь разбирается по времени ("4ms")
}

// PlayerConfig физические константы игрока
type PlayerConfig struct {
	WalkingSpeed     float64 `yaml:"walking_speed"`
	FlyingSpeed      float64 `yaml:"flying_speed"`
	Gravity          float64 `yaml:"gravity"`
	MaxJumpHeight    float64 `yaml:"max_jump_height"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	Height           int     `yaml:"height"`
	Pad              float64 `yaml:"pad"`
	Reach            float64 `yaml:"reach"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"` // REST API и /metrics
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // Пусто – только in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	// PublishVisibility – публиковать также block_shown/block_hidden
	PublishVisibility bool `yaml:"publish_visibility"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`     // host:port OTLP HTTP; пусто – localhost:4318
	SampleRatio float64 `yaml:"sample_ratio"` // Доля трассируемых тиков
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:         12345,
			Size:         80,
			SectorSize:   16,
			ViewDistance: 4,
			HillCount:    120,
		},
		Queue: QueueConfig{
			PerTickBudget: 2000,
			TickRate:      60,
		},
		Player: PlayerConfig{
			WalkingSpeed:     5,
			FlyingSpeed:      15,
			Gravity:          20,
			MaxJumpHeight:    1.5,
			TerminalVelocity: 50,
			Height:           2,
			Pad:              0.25,
			Reach:            8,
			MouseSensitivity: 0.15,
		},
		EventBus: EventBusConfig{
			Stream:    "WORLD",
			Retention: 24,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "voxel-world",
			SampleRatio: 0.01,
		},
		LogLevel: "info",
	}
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	if c.World.SectorSize <= 0 {
		return fmt.Errorf("world.sector_size должен быть > 0, получено %d", c.World.SectorSize)
	}
	if c.World.Size < 0 {
		return fmt.Errorf("world.size не может быть отрицательным: %d", c.World.Size)
	}
	if c.Queue.TickRate <= 0 {
		return fmt.Errorf("queue.tick_rate должен быть > 0, получено %d", c.Queue.TickRate)
	}
	if c.Queue.PerTickBudget <= 0 {
		return fmt.Errorf("queue.per_tick_budget должен быть > 0, получено %d", c.Queue.PerTickBudget)
	}
	if c.Queue.TimeBudget < 0 {
		return fmt.Errorf("queue.time_budget не может быть отрицательным: %v", c.Queue.TimeBudget)
	}
	if c.Player.Pad < 0 || c.Player.Pad >= 0.5 {
		return fmt.Errorf("player.pad должен быть в [0, 0.5), получено %v", c.Player.Pad)
	}
	if c.Player.Height <= 0 {
		return errors.New("player.height должен быть > 0")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio должен быть в [0, 1], получено %v", c.Telemetry.SampleRatio)
	}
	if c.Player.Gravity < 0 || c.Player.TerminalVelocity <= 0 {
		return errors.New("player.gravity и player.terminal_velocity должны быть положительными")
	}
	return nil
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "VOXEL_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан – использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
