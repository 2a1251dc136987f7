package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/annel0/voxel-world/internal/api"
	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/eventbus"
	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/metrics"
	"github.com/annel0/voxel-world/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или VOXEL_CONFIG)")
	flag.Parse()

	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.GetLoggerManager().SetLogLevel("server", logging.ParseLevel(cfg.LogLevel), logging.TRACE); err != nil {
		logging.Warn("⚠️ Уровень логирования: %v", err)
	}

	logging.Info("🎮 Запуск Voxel World: seed=%d size=%d sector=%d view=%d",
		cfg.World.Seed, cfg.World.Size, cfg.World.SectorSize, cfg.World.ViewDistance)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// === OBSERVABILITY ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	registry := prometheus.NewRegistry()
	worldMetrics := metrics.NewWorldMetrics(registry)

	// === EVENT BUS ===
	bus := newEventBus(cfg.EventBus)
	busMetrics := eventbus.NewMetricsExporter(bus, registry)
	busMetrics.Start()
	if _, err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("⚠️ LoggingListener: %v", err)
	}

	// === WORLD ===
	session, err := game.Bootstrap(cfg, nil)
	if err != nil {
		logging.Error("❌ Ошибка создания мира: %v", err)
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}
	worldMetrics.Attach(session)

	publisher := eventbus.NewWorldPublisher(bus, session.ID, cfg.EventBus.PublishVisibility, 0)
	session.World.AddListener(publisher.Listener())

	// === TICK LOOP ===
	var mu sync.Mutex
	loop := game.NewLoop(session, &mu, cfg.Queue.TickRate)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()

	// === REST API ===
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	restServer := api.NewRestServer(api.Config{
		Port:       restPort,
		Session:    session,
		Lock:       &mu,
		Registerer: registry,
		Gatherer:   registry,
	})
	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ REST API остановлен с ошибкой: %v", err)
			stop()
		}
	}()

	if cfg.Queue.TimeBudget > 0 {
		logging.Info("✅ Симуляция запущена: %d тиков/с, бюджет очереди %v", cfg.Queue.TickRate, cfg.Queue.TimeBudget)
	} else {
		logging.Info("✅ Симуляция запущена: %d тиков/с, бюджет очереди %d", cfg.Queue.TickRate, cfg.Queue.PerTickBudget)
	}
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   📈 Метрики: http://localhost%s/metrics", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)

	<-ctx.Done()
	logging.Info("📡 Получен сигнал завершения, остановка...")

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := restServer.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	wg.Wait()

	publisher.Close()
	if dropped := publisher.Dropped(); dropped > 0 {
		logging.Warn("⚠️ Отброшено событий мира: %d", dropped)
	}
	if err := bus.Close(); err != nil {
		logging.Error("❌ Ошибка закрытия шины событий: %v", err)
	}
	busMetrics.Stop()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("👋 Сервер остановлен после %d тиков", session.Stats().Ticks)
}

// newEventBus выбирает JetStream при заданном URL, иначе in-memory шину
func newEventBus(cfg config.EventBusConfig) eventbus.EventBus {
	if cfg.URL == "" {
		logging.Info("📨 Шина событий: in-memory")
		return eventbus.NewMemoryBus(4096)
	}

	bus, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, time.Duration(cfg.Retention)*time.Hour)
	if err != nil {
		logging.Warn("⚠️ JetStream недоступен (%v), используется in-memory шина", err)
		return eventbus.NewMemoryBus(4096)
	}
	logging.Info("📨 Шина событий: JetStream %s, стрим %s", cfg.URL, cfg.Stream)
	return bus
}
