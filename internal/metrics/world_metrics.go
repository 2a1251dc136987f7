package metrics

import (
	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

// WorldMetrics – Prometheus-метрики мира и тиков симуляции.
//
// Метрики:
// * voxel_blocks_changed_total{op} – counter (added/removed)
// * voxel_visibility_changes_total{change,action} – counter (shown/hidden × check/show/hide)
// * voxel_sector_changes_total – counter
// * voxel_queue_length – gauge
// * voxel_shown_blocks – gauge
// * voxel_world_blocks – gauge
// * voxel_tick_duration_seconds – histogram
// * voxel_queue_processed_per_tick – histogram
type WorldMetrics struct {
	blocksChanged  *prometheus.CounterVec
	visibility     *prometheus.CounterVec
	sectorChanges  prometheus.Counter
	queueLength    prometheus.Gauge
	shownBlocks    prometheus.Gauge
	worldBlocks    prometheus.Gauge
	tickDuration   prometheus.Histogram
	queueProcessed prometheus.Histogram
}

// NewWorldMetrics создаёт метрики и регистрирует их в reg
func NewWorldMetrics(reg prometheus.Registerer) *WorldMetrics {
	const ns = "voxel"
	m := &WorldMetrics{
		blocksChanged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "blocks_changed_total",
			Help:      "Число добавленных и удалённых блоков.",
		}, []string{"op"}),
		visibility: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "visibility_changes_total",
			Help:      "Изменения множества видимых блоков по действию очереди.",
		}, []string{"change", "action"}),
		sectorChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "sector_changes_total",
			Help:      "Число смен активного сектора.",
		}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "queue_length",
			Help:      "Элементов в очереди видимости после тика.",
		}),
		shownBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "shown_blocks",
			Help:      "Размер множества видимых блоков.",
		}),
		worldBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "world_blocks",
			Help:      "Общее число блоков мира.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "tick_duration_seconds",
			Help:      "Длительность тика симуляции.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.025, 0.05, 0.1},
		}),
		queueProcessed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "queue_processed_per_tick",
			Help:      "Элементов очереди видимости, обработанных за тик.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	reg.MustRegister(m.blocksChanged, m.visibility, m.sectorChanges,
		m.queueLength, m.shownBlocks, m.worldBlocks, m.tickDuration, m.queueProcessed)
	return m
}

// Listener возвращает слушателя событий мира, обновляющего счётчики
func (m *WorldMetrics) Listener() world.Listener {
	return func(ev world.Event) {
		switch ev.Type {
		case world.EventTypeBlockAdded:
			m.blocksChanged.WithLabelValues("added").Inc()
		case world.EventTypeBlockRemoved:
			m.blocksChanged.WithLabelValues("removed").Inc()
		case world.EventTypeBlockShown:
			m.visibility.WithLabelValues("shown", ev.Action.String()).Inc()
		case world.EventTypeBlockHidden:
			m.visibility.WithLabelValues("hidden", ev.Action.String()).Inc()
		case world.EventTypeSectorChanged:
			m.sectorChanges.Inc()
		}
	}
}

// ObserveWorld обновляет gauges по текущему состоянию мира
func (m *WorldMetrics) ObserveWorld(w *world.World) {
	m.queueLength.Set(float64(w.QueueLen()))
	m.shownBlocks.Set(float64(w.ShownCount()))
	m.worldBlocks.Set(float64(w.BlockCount()))
}

// ObserveTick учитывает итог тика
func (m *WorldMetrics) ObserveTick(st game.TickStats) {
	m.tickDuration.Observe(st.Duration.Seconds())
	m.queueProcessed.Observe(float64(st.Processed))
}

// Attach подключает метрики к сессии: события мира и итоги тиков
func (m *WorldMetrics) Attach(s *game.Session) {
	s.World.AddListener(m.Listener())
	s.OnTick(func(st game.TickStats) {
		m.ObserveTick(st)
		m.ObserveWorld(s.World)
	})
	m.ObserveWorld(s.World)
}
