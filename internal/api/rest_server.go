package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Version – версия сервера в /api/server
const Version = "v0.1.0"

// RestServer представляет отладочный REST API над сессией симуляции
type RestServer struct {
	router  *gin.Engine
	server  *http.Server
	session *game.Session
	lock    sync.Locker
	port    string
	metrics *ServerMetrics
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port    string        // порт для запуска сервера
	Session *game.Session // сессия симуляции
	// Lock сериализует доступ к сессии вместе с циклом тиков
	Lock sync.Locker
	// Registerer/Gatherer – регистр Prometheus; nil – глобальный
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.Lock == nil {
		config.Lock = &sync.Mutex{}
	}
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware("voxel_api"))

	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	promMw := middleware.NewPrometheusMiddleware("voxel_api", config.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, config.Gatherer)

	rs := &RestServer{
		router:  router,
		session: config.Session,
		lock:    config.Lock,
		port:    config.Port,
		metrics: NewServerMetrics(),
	}
	rs.server = &http.Server{
		Addr:              rs.port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	rs.setupRoutes()
	return rs
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.GET("/stats", rs.handleStats)
		api.GET("/server", rs.handleServerInfo)
		api.GET("/player", rs.handlePlayer)
		api.POST("/input", rs.handleInput)

		w := api.Group("/world")
		w.GET("/block", rs.handleGetBlock)
		w.PUT("/block", rs.handlePutBlock)
		w.DELETE("/block", rs.handleDeleteBlock)
		w.GET("/hit", rs.handleHit)
		w.GET("/shown", rs.handleShown)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// withSession выполняет fn под блокировкой сессии
func (rs *RestServer) withSession(fn func(s *game.Session)) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	fn(rs.session)
}

// handleStats возвращает сводку сессии
func (rs *RestServer) handleStats(c *gin.Context) {
	var stats game.Stats
	rs.withSession(func(s *game.Session) { stats = s.Stats() })

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleServerInfo возвращает информацию о процессе
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    rs.metrics.Snapshot(),
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, GenericResponse{
		Success: false,
		Message: err.Error(),
	})
}

// Start запускает REST сервер; блокирует до Stop
func (rs *RestServer) Start() error {
	logging.Info("🌐 REST API слушает %s", rs.port)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop корректно останавливает REST сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.server.Shutdown(ctx)
}
