package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	journalhandler "procesos/internal/api/handlers/journal"
	payrollhandler "procesos/internal/api/handlers/payroll"
	reconhandler "procesos/internal/api/handlers/reconciliation"
	systemhandler "procesos/internal/api/handlers/system"
	"procesos/server/handlers"
	"procesos/server/middleware"
	"procesos/server/monitoring"
)

// Маршруты, отдающие файлы; gzip для них отключен
const (
	ReconciliationProcessPath = "/agendamiento-v2/procesar"
	PayrollProcessPath        = "/liquidacion/procesar"
)

// Handlers все обработчики, которые регистрирует роутер
type Handlers struct {
	Reconciliation *reconhandler.Handler
	Payroll        *payrollhandler.Handler
	Journal        *journalhandler.Handler
	ErrorMetrics   *systemhandler.ErrorMetricsHandler
	Health         *monitoring.HealthChecker
}

// Options параметры middleware загрузок
type Options struct {
	MaxUploadBytes  int64
	UploadRateLimit float64
	UploadRateBurst int
	SwaggerHost     string
}

// NewEngine создает gin engine со всеми middleware и маршрутами
func NewEngine(h Handlers, opts Options) *gin.Engine {
	// Устанавливаем режим Gin: release для продакшена, debug для разработки
	// Можно переопределить через переменную окружения GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware(ReconciliationProcessPath, PayrollProcessPath))

	handlers.RegisterSwaggerRoutes(router, opts.SwaggerHost)

	RegisterSystemRoutes(router, h)

	// Загрузки ограничены по размеру и частоте
	uploads := router.Group("/")
	uploads.Use(middleware.MaxUploadSize(opts.MaxUploadBytes))
	uploads.Use(middleware.NewRateLimiter(opts.UploadRateLimit, opts.UploadRateBurst).Middleware())

	RegisterReconciliationRoutes(uploads, h.Reconciliation)
	RegisterPayrollRoutes(uploads, h.Payroll)

	return router
}

// RegisterReconciliationRoutes маршруты сверки
func RegisterReconciliationRoutes(router gin.IRouter, h *reconhandler.Handler) {
	if h == nil {
		return
	}
	group := router.Group("/agendamiento-v2")
	group.POST("/procesar", h.HandleProcess)
	group.POST("/resumen", h.HandleSummary)
}

// RegisterPayrollRoutes маршруты расчета выплат
func RegisterPayrollRoutes(router gin.IRouter, h *payrollhandler.Handler) {
	if h == nil {
		return
	}
	group := router.Group("/liquidacion")
	group.POST("/procesar", h.HandleProcess)
	group.POST("/resumen", h.HandleSummary)
}

// RegisterSystemRoutes служебные маршруты: здоровье, журнал, метрики ошибок
func RegisterSystemRoutes(router gin.IRouter, h Handlers) {
	if h.Health != nil {
		router.GET("/health", h.Health.GinHandler())
		router.GET("/health/live", h.Health.LivenessHandler())
	}

	v1 := router.Group("/api/v1")
	if h.Journal != nil {
		v1.GET("/runs", h.Journal.HandleListRuns)
	}
	if h.ErrorMetrics != nil {
		v1.GET("/errors/metrics", h.ErrorMetrics.HandleErrorMetrics)
		v1.POST("/errors/metrics/reset", h.ErrorMetrics.HandleResetErrorMetrics)
	}
}
