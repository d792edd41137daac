package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus статус здоровья компонента
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth здоровье отдельного компонента
type ComponentHealth struct {
	Name      string       `json:"name"`
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	LatencyMs int64        `json:"latency_ms"`
}

// HealthCheckResult результат проверки здоровья системы
type HealthCheckResult struct {
	Status        HealthStatus               `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Version       string                     `json:"version"`
	Components    map[string]ComponentHealth `json:"components"`
	System        SystemHealth               `json:"system"`
}

// SystemHealth системные метрики
type SystemHealth struct {
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	Goroutines    int     `json:"goroutines"`
}

// HealthCheckFunc проверка одного компонента; nil означает, что компонент исправен
type HealthCheckFunc func(ctx context.Context) error

type registeredCheck struct {
	check HealthCheckFunc
	// critical компонент без которого сервис неработоспособен
	critical bool
}

// HealthChecker проверяет здоровье системы
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]registeredCheck
	startTime  time.Time
	version    string
}

// NewHealthChecker создает новый HealthChecker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		components: make(map[string]registeredCheck),
		startTime:  time.Now(),
		version:    version,
	}
}

// RegisterComponent регистрирует компонент для проверки здоровья
// Сбой некритичного компонента переводит сервис в degraded, критичного в unhealthy
func (hc *HealthChecker) RegisterComponent(name string, critical bool, check HealthCheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.components[name] = registeredCheck{check: check, critical: critical}
}

// Check выполняет проверку здоровья всех компонентов
func (hc *HealthChecker) Check(ctx context.Context) HealthCheckResult {
	hc.mu.RLock()
	names := make([]string, 0, len(hc.components))
	for name := range hc.components {
		names = append(names, name)
	}
	checks := make(map[string]registeredCheck, len(hc.components))
	for name, rc := range hc.components {
		checks[name] = rc
	}
	hc.mu.RUnlock()
	sort.Strings(names)

	components := make(map[string]ComponentHealth, len(names))
	overallStatus := HealthStatusHealthy

	for _, name := range names {
		rc := checks[name]
		start := time.Now()
		err := rc.check(ctx)
		health := ComponentHealth{
			Name:      name,
			Status:    HealthStatusHealthy,
			Timestamp: time.Now(),
			LatencyMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			health.Message = fmt.Sprintf("%s error: %v", name, err)
			if rc.critical {
				health.Status = HealthStatusUnhealthy
				overallStatus = HealthStatusUnhealthy
			} else {
				health.Status = HealthStatusDegraded
				if overallStatus == HealthStatusHealthy {
					overallStatus = HealthStatusDegraded
				}
			}
		}
		components[name] = health
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HealthCheckResult{
		Status:        overallStatus,
		Timestamp:     time.Now(),
		UptimeSeconds: time.Since(hc.startTime).Seconds(),
		Version:       hc.version,
		Components:    components,
		System: SystemHealth{
			MemoryAllocMB: float64(m.Alloc) / (1 << 20),
			Goroutines:    runtime.NumGoroutine(),
		},
	}
}

// GinHandler возвращает обработчик health check endpoint
// @Summary Состояние сервиса
// @Description Проверяет доступность сервиса и журнала запусков
// @Tags system
// @Produce json
// @Success 200 {object} HealthCheckResult "Сервис работает (healthy или degraded)"
// @Failure 503 {object} HealthCheckResult "Сервис неработоспособен"
// @Router /health [get]
func (hc *HealthChecker) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result := hc.Check(ctx)

		// degraded отвечает 200: сервис обрабатывает файлы без журнала
		statusCode := http.StatusOK
		if result.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, result)
	}
}

// LivenessHandler простой liveness probe
// @Summary Liveness probe
// @Tags system
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health/live [get]
func (hc *HealthChecker) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}
