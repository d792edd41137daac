package system

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"procesos/server/middleware"
)

// ErrorMetricsHandler обработчик для получения метрик ошибок
type ErrorMetricsHandler struct{}

// NewErrorMetricsHandler создает новый обработчик метрик ошибок
func NewErrorMetricsHandler() *ErrorMetricsHandler {
	return &ErrorMetricsHandler{}
}

// HandleErrorMetrics возвращает метрики ошибок
// @Summary Метрики ошибок
// @Description Счетчики ошибок по типам, кодам и эндпоинтам, почасовые корзины и последние ошибки
// @Tags system
// @Produce json
// @Success 200 {object} errors.MetricsSnapshot "Метрики"
// @Router /api/v1/errors/metrics [get]
func (h *ErrorMetricsHandler) HandleErrorMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetErrorMetrics().Snapshot())
}

// HandleResetErrorMetrics сбрасывает метрики ошибок
// @Summary Сбросить метрики ошибок
// @Tags system
// @Success 204
// @Router /api/v1/errors/metrics/reset [post]
func (h *ErrorMetricsHandler) HandleResetErrorMetrics(c *gin.Context) {
	middleware.GetErrorMetrics().Reset()
	c.Status(http.StatusNoContent)
}
