package journal

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	journalapp "procesos/internal/application/journal"
	"procesos/internal/domain/repositories"
	apperrors "procesos/server/errors"
	"procesos/server/middleware"
)

// Handler HTTP обработчик журнала запусков
type Handler struct {
	useCase *journalapp.UseCase
}

// NewHandler создает новый HTTP обработчик журнала
// useCase может быть nil, если журнал не удалось открыть
func NewHandler(useCase *journalapp.UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// HandleListRuns обработчик списка запусков
// @Summary Последние запуски
// @Description Возвращает последние записи журнала, новые первыми, и количество запусков по видам
// @Tags journal
// @Produce json
// @Param limit query int false "Количество записей (по умолчанию 50, максимум 500)"
// @Param kind query string false "Вид обработки" Enums(reconciliation, payroll)
// @Success 200 {object} journalapp.Overview "Журнал"
// @Failure 400 {object} middleware.ErrorResponse "Неверные параметры"
// @Failure 500 {object} middleware.ErrorResponse "Ошибка чтения журнала"
// @Failure 503 {object} middleware.ErrorResponse "Журнал отключен"
// @Router /api/v1/runs [get]
func (h *Handler) HandleListRuns(c *gin.Context) {
	if h.useCase == nil {
		middleware.HandleGinError(c, apperrors.NewServiceUnavailableError("Журнал запусков недоступен", nil))
		return
	}

	filter := repositories.RunFilter{Limit: repositories.DefaultRunLimit}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			middleware.HandleGinError(c, apperrors.NewValidationError("limit must be a positive integer", err))
			return
		}
		filter.Limit = limit
	}

	kind, err := journalapp.ParseKind(c.Query("kind"))
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("unknown kind", err))
		return
	}
	filter.Kind = kind

	overview, err := h.useCase.Overview(c.Request.Context(), filter)
	if err != nil {
		middleware.HandleGinError(c, apperrors.WrapError(err, "не удалось получить журнал"))
		return
	}

	c.JSON(http.StatusOK, overview)
}
