package reconciliation

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"procesos/internal/api/handlers/common"
	reconapp "procesos/internal/application/reconciliation"
	"procesos/internal/domain/reconciliation"
	"procesos/server/middleware"
)

// Поля multipart формы
const (
	ManagerField = "manager_file"
	BitrixField  = "bitrix_file"
)

// SummaryResponse сводка сверки без книги Excel
type SummaryResponse struct {
	Stats     reconciliation.MatchStats `json:"stats"`
	Tiers     map[string]int            `json:"tiers"`
	Dashboard reconciliation.Dashboard  `json:"dashboard"`
}

// Handler HTTP обработчик сверки выгрузок
type Handler struct {
	useCase *reconapp.UseCase
	timeout time.Duration
}

// NewHandler создает новый HTTP обработчик сверки
func NewHandler(useCase *reconapp.UseCase, timeout time.Duration) *Handler {
	return &Handler{
		useCase: useCase,
		timeout: timeout,
	}
}

// HandleProcess обработчик сверки с выдачей книги Excel
// @Summary Сверить выгрузки manager и bitrix
// @Description Сопоставляет строки manager с bitrix по имени и дате и возвращает книгу Agendamiento.xlsx
// @Tags agendamiento
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param manager_file formData file true "Выгрузка manager (.xlsx/.csv)"
// @Param bitrix_file formData file true "Выгрузка bitrix (.xlsx/.csv)"
// @Success 200 {file} file "Agendamiento.xlsx"
// @Failure 400 {object} middleware.ErrorResponse "Нет файла или колонок"
// @Failure 413 {object} middleware.ErrorResponse "Файл слишком большой"
// @Failure 429 {object} middleware.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} middleware.ErrorResponse "Ошибка чтения или записи файла"
// @Failure 503 {object} middleware.ErrorResponse "Истек таймаут обработки"
// @Router /agendamiento-v2/procesar [post]
func (h *Handler) HandleProcess(c *gin.Context) {
	in, ok := h.readInput(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	report, err := h.useCase.Process(ctx, in)
	if err != nil {
		middleware.HandleGinError(c, common.MapError(err))
		return
	}

	common.SendAttachment(c, report.FileName, common.XLSXContentType, report.Workbook)
}

// HandleSummary обработчик сверки со сводкой в JSON
// @Summary Сводка сверки
// @Description Выполняет ту же сверку, но возвращает статистику уровней и таблицы дашборда
// @Tags agendamiento
// @Accept multipart/form-data
// @Produce json
// @Param manager_file formData file true "Выгрузка manager (.xlsx/.csv)"
// @Param bitrix_file formData file true "Выгрузка bitrix (.xlsx/.csv)"
// @Success 200 {object} SummaryResponse "Статистика и дашборд"
// @Failure 400 {object} middleware.ErrorResponse "Нет файла или колонок"
// @Failure 500 {object} middleware.ErrorResponse "Ошибка чтения файла"
// @Failure 503 {object} middleware.ErrorResponse "Истек таймаут обработки"
// @Router /agendamiento-v2/resumen [post]
func (h *Handler) HandleSummary(c *gin.Context) {
	in, ok := h.readInput(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.useCase.Summarize(ctx, in)
	if err != nil {
		middleware.HandleGinError(c, common.MapError(err))
		return
	}

	tiers := make(map[string]int, 4)
	for tier, count := range result.Stats.TierCounts() {
		tiers[tier.String()] = count
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Stats:     result.Stats,
		Tiers:     tiers,
		Dashboard: result.Dashboard,
	})
}

func (h *Handler) readInput(c *gin.Context) (reconapp.Input, bool) {
	managerName, managerData, err := common.ReadUpload(c, ManagerField)
	if err != nil {
		middleware.HandleGinError(c, err)
		return reconapp.Input{}, false
	}

	bitrixName, bitrixData, err := common.ReadUpload(c, BitrixField)
	if err != nil {
		middleware.HandleGinError(c, err)
		return reconapp.Input{}, false
	}

	return reconapp.Input{
		Manager: reconapp.Upload{FileName: managerName, Data: managerData},
		Bitrix:  reconapp.Upload{FileName: bitrixName, Data: bitrixData},
	}, true
}
