package payroll

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"procesos/internal/api/handlers/common"
	payrollapp "procesos/internal/application/payroll"
	"procesos/internal/domain/payroll"
	"procesos/server/middleware"
)

// FileField поле multipart формы с таблицей расчетов
const FileField = "file"

// SettlementView расчет одного сотрудника для JSON ответа
type SettlementView struct {
	Row           int                      `json:"row"`
	Name          string                   `json:"name"`
	Role          string                   `json:"role"`
	ReceiptNumber string                   `json:"receipt_number"`
	StartDate     string                   `json:"start_date,omitempty"`
	EndDate       string                   `json:"end_date,omitempty"`
	Result        payroll.SettlementResult `json:"result"`
}

// SummaryResponse расчеты и итоги по всем строкам
type SummaryResponse struct {
	Settlements []SettlementView `json:"settlements"`
	TotalGross  decimal.Decimal  `json:"total_gross"`
	TotalNet    decimal.Decimal  `json:"total_net"`
}

// Handler HTTP обработчик расчета выплат
type Handler struct {
	useCase *payrollapp.UseCase
	timeout time.Duration
}

// NewHandler создает новый HTTP обработчик расчета
func NewHandler(useCase *payrollapp.UseCase, timeout time.Duration) *Handler {
	return &Handler{
		useCase: useCase,
		timeout: timeout,
	}
}

// HandleProcess обработчик выпуска квитанций
// @Summary Выпустить квитанции
// @Description Рассчитывает выплату по каждой строке и возвращает архив PDF квитанций
// @Tags liquidacion
// @Accept multipart/form-data
// @Produce application/zip
// @Param file formData file true "Таблица расчетов (.xlsx/.csv)"
// @Success 200 {file} file "Recibos_Liquidacion.zip"
// @Failure 400 {object} middleware.ErrorResponse "Нет файла, колонок или неверное значение в строке"
// @Failure 413 {object} middleware.ErrorResponse "Файл слишком большой"
// @Failure 500 {object} middleware.ErrorResponse "Ошибка чтения файла или формирования PDF"
// @Failure 503 {object} middleware.ErrorResponse "Истек таймаут обработки"
// @Router /liquidacion/procesar [post]
func (h *Handler) HandleProcess(c *gin.Context) {
	upload, ok := readUpload(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := h.useCase.Process(ctx, upload)
	if err != nil {
		middleware.HandleGinError(c, common.MapError(err))
		return
	}

	common.SendAttachment(c, out.FileName, common.ZIPContentType, out.Archive)
}

// HandleSummary обработчик расчета без квитанций
// @Summary Расчет выплат
// @Description Возвращает расчет по каждой строке таблицы и итоги
// @Tags liquidacion
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Таблица расчетов (.xlsx/.csv)"
// @Success 200 {object} SummaryResponse "Расчеты"
// @Failure 400 {object} middleware.ErrorResponse "Нет файла, колонок или неверное значение в строке"
// @Failure 500 {object} middleware.ErrorResponse "Ошибка чтения файла"
// @Router /liquidacion/resumen [post]
func (h *Handler) HandleSummary(c *gin.Context) {
	upload, ok := readUpload(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	settlements, err := h.useCase.Summarize(ctx, upload)
	if err != nil {
		middleware.HandleGinError(c, common.MapError(err))
		return
	}

	c.JSON(http.StatusOK, NewSummaryResponse(settlements))
}

// NewSummaryResponse строит ответ из расчетов
func NewSummaryResponse(settlements []payroll.Settlement) SummaryResponse {
	resp := SummaryResponse{
		Settlements: make([]SettlementView, 0, len(settlements)),
		TotalGross:  decimal.Zero,
		TotalNet:    decimal.Zero,
	}
	for _, s := range settlements {
		resp.Settlements = append(resp.Settlements, SettlementView{
			Row:           s.Input.Row,
			Name:          s.Input.Name,
			Role:          s.Input.Role,
			ReceiptNumber: s.ReceiptNumber,
			StartDate:     payroll.FormatDate(s.Input.StartDate),
			EndDate:       payroll.FormatDate(s.Input.EndDate),
			Result:        s.Result,
		})
		resp.TotalGross = resp.TotalGross.Add(s.Result.Gross)
		resp.TotalNet = resp.TotalNet.Add(s.Result.Net)
	}
	return resp
}

func readUpload(c *gin.Context) (payrollapp.Upload, bool) {
	name, data, err := common.ReadUpload(c, FileField)
	if err != nil {
		middleware.HandleGinError(c, err)
		return payrollapp.Upload{}, false
	}
	return payrollapp.Upload{FileName: name, Data: data}, true
}
