package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"procesos/internal/domain/payroll"
	"procesos/internal/domain/tabular"
	"procesos/internal/infrastructure/receipts"
	"procesos/internal/infrastructure/tableio"
	apperrors "procesos/server/errors"
	"procesos/server/middleware"
)

// Типы содержимого отдаваемых файлов
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ZIPContentType  = "application/zip"
)

// MissingColumns недостающие колонки одной таблицы
type MissingColumns struct {
	Table   string   `json:"table"`
	Missing []string `json:"missing"`
}

// RowProblem строка таблицы, которую не удалось разобрать
type RowProblem struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

// ReadUpload читает файл из multipart поля field
func ReadUpload(c *gin.Context, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return "", nil, apperrors.NewPayloadTooLargeError("El archivo excede el tamaño permitido", err)
		}
		return "", nil, apperrors.NewValidationError(fmt.Sprintf("Falta el archivo %q", field), err).WithContext(field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperrors.NewInternalError("no se pudo abrir el archivo", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return "", nil, apperrors.NewPayloadTooLargeError("El archivo excede el tamaño permitido", err)
		}
		return "", nil, apperrors.NewInternalError("no se pudo leer el archivo", err)
	}
	if len(data) == 0 {
		return "", nil, apperrors.NewValidationError(fmt.Sprintf("El archivo %q está vacío", field), nil).WithContext(field)
	}

	return fileHeader.Filename, data, nil
}

// SendAttachment отдает файл для скачивания
func SendAttachment(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
}

// MapError переводит ошибки обработки в AppError с HTTP статусом
func MapError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.NewServiceUnavailableError("El procesamiento excedió el tiempo límite", err)

	case errors.Is(err, tabular.ErrSchema):
		missing := make([]MissingColumns, 0, 2)
		for _, schemaErr := range tabular.SchemaErrors(err) {
			missing = append(missing, MissingColumns{Table: schemaErr.Table, Missing: schemaErr.Missing})
		}
		return apperrors.NewValidationError("Faltan columnas requeridas", err).
			WithDetails(gin.H{"missing_columns": missing})

	case errors.Is(err, tableio.ErrUnsupportedFormat):
		return apperrors.NewValidationError("Formato de archivo no soportado, use .xlsx o .csv", err)
	}

	if rowErr, ok := payroll.AsRowError(err); ok {
		return apperrors.NewValidationError(fmt.Sprintf("Valor inválido en la fila %d, columna %s", rowErr.Row, rowErr.Column), err).
			WithDetails(RowProblem{Row: rowErr.Row, Column: rowErr.Column})
	}

	switch {
	case errors.Is(err, tableio.ErrDecode):
		return apperrors.NewIOError("No se pudo leer el archivo", err)
	case errors.Is(err, tableio.ErrEncode):
		return apperrors.NewIOError("No se pudo generar el reporte", err)
	case errors.Is(err, receipts.ErrRender):
		return apperrors.NewIOError("No se pudieron generar los recibos", err)
	case middleware.IsBodyTooLarge(err):
		return apperrors.NewPayloadTooLargeError("El archivo excede el tamaño permitido", err)
	}

	return apperrors.NewInternalError("error inesperado", err)
}
