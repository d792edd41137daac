package tableio

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"procesos/internal/domain/tabular"
)

// isoLayout формат, в который переводятся даты из Excel
// Разделитель "-" позволяет нормализатору распознать ISO-порядок
const isoLayout = "2006-01-02 15:04:05"

// readWorkbook читает лист книги как сетку строк
// Для колонок с датами используется сырое значение ячейки, чтобы не зависеть от числового формата
func readWorkbook(data []byte, hints DecodeHints) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := hints.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of sheet %q: %w", sheet, err)
	}
	if len(hints.DateColumns) == 0 || len(rows) <= hints.HeaderRow {
		return rows, nil
	}

	dateIdx := dateColumnIndices(rows[hints.HeaderRow], hints.DateColumns)
	if len(dateIdx) == 0 {
		return rows, nil
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get raw rows of sheet %q: %w", sheet, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	for r := hints.HeaderRow + 1; r < len(rows) && r < len(raw); r++ {
		for _, idx := range dateIdx {
			if idx >= len(rows[r]) || idx >= len(raw[r]) {
				continue
			}
			if converted, ok := serialToISO(raw[r][idx], date1904); ok {
				rows[r][idx] = converted
			}
		}
	}
	return rows, nil
}

func dateColumnIndices(header []string, columns []string) []int {
	wanted := make(map[string]bool, len(columns))
	for _, col := range columns {
		wanted[tabular.NormalizeHeader(col)] = true
	}
	var indices []int
	for i, name := range header {
		if wanted[tabular.NormalizeHeader(name)] {
			indices = append(indices, i)
		}
	}
	return indices
}

// serialToISO переводит Excel serial в текст вида 2006-01-02 15:04:05
// Значения, которые не являются числом, остаются как есть
func serialToISO(raw string, date1904 bool) (string, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value <= 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(value, date1904)
	if err != nil {
		return "", false
	}
	return t.Format(isoLayout), true
}
