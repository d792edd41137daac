package tableio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"procesos/internal/domain/tabular"
)

// Format формат входного файла
type Format int

const (
	FormatAuto Format = iota
	FormatXLSX
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	default:
		return "auto"
	}
}

// DecodeHints подсказки для чтения таблицы
type DecodeHints struct {
	// FileName имя загруженного файла, по расширению выбирается формат
	FileName string
	// Format явный формат; FormatAuto означает выбор по FileName
	Format Format
	// TableName имя таблицы в сообщениях об ошибках
	TableName string
	// Sheet лист книги; пусто означает первый лист
	Sheet string
	// HeaderRow индекс строки заголовка (с нуля), строки выше пропускаются
	HeaderRow int
	// DateColumns колонки, в которых Excel serial переводится в ISO-текст
	DateColumns []string
	// RequiredColumns обязательные колонки, проверяются сразу после чтения
	RequiredColumns []string
}

// Decoder читает загруженный файл в таблицу
type Decoder interface {
	Decode(ctx context.Context, data []byte, hints DecodeHints) (*tabular.Table, error)
}

type decoder struct{}

// NewDecoder создает декодер xlsx/csv
func NewDecoder() Decoder {
	return &decoder{}
}

// DetectFormat определяет формат по расширению файла
func DetectFormat(fileName string) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	case ".csv", ".txt":
		return FormatCSV
	default:
		return FormatAuto
	}
}

func (d *decoder) Decode(ctx context.Context, data []byte, hints DecodeHints) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty file: %w", hints.TableName, ErrDecode)
	}
	if hints.HeaderRow < 0 {
		return nil, fmt.Errorf("%s: negative header row %d: %w", hints.TableName, hints.HeaderRow, ErrDecode)
	}

	format := hints.Format
	if format == FormatAuto {
		format = DetectFormat(hints.FileName)
	}

	var (
		grid [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		grid, err = readWorkbook(data, hints)
	case FormatCSV:
		grid, err = readCSV(data)
	default:
		return nil, fmt.Errorf("%s: %q: %w", hints.TableName, hints.FileName, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", hints.TableName, ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(grid) <= hints.HeaderRow {
		return nil, fmt.Errorf("%s: header row %d not found: %w", hints.TableName, hints.HeaderRow+1, ErrDecode)
	}

	header := grid[hints.HeaderRow]
	var rows [][]string
	for _, row := range grid[hints.HeaderRow+1:] {
		if isEmptyRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	table := tabular.NewTable(hints.TableName, header, rows)
	if len(hints.RequiredColumns) > 0 {
		if err := table.Require(hints.RequiredColumns...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
