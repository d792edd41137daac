package tabular

import (
	"strings"
)

// Table таблица, декодированная из загруженного файла
// Имена колонок нормализованы (trim + upper), строки выровнены по количеству колонок
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable создает таблицу и строит индекс колонок
func NewTable(name string, columns []string, rows [][]string) *Table {
	t := &Table{
		Name:    name,
		Columns: make([]string, len(columns)),
		Rows:    make([][]string, 0, len(rows)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		normalized := NormalizeHeader(col)
		t.Columns[i] = normalized
		// Первая колонка с таким именем выигрывает
		if _, exists := t.index[normalized]; !exists && normalized != "" {
			t.index[normalized] = i
		}
	}
	for _, row := range rows {
		aligned := make([]string, len(columns))
		copy(aligned, row)
		t.Rows = append(t.Rows, aligned)
	}
	return t
}

// NormalizeHeader приводит имя колонки к каноническому виду
func NormalizeHeader(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Len возвращает количество строк данных
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex возвращает индекс колонки или -1
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	if idx, ok := t.index[NormalizeHeader(name)]; ok {
		return idx
	}
	return -1
}

// HasColumn проверяет наличие колонки
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Require проверяет наличие обязательных колонок
// Возвращает *SchemaError со списком всех отсутствующих колонок
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if !t.HasColumn(col) {
			missing = append(missing, NormalizeHeader(col))
		}
	}
	if len(missing) > 0 {
		name := ""
		if t != nil {
			name = t.Name
		}
		return &SchemaError{Table: name, Missing: missing}
	}
	return nil
}

// Value возвращает значение ячейки
// ok == false, если колонки нет или ячейка пустая
func (t *Table) Value(row int, column string) (string, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	value := t.Rows[row][idx]
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Ptr возвращает значение ячейки как указатель (nil для пустой ячейки)
func (t *Table) Ptr(row int, column string) *string {
	value, ok := t.Value(row, column)
	if !ok {
		return nil
	}
	return &value
}

// Text возвращает значение ячейки без пробелов по краям ("" для пустой)
func (t *Table) Text(row int, column string) string {
	value, _ := t.Value(row, column)
	return strings.TrimSpace(value)
}
