package payroll

import (
	"fmt"

	"procesos/internal/domain/tabular"
)

// BuildSettlementInputs строит входные данные расчета из таблицы
// Первая ошибочная строка прерывает разбор и возвращается как *RowError
func BuildSettlementInputs(table *tabular.Table, cols Columns) ([]SettlementInput, error) {
	if table == nil {
		return nil, fmt.Errorf("payroll table is nil: %w", ErrMissingColumn)
	}
	if err := table.Require(cols.Required()...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingColumn, err)
	}

	inputs := make([]SettlementInput, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		in, err := buildInput(table, cols, i)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func buildInput(table *tabular.Table, cols Columns, i int) (SettlementInput, error) {
	row := i + 1
	in := SettlementInput{
		Row:  row,
		Name: table.Text(i, cols.Name),
		Role: table.Text(i, cols.Role),
	}

	var err error
	if in.Hours, err = ParseHours(table.Text(i, cols.Hours)); err != nil {
		return in, &RowError{Row: row, Column: cols.Hours, Err: err}
	}
	if in.Rate, err = ParseAmount(table.Text(i, cols.Rate)); err != nil {
		return in, &RowError{Row: row, Column: cols.Rate, Err: err}
	}
	if in.Discount, err = ParseAmount(table.Text(i, cols.Discount)); err != nil {
		return in, &RowError{Row: row, Column: cols.Discount, Err: err}
	}
	if in.StartDate, err = ParseDate(table.Text(i, cols.StartDate)); err != nil {
		return in, &RowError{Row: row, Column: cols.StartDate, Err: err}
	}
	if in.EndDate, err = ParseDate(table.Text(i, cols.EndDate)); err != nil {
		return in, &RowError{Row: row, Column: cols.EndDate, Err: err}
	}
	return in, nil
}
