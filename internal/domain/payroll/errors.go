package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHours значение колонки Horas не распознано
	ErrInvalidHours = errors.New("invalid hours value")
	// ErrInvalidAmount денежное значение не распознано
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidDate дата периода не распознана
	ErrInvalidDate = errors.New("invalid date")
	// ErrMissingColumn в таблице нет обязательной колонки
	ErrMissingColumn = errors.New("missing payroll column")
)

// RowError ошибка разбора конкретной строки таблицы
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// AsRowError извлекает *RowError из цепочки ошибок
func AsRowError(err error) (*RowError, bool) {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr, true
	}
	return nil, false
}
