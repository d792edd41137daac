package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema базовая ошибка схемы, используется с errors.Is
var ErrSchema = errors.New("schema error")

// SchemaError отсутствуют обязательные колонки
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("table %s: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// Is позволяет сравнивать через errors.Is(err, ErrSchema)
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// AsSchemaError извлекает *SchemaError из цепочки ошибок
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr, true
	}
	return nil, false
}

// SchemaErrors собирает все *SchemaError из цепочки, включая ошибки, объединенные errors.Join
func SchemaErrors(err error) []*SchemaError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*SchemaError
		for _, e := range joined.Unwrap() {
			out = append(out, SchemaErrors(e)...)
		}
		return out
	}
	if schemaErr, ok := err.(*SchemaError); ok {
		return []*SchemaError{schemaErr}
	}
	return SchemaErrors(errors.Unwrap(err))
}
