package reconciliation

import "errors"

// Domain-specific errors для reconciliation domain
var (
	// ErrParse значение не удалось нормализовать; не фатально, значение считается пустым
	ErrParse = errors.New("value cannot be normalized")
	// ErrNilTable не передана одна из таблиц
	ErrNilTable = errors.New("table is nil")
)
