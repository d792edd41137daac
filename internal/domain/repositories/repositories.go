package repositories

import (
	"context"
)

// DefaultRunLimit размер списка запусков по умолчанию
const DefaultRunLimit = 50

// MaxRunLimit верхняя граница размера списка
const MaxRunLimit = 500

// RunRepository интерфейс журнала запусков
type RunRepository interface {
	// Record сохраняет запуск; пустой ID заполняется новым UUID
	Record(ctx context.Context, run *Run) error

	// Recent возвращает последние запуски, новые первыми
	Recent(ctx context.Context, filter RunFilter) ([]Run, error)

	// CountByKind количество запусков по видам обработки
	CountByKind(ctx context.Context) (map[RunKind]int64, error)

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error
}
