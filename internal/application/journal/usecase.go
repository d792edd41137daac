package journal

import (
	"context"
	"fmt"
	"time"

	"procesos/internal/domain/repositories"
	"procesos/server"
)

// writeTimeout время на запись в журнал, не зависящее от таймаута запроса
const writeTimeout = 5 * time.Second

// UseCase представляет use case для журнала запусков
// Журнал вспомогательный: ошибки записи логируются и не прерывают обработку
type UseCase struct {
	runRepo repositories.RunRepository
}

// NewUseCase создает новый use case журнала
func NewUseCase(runRepo repositories.RunRepository) *UseCase {
	return &UseCase{runRepo: runRepo}
}

// Overview последние запуски и количество запусков по видам
type Overview struct {
	Runs   []repositories.Run             `json:"runs"`
	Totals map[repositories.RunKind]int64 `json:"totals"`
}

// RecordRun сохраняет запуск. Вызывается и для nil UseCase, тогда ничего не делает
func (uc *UseCase) RecordRun(ctx context.Context, run *repositories.Run) {
	if uc == nil || uc.runRepo == nil || run == nil {
		return
	}

	// Запись выполняется даже если запрос уже отменен
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := uc.runRepo.Record(writeCtx, run); err != nil {
		server.LogWarn(ctx, "Не удалось записать запуск в журнал",
			"error", err,
			"kind", run.Kind,
			"status", run.Status,
		)
	}
}

// ParseKind проверяет вид обработки из запроса; пустая строка означает все виды
func ParseKind(raw string) (repositories.RunKind, error) {
	switch kind := repositories.RunKind(raw); kind {
	case "", repositories.RunKindReconciliation, repositories.RunKindPayroll:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown run kind %q", raw)
	}
}

// Overview возвращает последние запуски и итоги по видам
func (uc *UseCase) Overview(ctx context.Context, filter repositories.RunFilter) (*Overview, error) {
	runs, err := uc.runRepo.Recent(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	totals, err := uc.runRepo.CountByKind(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	if runs == nil {
		runs = []repositories.Run{}
	}
	return &Overview{Runs: runs, Totals: totals}, nil
}

// Ping проверяет доступность журнала
func (uc *UseCase) Ping(ctx context.Context) error {
	return uc.runRepo.Ping(ctx)
}
