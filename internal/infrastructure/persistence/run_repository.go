package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"procesos/database"
	"procesos/internal/domain/repositories"
)

// runRepository реализация журнала запусков
// Адаптер между domain интерфейсом и infrastructure (database.JournalDB)
type runRepository struct {
	db *database.JournalDB
}

// NewRunRepository создает новый репозиторий журнала
func NewRunRepository(db *database.JournalDB) repositories.RunRepository {
	return &runRepository{db: db}
}

// Record сохраняет запуск
func (r *runRepository) Record(ctx context.Context, run *repositories.Run) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	summary := ""
	if len(run.Summary) > 0 {
		data, err := json.Marshal(run.Summary)
		if err != nil {
			return fmt.Errorf("failed to encode run summary: %w", err)
		}
		summary = string(data)
	}

	return r.db.InsertRun(ctx, database.RunRow{
		ID:            run.ID,
		Kind:          string(run.Kind),
		RequestID:     run.RequestID,
		PrimaryFile:   run.PrimaryFile,
		SecondaryFile: run.SecondaryFile,
		InputRows:     run.InputRows,
		OutputRows:    run.OutputRows,
		Summary:       summary,
		Status:        string(run.Status),
		ErrorMessage:  run.ErrorMessage,
		StartedAt:     run.StartedAt,
		DurationMs:    run.Duration.Milliseconds(),
	})
}

// Recent возвращает последние запуски
func (r *runRepository) Recent(ctx context.Context, filter repositories.RunFilter) ([]repositories.Run, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = repositories.DefaultRunLimit
	}
	if limit > repositories.MaxRunLimit {
		limit = repositories.MaxRunLimit
	}

	rows, err := r.db.ListRuns(ctx, string(filter.Kind), limit)
	if err != nil {
		return nil, err
	}

	runs := make([]repositories.Run, 0, len(rows))
	for _, row := range rows {
		run, err := r.toDomainRun(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// CountByKind количество запусков по видам
func (r *runRepository) CountByKind(ctx context.Context) (map[repositories.RunKind]int64, error) {
	counts, err := r.db.CountRuns(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[repositories.RunKind]int64, len(counts))
	for kind, count := range counts {
		result[repositories.RunKind(kind)] = count
	}
	return result, nil
}

// Ping проверяет доступность базы журнала
func (r *runRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *runRepository) toDomainRun(row database.RunRow) (repositories.Run, error) {
	run := repositories.Run{
		ID:            row.ID,
		Kind:          repositories.RunKind(row.Kind),
		RequestID:     row.RequestID,
		PrimaryFile:   row.PrimaryFile,
		SecondaryFile: row.SecondaryFile,
		InputRows:     row.InputRows,
		OutputRows:    row.OutputRows,
		Status:        repositories.RunStatus(row.Status),
		ErrorMessage:  row.ErrorMessage,
		StartedAt:     row.StartedAt,
		Duration:      time.Duration(row.DurationMs) * time.Millisecond,
	}
	if row.Summary != "" {
		if err := json.Unmarshal([]byte(row.Summary), &run.Summary); err != nil {
			return run, fmt.Errorf("failed to decode summary of run %s: %w", row.ID, err)
		}
	}
	return run, nil
}
