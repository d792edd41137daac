package repositories

import (
	"time"
)

// RunKind вид обработки
type RunKind string

const (
	RunKindReconciliation RunKind = "reconciliation"
	RunKindPayroll        RunKind = "payroll"
)

// RunStatus итог запуска
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Run запись журнала об одном запуске обработки
// Содержит только метаданные: имена файлов, количество строк и сводку
type Run struct {
	ID            string         `json:"id"`
	Kind          RunKind        `json:"kind"`
	RequestID     string         `json:"request_id,omitempty"`
	PrimaryFile   string         `json:"primary_file,omitempty"`
	SecondaryFile string         `json:"secondary_file,omitempty"`
	InputRows     int            `json:"input_rows"`
	OutputRows    int            `json:"output_rows"`
	Summary       map[string]int `json:"summary,omitempty"`
	Status        RunStatus      `json:"status"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	Duration      time.Duration  `json:"duration_ns"`
}

// RunFilter фильтр для списка запусков
type RunFilter struct {
	Kind  RunKind
	Limit int
}
