package reconciliation

import (
	"errors"

	"procesos/internal/domain/tabular"
)

// Result результат сопоставления двух таблиц
type Result struct {
	Rows      []UnifiedRow
	Dashboard Dashboard
	Stats     MatchStats
}

// Service интерфейс бизнес-логики сопоставления
type Service interface {
	// Reconcile сопоставляет таблицу manager (основную) с таблицей bitrix
	// Возвращает *tabular.SchemaError до начала сопоставления, если не хватает колонок
	Reconcile(primary, secondary *tabular.Table) (*Result, error)

	// Settings возвращает настройки, с которыми создан сервис
	Settings() Settings
}

// service реализация domain service для reconciliation
type service struct {
	settings Settings
}

// NewService создает новый domain service
func NewService(settings Settings) Service {
	return &service{settings: settings}
}

func (s *service) Settings() Settings {
	return s.settings
}

func (s *service) Reconcile(primary, secondary *tabular.Table) (*Result, error) {
	records, invalidTotals, recordsErr := BuildRecords(primary, s.settings.Manager)
	candidates, candidatesErr := BuildCandidates(secondary, s.settings.Bitrix)
	// Проверяем обе таблицы, чтобы пользователь увидел все недостающие колонки сразу
	if err := errors.Join(recordsErr, candidatesErr); err != nil {
		return nil, err
	}

	rows, stats := Match(records, candidates, MatchOptions{
		RecordDateMode:    s.settings.ManagerDateMode,
		CandidateDateMode: s.settings.BitrixDateMode,
	})
	stats.InvalidTotals = invalidTotals
	stats.Hints = AttachHints(rows, candidates, s.settings.HintMaxDistance)

	return &Result{
		Rows:      rows,
		Dashboard: BuildDashboard(rows),
		Stats:     stats,
	}, nil
}
