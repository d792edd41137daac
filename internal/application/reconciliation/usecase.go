package reconciliation

import (
	"context"
	"time"

	journalapp "procesos/internal/application/journal"
	"procesos/internal/domain/reconciliation"
	"procesos/internal/domain/repositories"
	"procesos/internal/infrastructure/tableio"
	"procesos/server"
	"procesos/server/middleware"
)

// Имена таблиц в сообщениях об ошибках схемы
const (
	ManagerTable = "manager"
	BitrixTable  = "bitrix"
)

// Upload загруженный файл
type Upload struct {
	FileName string
	Data     []byte
}

// Input две выгрузки для сверки
type Input struct {
	Manager Upload
	Bitrix  Upload
}

// Report результат сверки вместе с книгой Excel
type Report struct {
	Result   *reconciliation.Result
	Workbook []byte
	FileName string
}

// UseCase представляет use case сверки выгрузок manager и bitrix
// Координирует декодирование, сопоставление, построение отчета и запись в журнал
type UseCase struct {
	decoder          tableio.Decoder
	encoder          tableio.ReportEncoder
	service          reconciliation.Service
	journal          *journalapp.UseCase
	managerHeaderRow int
}

// NewUseCase создает новый use case сверки
// journal может быть nil, тогда запуски не журналируются
func NewUseCase(
	decoder tableio.Decoder,
	encoder tableio.ReportEncoder,
	service reconciliation.Service,
	journal *journalapp.UseCase,
	managerHeaderRow int,
) *UseCase {
	return &UseCase{
		decoder:          decoder,
		encoder:          encoder,
		service:          service,
		journal:          journal,
		managerHeaderRow: managerHeaderRow,
	}
}

// Process выполняет сверку и строит книгу Agendamiento.xlsx
func (uc *UseCase) Process(ctx context.Context, in Input) (*Report, error) {
	start := time.Now()

	result, err := uc.reconcile(ctx, in)
	if err != nil {
		uc.record(ctx, in, nil, start, err)
		return nil, err
	}

	workbook, err := uc.encoder.Encode(ctx, result.Rows, result.Dashboard)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		uc.record(ctx, in, result, start, err)
		return nil, err
	}

	uc.record(ctx, in, result, start, nil)
	server.LogDuration(ctx, "Reconciliation", time.Since(start),
		"records", result.Stats.Records,
		"candidates", result.Stats.Candidates,
		"output_rows", result.Stats.OutputRows,
		"unmatched", result.Stats.Unmatched,
		"workbook_bytes", len(workbook),
	)

	return &Report{
		Result:   result,
		Workbook: workbook,
		FileName: tableio.ReportFileName,
	}, nil
}

// Summarize выполняет сверку без построения книги
func (uc *UseCase) Summarize(ctx context.Context, in Input) (*reconciliation.Result, error) {
	start := time.Now()

	result, err := uc.reconcile(ctx, in)
	uc.record(ctx, in, result, start, err)
	if err != nil {
		return nil, err
	}

	server.LogDuration(ctx, "Reconciliation summary", time.Since(start),
		"records", result.Stats.Records,
		"output_rows", result.Stats.OutputRows,
	)
	return result, nil
}

func (uc *UseCase) reconcile(ctx context.Context, in Input) (*reconciliation.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings := uc.service.Settings()

	// Обязательные колонки проверяет сервис: так пользователь видит пропуски обеих таблиц сразу
	manager, err := uc.decoder.Decode(ctx, in.Manager.Data, tableio.DecodeHints{
		FileName:    in.Manager.FileName,
		TableName:   ManagerTable,
		HeaderRow:   uc.managerHeaderRow,
		DateColumns: settings.Manager.DateColumns(),
	})
	if err != nil {
		return nil, err
	}

	bitrix, err := uc.decoder.Decode(ctx, in.Bitrix.Data, tableio.DecodeHints{
		FileName:    in.Bitrix.FileName,
		TableName:   BitrixTable,
		DateColumns: settings.Bitrix.DateColumns(),
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := uc.service.Reconcile(manager, bitrix)
	if err != nil {
		return nil, err
	}

	// Результат, полученный после истечения таймаута, отбрасывается
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	server.LogInfo(ctx, "Выгрузки сопоставлены",
		"manager_file", in.Manager.FileName,
		"bitrix_file", in.Bitrix.FileName,
		"exact", result.Stats.Exact,
		"multi_date_rows", result.Stats.MultiDateRows,
		"name_only", result.Stats.NameOnly,
		"unmatched", result.Stats.Unmatched,
	)
	return result, nil
}

func (uc *UseCase) record(ctx context.Context, in Input, result *reconciliation.Result, start time.Time, runErr error) {
	run := &repositories.Run{
		Kind:          repositories.RunKindReconciliation,
		RequestID:     middleware.GetRequestID(ctx),
		PrimaryFile:   in.Manager.FileName,
		SecondaryFile: in.Bitrix.FileName,
		Status:        repositories.RunStatusSucceeded,
		StartedAt:     start,
		Duration:      time.Since(start),
	}
	if result != nil {
		run.InputRows = result.Stats.Records
		run.OutputRows = result.Stats.OutputRows
		run.Summary = Summary(result.Stats)
	}
	if runErr != nil {
		run.Status = repositories.RunStatusFailed
		run.ErrorMessage = runErr.Error()
	}
	uc.journal.RecordRun(ctx, run)
}

// Summary сводка статистики для журнала
func Summary(stats reconciliation.MatchStats) map[string]int {
	return map[string]int{
		"candidates":              stats.Candidates,
		"exact":                   stats.Exact,
		"multi_date_rows":         stats.MultiDateRows,
		"multi_date_records":      stats.MultiDateRecords,
		"name_only":               stats.NameOnly,
		"unmatched":               stats.Unmatched,
		"unused_candidates":       stats.UnusedCandidates,
		"invalid_record_dates":    stats.InvalidRecordDates,
		"invalid_candidate_dates": stats.InvalidCandidateDates,
		"invalid_totals":          stats.InvalidTotals,
		"hints":                   stats.Hints,
	}
}

