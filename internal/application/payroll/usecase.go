package payroll

import (
	"context"
	"time"

	journalapp "procesos/internal/application/journal"
	"procesos/internal/domain/payroll"
	"procesos/internal/domain/repositories"
	"procesos/internal/infrastructure/receipts"
	"procesos/internal/infrastructure/tableio"
	"procesos/server"
	"procesos/server/middleware"
)

// PayrollTable имя таблицы в сообщениях об ошибках
const PayrollTable = "liquidacion"

// Upload загруженный файл с расчетами
type Upload struct {
	FileName string
	Data     []byte
}

// Receipts архив квитанций вместе с расчетами
type Receipts struct {
	Settlements []payroll.Settlement
	Archive     []byte
	FileName    string
}

// UseCase представляет use case расчета выплат и выпуска квитанций
type UseCase struct {
	decoder tableio.Decoder
	service payroll.Service
	bundler *receipts.Bundler
	journal *journalapp.UseCase
	now     func() time.Time
}

// NewUseCase создает новый use case расчета
func NewUseCase(
	decoder tableio.Decoder,
	service payroll.Service,
	bundler *receipts.Bundler,
	journal *journalapp.UseCase,
) *UseCase {
	return &UseCase{
		decoder: decoder,
		service: service,
		bundler: bundler,
		journal: journal,
		now:     time.Now,
	}
}

// Process рассчитывает выплаты и собирает архив Recibos_Liquidacion.zip
func (uc *UseCase) Process(ctx context.Context, upload Upload) (*Receipts, error) {
	start := time.Now()

	settlements, err := uc.settle(ctx, upload)
	if err != nil {
		uc.record(ctx, upload, nil, start, err)
		return nil, err
	}

	archive, err := uc.bundler.Bundle(ctx, settlements)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		uc.record(ctx, upload, settlements, start, err)
		return nil, err
	}

	uc.record(ctx, upload, settlements, start, nil)
	server.LogDuration(ctx, "Payroll receipts", time.Since(start),
		"receipts", len(settlements),
		"archive_bytes", len(archive),
	)

	return &Receipts{
		Settlements: settlements,
		Archive:     archive,
		FileName:    receipts.ArchiveFileName,
	}, nil
}

// Summarize рассчитывает выплаты без выпуска PDF
func (uc *UseCase) Summarize(ctx context.Context, upload Upload) ([]payroll.Settlement, error) {
	start := time.Now()

	settlements, err := uc.settle(ctx, upload)
	uc.record(ctx, upload, settlements, start, err)
	if err != nil {
		return nil, err
	}

	server.LogDuration(ctx, "Payroll summary", time.Since(start), "settlements", len(settlements))
	return settlements, nil
}

func (uc *UseCase) settle(ctx context.Context, upload Upload) ([]payroll.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	columns := uc.service.Settings().Columns
	table, err := uc.decoder.Decode(ctx, upload.Data, tableio.DecodeHints{
		FileName:    upload.FileName,
		TableName:   PayrollTable,
		DateColumns: columns.DateColumns(),
	})
	if err != nil {
		return nil, err
	}

	settlements, err := uc.service.Settle(table, uc.now())
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return settlements, nil
}

func (uc *UseCase) record(ctx context.Context, upload Upload, settlements []payroll.Settlement, start time.Time, runErr error) {
	run := &repositories.Run{
		Kind:        repositories.RunKindPayroll,
		RequestID:   middleware.GetRequestID(ctx),
		PrimaryFile: upload.FileName,
		InputRows:   len(settlements),
		OutputRows:  len(settlements),
		Summary:     Summary(settlements, uc.service.Settings()),
		Status:      repositories.RunStatusSucceeded,
		StartedAt:   start,
		Duration:    time.Since(start),
	}
	if runErr != nil {
		run.Status = repositories.RunStatusFailed
		run.ErrorMessage = runErr.Error()
		run.OutputRows = 0
	}
	uc.journal.RecordRun(ctx, run)
}

// Summary сводка расчета для журнала
func Summary(settlements []payroll.Settlement, settings payroll.Settings) map[string]int {
	summary := map[string]int{
		"receipts":     len(settlements),
		"deposits":     0,
		"negative_net": 0,
	}
	for _, s := range settlements {
		if payroll.IsReservedRole(s.Input.Role, settings.ReservedRole) {
			summary["deposits"]++
		}
		if s.Result.Net.IsNegative() {
			summary["negative_net"]++
		}
	}
	return summary
}
