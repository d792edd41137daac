package payroll

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journalapp "procesos/internal/application/journal"
	"procesos/internal/domain/payroll"
	"procesos/internal/domain/repositories"
	"procesos/internal/infrastructure/receipts"
	"procesos/internal/infrastructure/tableio"
)

type memoryRuns struct {
	mu   sync.Mutex
	runs []repositories.Run
}

func (m *memoryRuns) Record(_ context.Context, run *repositories.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memoryRuns) Recent(context.Context, repositories.RunFilter) ([]repositories.Run, error) {
	return m.runs, nil
}

func (m *memoryRuns) CountByKind(context.Context) (map[repositories.RunKind]int64, error) {
	return nil, nil
}

func (m *memoryRuns) Ping(context.Context) error { return nil }

// failingRenderer рендерер, который всегда падает
type failingRenderer struct{}

func (failingRenderer) Render(payroll.Settlement) ([]byte, error) {
	return nil, receipts.ErrRender
}

const payrollCSV = `Nombre,Cargo,Horas,ValorHora,Descuento,FechaInicio,FechaFin
Juan Perez, conductor ,8:30,100,50,2026-01-01,2026-01-15
Ana,Auxiliar,10,80,,2026-01-01,2026-01-15
Juan Perez,Auxiliar,1,10,0,,
`

func newUseCase(runs *memoryRuns, renderer receipts.Renderer) *UseCase {
	uc := NewUseCase(
		tableio.NewDecoder(),
		payroll.NewService(payroll.DefaultSettings()),
		receipts.NewBundler(renderer),
		journalapp.NewUseCase(runs),
	)
	uc.now = func() time.Time { return time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC) }
	return uc
}

func TestProcessBuildsArchive(t *testing.T) {
	runs := &memoryRuns{}
	renderer := receipts.NewPDFRenderer(receipts.Options{CompanyName: "Envios SA"})

	out, err := newUseCase(runs, renderer).Process(context.Background(), Upload{FileName: "liquidacion.csv", Data: []byte(payrollCSV)})
	require.NoError(t, err)

	assert.Equal(t, receipts.ArchiveFileName, out.FileName)
	require.Len(t, out.Settlements, 3)
	assert.Equal(t, "650", out.Settlements[0].Result.Net.String())
	assert.Equal(t, "150", out.Settlements[0].Result.Deposit.String())
	assert.Equal(t, "800", out.Settlements[1].Result.Net.String())
	assert.Regexp(t, `^MX-20260116-[0-9A-F]{5}$`, out.Settlements[0].ReceiptNumber)

	zr, err := zip.NewReader(bytes.NewReader(out.Archive), int64(len(out.Archive)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Juan_Perez.pdf", "Ana.pdf", "Juan_Perez_2.pdf"}, names)

	require.Len(t, runs.runs, 1)
	run := runs.runs[0]
	assert.Equal(t, repositories.RunKindPayroll, run.Kind)
	assert.Equal(t, repositories.RunStatusSucceeded, run.Status)
	assert.Equal(t, 3, run.OutputRows)
	assert.Equal(t, 1, run.Summary["deposits"])
}

func TestSummarizeDoesNotRender(t *testing.T) {
	runs := &memoryRuns{}

	settlements, err := newUseCase(runs, failingRenderer{}).Summarize(context.Background(), Upload{FileName: "l.csv", Data: []byte(payrollCSV)})
	require.NoError(t, err)
	assert.Len(t, settlements, 3)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, repositories.RunStatusSucceeded, runs.runs[0].Status)
}

func TestProcessRowError(t *testing.T) {
	runs := &memoryRuns{}
	data := "Nombre,Horas,ValorHora\nAna,10,80\nLuis,diez,80\n"

	_, err := newUseCase(runs, failingRenderer{}).Process(context.Background(), Upload{FileName: "l.csv", Data: []byte(data)})
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrInvalidHours)

	rowErr, ok := payroll.AsRowError(err)
	require.True(t, ok)
	assert.Equal(t, 2, rowErr.Row)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, repositories.RunStatusFailed, runs.runs[0].Status)
}

func TestProcessMissingColumns(t *testing.T) {
	_, err := newUseCase(&memoryRuns{}, failingRenderer{}).Process(context.Background(), Upload{FileName: "l.csv", Data: []byte("Nombre,Cargo\nAna,X\n")})
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrMissingColumn)
}

func TestProcessRenderError(t *testing.T) {
	runs := &memoryRuns{}

	_, err := newUseCase(runs, failingRenderer{}).Process(context.Background(), Upload{FileName: "l.csv", Data: []byte(payrollCSV)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, receipts.ErrRender))

	require.Len(t, runs.runs, 1)
	assert.Equal(t, repositories.RunStatusFailed, runs.runs[0].Status)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	_, err := newUseCase(&memoryRuns{}, failingRenderer{}).Process(context.Background(), Upload{FileName: "l.pdf", Data: []byte("%PDF")})
	assert.ErrorIs(t, err, tableio.ErrUnsupportedFormat)
}

func TestSummary(t *testing.T) {
	settings := payroll.DefaultSettings()
	in := payroll.SettlementInput{Name: "Juan", Role: "CONDUCTOR"}
	driver := payroll.Settlement{Input: in, Result: payroll.ComputeSettlement(in, settings)}

	summary := Summary([]payroll.Settlement{driver}, settings)
	assert.Equal(t, 1, summary["receipts"])
	assert.Equal(t, 1, summary["deposits"])
	assert.Equal(t, 1, summary["negative_net"], "zero hours minus deposit is negative")
}
