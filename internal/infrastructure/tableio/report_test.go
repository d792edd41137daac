package tableio

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"procesos/internal/domain/reconciliation"
)

func sampleRows() []reconciliation.UnifiedRow {
	name := "Ana Lopez"
	date := "2026-01-12"
	pickup := "12/01/2026"
	matched := reconciliation.UnifiedRow{
		Record: reconciliation.Record{
			GuideID: "G1",
			Name:    &name,
			Date:    &date,
			Payload: reconciliation.ManagerPayload{
				Total:         decimal.NewNullDecimal(decimal.RequireFromString("120.50")),
				PaymentMethod: "EFECTIVO",
			},
		},
		Candidate: &reconciliation.Candidate{
			Date:    &pickup,
			Payload: reconciliation.BitrixPayload{Advisor: "MARIA", City: "CDMX", ClientType: "NUEVO"},
		},
		Tier: reconciliation.TierExact,
	}
	other := "Luis"
	unmatched := reconciliation.UnifiedRow{
		Record: reconciliation.Record{GuideID: "G2", Name: &other},
		Tier:   reconciliation.TierUnmatched,
		Hint:   &reconciliation.Hint{Name: "LUIZ", Distance: 1},
	}
	return []reconciliation.UnifiedRow{matched, unmatched}
}

func TestReportEncoderEncode(t *testing.T) {
	rows := sampleRows()
	encoder := NewReportEncoder(reconciliation.DefaultManagerColumns(), reconciliation.DefaultBitrixColumns())

	data, err := encoder.Encode(context.Background(), rows, reconciliation.BuildDashboard(rows))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetRows, SheetDashboard}, f.GetSheetList())

	sheetRows, err := f.GetRows(SheetRows)
	require.NoError(t, err)
	require.Len(t, sheetRows, 3)

	header := ReportHeader(reconciliation.DefaultManagerColumns(), reconciliation.DefaultBitrixColumns())
	assert.Equal(t, header, sheetRows[0])
	assert.Equal(t, ColumnTier, header[len(header)-2])

	assert.Equal(t, "G1", sheetRows[1][0])
	assert.Equal(t, "MARIA", sheetRows[1][12])
	assert.Equal(t, "EXACTO", sheetRows[1][len(header)-2])
	assert.Equal(t, "NO_CRUZADO", sheetRows[2][len(header)-2])
	assert.Equal(t, "LUIZ", sheetRows[2][len(header)-1])

	advisorHeader, err := f.GetCellValue(SheetDashboard, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ASESOR", advisorHeader)

	// Два значения по консультанту: MARIA и пустая группа
	missing, err := f.GetCellValue(SheetDashboard, "A3")
	require.NoError(t, err)
	assert.Equal(t, missingLabel, missing)

	// Вторая таблица начинается через len+3 строк
	clientHeader, err := f.GetCellValue(SheetDashboard, "A6")
	require.NoError(t, err)
	assert.Equal(t, "TIPO DE CLIENTE", clientHeader)
}

func TestReportEncoderEmptyInput(t *testing.T) {
	encoder := NewReportEncoder(reconciliation.DefaultManagerColumns(), reconciliation.DefaultBitrixColumns())

	data, err := encoder.Encode(context.Background(), nil, reconciliation.BuildDashboard(nil))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReportEncoderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	encoder := NewReportEncoder(reconciliation.DefaultManagerColumns(), reconciliation.DefaultBitrixColumns())
	_, err := encoder.Encode(ctx, nil, reconciliation.Dashboard{})
	assert.ErrorIs(t, err, context.Canceled)
}
