package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procesos/internal/domain/tabular"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"h:m:s", "40:00:00", "40", false},
		{"h:m:s with minutes", "7:30:00", "7.5", false},
		{"h:m", "8:15", "8.25", false},
		{"seconds", "0:00:36", "0.01", false},
		{"plain number", "38.5", "38.5", false},
		{"empty", "  ", "0", false},
		{"text", "ocho", "", true},
		{"too many parts", "1:2:3:4", "", true},
		{"negative part", "1:-2", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHours(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHours)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestHoursFromDuration(t *testing.T) {
	assert.True(t, dec("1.5").Equal(HoursFromDuration(90*time.Minute)))
	assert.True(t, dec("40").Equal(HoursFromDuration(40*time.Hour)))
}

func TestComputeSettlement(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name        string
		role        string
		wantDeposit string
		wantNet     string
	}{
		{"driver", "CONDUCTOR", "150", "250"},
		{"driver lowercase with spaces", "  conductor ", "150", "250"},
		{"other role", "AYUDANTE", "0", "400"},
		{"empty role", "", "0", "400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeSettlement(SettlementInput{
				Role:  tt.role,
				Hours: dec("40"),
				Rate:  dec("10"),
			}, settings)

			assert.True(t, dec("400").Equal(result.Gross))
			assert.True(t, dec(tt.wantDeposit).Equal(result.Deposit))
			assert.True(t, dec(tt.wantNet).Equal(result.Net))
		})
	}
}

func TestComputeSettlementWithDiscount(t *testing.T) {
	result := ComputeSettlement(SettlementInput{
		Role:     "Conductor",
		Hours:    dec("7.5"),
		Rate:     dec("20"),
		Discount: dec("12.50"),
	}, DefaultSettings())

	assert.True(t, dec("150").Equal(result.Gross))
	assert.True(t, dec("-12.5").Equal(result.Net), "net may go negative")
}

func TestReceiptNumber(t *testing.T) {
	id := uuid.MustParse("abcde123-4567-89ab-cdef-0123456789ab")
	issued := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "MX-20260309-ABCDE", ReceiptNumber("MX", issued, id))
	assert.Regexp(t, `^MX-20260309-[0-9A-F]{5}$`, NewReceiptNumber("MX", issued))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-31 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "01/31/2026", FormatDate(got))

	got, err = ParseDate("02/15/2026")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, "", FormatDate(got))

	_, err = ParseDate("mañana")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

var payrollHeader = []string{"Nombre", "Cargo", "Horas", "ValorHora", "Descuento", "FechaInicio", "FechaFin"}

func TestBuildSettlementInputs(t *testing.T) {
	table := tabular.NewTable("liquidacion", payrollHeader, [][]string{
		{"Juan Perez", "CONDUCTOR", "40:00:00", "10", "", "2026-01-01", "2026-01-15"},
		{"Ana Ruiz", "Ayudante", "12.5", "$1,000", "25", "01/16/2026", "01/31/2026"},
	})

	inputs, err := BuildSettlementInputs(table, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, 1, inputs[0].Row)
	assert.True(t, inputs[0].Discount.IsZero(), "missing discount is zero")
	assert.True(t, dec("40").Equal(inputs[0].Hours))
	assert.True(t, dec("1000").Equal(inputs[1].Rate))
	assert.Equal(t, "01/31/2026", FormatDate(inputs[1].EndDate))
}

func TestBuildSettlementInputsRowError(t *testing.T) {
	table := tabular.NewTable("liquidacion", payrollHeader, [][]string{
		{"Juan", "CONDUCTOR", "40", "10", "", "", ""},
		{"Ana", "", "muchas", "10", "", "", ""},
	})

	_, err := BuildSettlementInputs(table, DefaultColumns())

	require.Error(t, err)
	rowErr, ok := AsRowError(err)
	require.True(t, ok)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, "Horas", rowErr.Column)
	assert.True(t, errors.Is(err, ErrInvalidHours))
}

func TestBuildSettlementInputsMissingColumns(t *testing.T) {
	table := tabular.NewTable("liquidacion", []string{"Nombre", "Cargo"}, nil)

	_, err := BuildSettlementInputs(table, DefaultColumns())

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorIs(t, err, tabular.ErrSchema)
	schemaErr, ok := tabular.AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"HORAS", "VALORHORA"}, schemaErr.Missing)
}

func TestServiceSettle(t *testing.T) {
	table := tabular.NewTable("liquidacion", payrollHeader, [][]string{
		{"Juan Perez", "CONDUCTOR", "40:00:00", "10", "", "", ""},
		{"Ana Ruiz", "Ayudante", "10", "15", "5", "", ""},
	})
	svc := NewService(DefaultSettings())

	settlements, err := svc.Settle(table, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, settlements, 2)

	assert.True(t, dec("250").Equal(settlements[0].Result.Net))
	assert.True(t, dec("145").Equal(settlements[1].Result.Net))
	for _, s := range settlements {
		assert.Regexp(t, `^MX-20260120-[0-9A-F]{5}$`, s.ReceiptNumber)
	}
	assert.Equal(t, "CONDUCTOR", svc.Settings().ReservedRole)
}
