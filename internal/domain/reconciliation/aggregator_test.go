package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unified(advisor, city, payment, total string) UnifiedRow {
	row := UnifiedRow{Tier: TierExact}
	row.Record.Payload.PaymentMethod = payment
	if total != "" {
		row.Record.Payload.Total = decimal.NewNullDecimal(decimal.RequireFromString(total))
	}
	row.Candidate = &Candidate{Payload: BitrixPayload{Advisor: advisor, City: city}}
	return row
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	rows := []UnifiedRow{
		unified("ZOE", "", "", "10"),
		unified("ANA", "", "", "5.50"),
		unified("ZOE", "", "", "2"),
	}

	summary := Aggregate(rows, DimensionAdvisor, MeasureCount|MeasureSum)

	require.Len(t, summary, 2)
	assert.Equal(t, "ZOE", summary[0].Value)
	assert.Equal(t, 2, summary[0].Count)
	assert.True(t, decimal.RequireFromString("12").Equal(summary[0].Sum))
	assert.Equal(t, "ANA", summary[1].Value)
	assert.True(t, decimal.RequireFromString("5.5").Equal(summary[1].Sum))
}

func TestAggregateMissingBucket(t *testing.T) {
	unmatched := UnifiedRow{Tier: TierUnmatched}
	unmatched.Record.Payload.Total = decimal.NewNullDecimal(decimal.NewFromInt(7))

	rows := []UnifiedRow{
		unmatched,
		unified("", "CDMX", "", "3"),
		unified("ANA", "CDMX", "", ""),
	}

	summary := Aggregate(rows, DimensionAdvisor, MeasureCount|MeasureSum)

	require.Len(t, summary, 2)
	assert.True(t, summary[0].Missing, "unmatched and blank advisors share one bucket")
	assert.Equal(t, 2, summary[0].Count)
	assert.True(t, decimal.NewFromInt(10).Equal(summary[0].Sum))
	assert.False(t, summary[1].Missing)
	assert.Equal(t, 1, summary[1].Count)
	assert.True(t, summary[1].Sum.IsZero(), "null totals are skipped")
}

func TestAggregateSumOnly(t *testing.T) {
	rows := []UnifiedRow{
		unified("", "", "EFECTIVO", "100"),
		unified("", "", "TARJETA", "50"),
		unified("", "", "EFECTIVO", "25.25"),
	}

	summary := Aggregate(rows, DimensionPaymentMethod, MeasureSum)

	require.Len(t, summary, 2)
	assert.Equal(t, 0, summary[0].Count)
	assert.True(t, decimal.RequireFromString("125.25").Equal(summary[0].Sum))
}

func TestAggregateCountsEqualRowCount(t *testing.T) {
	rows := []UnifiedRow{
		unified("A", "X", "", "1"),
		unified("B", "", "", "1"),
		{Tier: TierUnmatched},
		unified("A", "Y", "", "1"),
	}

	for _, dim := range []Dimension{DimensionAdvisor, DimensionCity, DimensionClientType} {
		total := 0
		for _, group := range Aggregate(rows, dim, MeasureCount) {
			total += group.Count
		}
		assert.Equal(t, len(rows), total, "dimension %s", dim)
	}
}

func TestBuildDashboard(t *testing.T) {
	rows := []UnifiedRow{unified("ANA", "GDL", "EFECTIVO", "10")}

	dashboard := BuildDashboard(rows)
	tables := dashboard.Tables()

	assert.Equal(t, "Agendamientos por Asesor", tables[0].Title)
	assert.Equal(t, DimensionClientType, tables[1].Dimension)
	assert.False(t, tables[2].HasCount())
	assert.True(t, tables[2].HasSum())
	assert.True(t, tables[3].HasCount())
	assert.Equal(t, "GDL", tables[3].Rows[0].Value)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, DimensionCity, MeasureCount))
}
