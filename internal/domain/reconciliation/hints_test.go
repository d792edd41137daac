package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachHints(t *testing.T) {
	candidates := []Candidate{
		candidate("JUAN PERES", "01/01/2026", ""),
		candidate("MARIA LOPEZ", "01/01/2026", ""),
	}
	rows := []UnifiedRow{
		{Record: record("G1", "Juan Perez", "2026-02-01"), Tier: TierUnmatched},
		{Record: record("G2", "Completamente Distinto", "2026-02-01"), Tier: TierUnmatched},
		{Record: record("G3", "Maria Lopes", "2026-01-01"), Tier: TierNameOnly},
	}

	attached := AttachHints(rows, candidates, 2)

	assert.Equal(t, 1, attached)
	require.NotNil(t, rows[0].Hint)
	assert.Equal(t, "JUAN PERES", rows[0].Hint.Name)
	assert.Equal(t, 1, rows[0].Hint.Distance)
	assert.Equal(t, TierUnmatched, rows[0].Tier, "hint does not change the tier")
	assert.Nil(t, rows[1].Hint)
	assert.Nil(t, rows[2].Hint, "only unmatched rows get hints")
}

func TestAttachHintsTieKeepsTableOrder(t *testing.T) {
	candidates := []Candidate{
		candidate("ANA B", "", ""),
		candidate("ANA C", "", ""),
	}
	rows := []UnifiedRow{{Record: record("G1", "Ana A", ""), Tier: TierUnmatched}}

	AttachHints(rows, candidates, 1)

	require.NotNil(t, rows[0].Hint)
	assert.Equal(t, "ANA B", rows[0].Hint.Name)
}

func TestAttachHintsDisabled(t *testing.T) {
	rows := []UnifiedRow{{Record: record("G1", "Ana", ""), Tier: TierUnmatched}}

	assert.Equal(t, 0, AttachHints(rows, []Candidate{candidate("ANA", "", "")}, -1))
	assert.Equal(t, 0, AttachHints(rows, nil, 2))
	assert.Nil(t, rows[0].Hint)
}
