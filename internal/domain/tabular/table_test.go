package tabular

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableNormalizesHeaders(t *testing.T) {
	table := NewTable("manager", []string{" guia# ", "Remitente", "FECHA"}, [][]string{
		{"G1", "Ana"},
		{"G2", "Luis", "2026-01-12", "extra"},
	})

	assert.Equal(t, []string{"GUIA#", "REMITENTE", "FECHA"}, table.Columns)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.ColumnIndex("remitente"))
	assert.Equal(t, -1, table.ColumnIndex("CIUDAD"))

	// Короткие строки дополняются, длинные обрезаются
	assert.Len(t, table.Rows[0], 3)
	assert.Len(t, table.Rows[1], 3)
}

func TestTableValue(t *testing.T) {
	table := NewTable("bitrix", []string{"CLIENTE", "CIUDAD"}, [][]string{{"Ana", "   "}})

	value, ok := table.Value(0, "cliente")
	assert.True(t, ok)
	assert.Equal(t, "Ana", value)

	_, ok = table.Value(0, "CIUDAD")
	assert.False(t, ok, "blank cell is treated as missing")

	_, ok = table.Value(5, "CLIENTE")
	assert.False(t, ok)

	assert.Nil(t, table.Ptr(0, "CIUDAD"))
	require.NotNil(t, table.Ptr(0, "CLIENTE"))
}

func TestTableRequire(t *testing.T) {
	table := NewTable("bitrix", []string{"CLIENTE", "ASESOR"}, nil)

	assert.NoError(t, table.Require("cliente", " Asesor "))

	err := table.Require("CLIENTE", "CIUDAD", "tipo envio")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))

	schemaErr, ok := AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, "bitrix", schemaErr.Table)
	assert.Equal(t, []string{"CIUDAD", "TIPO ENVIO"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "CIUDAD, TIPO ENVIO")
}

func TestSchemaErrorsCollectsJoined(t *testing.T) {
	manager := &SchemaError{Table: "manager", Missing: []string{"FECHA"}}
	bitrix := &SchemaError{Table: "bitrix", Missing: []string{"CIUDAD", "ASESOR"}}

	joined := errors.Join(fmt.Errorf("decode: %w", manager), errors.New("other"), bitrix)
	found := SchemaErrors(joined)

	require.Len(t, found, 2)
	assert.Equal(t, "manager", found[0].Table)
	assert.Equal(t, "bitrix", found[1].Table)

	assert.Nil(t, SchemaErrors(nil))
	assert.Empty(t, SchemaErrors(errors.New("plain")))
}
