package reconciliation

import (
	"github.com/shopspring/decimal"
)

// Dimension измерение дашборда
type Dimension string

const (
	DimensionAdvisor       Dimension = "ASESOR"
	DimensionClientType    Dimension = "TIPO DE CLIENTE"
	DimensionPaymentMethod Dimension = "METODO PAGO"
	DimensionCity          Dimension = "CIUDAD"
)

// Measures набор вычисляемых мер
type Measures uint8

const (
	MeasureCount Measures = 1 << iota
	MeasureSum
)

// Has проверяет наличие меры в наборе
func (m Measures) Has(measure Measures) bool {
	return m&measure != 0
}

// SummaryRow строка сводной таблицы
// Missing == true для группы строк без значения измерения
type SummaryRow struct {
	Value   string          `json:"value"`
	Missing bool            `json:"missing"`
	Count   int             `json:"count,omitempty"`
	Sum     decimal.Decimal `json:"sum"`
}

// SummaryTable сводная таблица по одному измерению
type SummaryTable struct {
	Title     string       `json:"title"`
	Dimension Dimension    `json:"dimension"`
	Measures  Measures     `json:"-"`
	Rows      []SummaryRow `json:"rows"`
}

// HasCount показывает, считается ли количество
func (t SummaryTable) HasCount() bool { return t.Measures.Has(MeasureCount) }

// HasSum показывает, считается ли сумма
func (t SummaryTable) HasSum() bool { return t.Measures.Has(MeasureSum) }

// Dashboard четыре фиксированные сводные таблицы
type Dashboard struct {
	ByAdvisor       SummaryTable `json:"by_advisor"`
	ByClientType    SummaryTable `json:"by_client_type"`
	ByPaymentMethod SummaryTable `json:"by_payment_method"`
	ByCity          SummaryTable `json:"by_city"`
}

// Tables возвращает таблицы в порядке вывода на лист Dashboard
func (d Dashboard) Tables() [4]SummaryTable {
	return [4]SummaryTable{d.ByAdvisor, d.ByClientType, d.ByPaymentMethod, d.ByCity}
}

// DimensionValue возвращает значение измерения для строки результата
// ok == false, если значения нет (в том числе у несопоставленной строки для полей bitrix)
func DimensionValue(row UnifiedRow, dim Dimension) (string, bool) {
	var value string
	switch dim {
	case DimensionPaymentMethod:
		value = row.Record.Payload.PaymentMethod
	case DimensionAdvisor, DimensionClientType, DimensionCity:
		if row.Candidate == nil {
			return "", false
		}
		switch dim {
		case DimensionAdvisor:
			value = row.Candidate.Payload.Advisor
		case DimensionClientType:
			value = row.Candidate.Payload.ClientType
		default:
			value = row.Candidate.Payload.City
		}
	}
	return value, value != ""
}

// Aggregate группирует строки по измерению
// Группы выводятся в порядке первого появления значения; пустые значения собираются в одну группу
func Aggregate(rows []UnifiedRow, dim Dimension, measures Measures) []SummaryRow {
	const missingKey = "\x00missing"

	index := make(map[string]int)
	var result []SummaryRow

	for _, row := range rows {
		value, ok := DimensionValue(row, dim)
		key := value
		if !ok {
			key = missingKey
		}

		pos, exists := index[key]
		if !exists {
			pos = len(result)
			index[key] = pos
			result = append(result, SummaryRow{Value: value, Missing: !ok, Sum: decimal.Zero})
		}

		if measures.Has(MeasureCount) {
			result[pos].Count++
		}
		if measures.Has(MeasureSum) && row.Record.Payload.Total.Valid {
			result[pos].Sum = result[pos].Sum.Add(row.Record.Payload.Total.Decimal)
		}
	}
	return result
}

// BuildDashboard строит четыре сводные таблицы
func BuildDashboard(rows []UnifiedRow) Dashboard {
	build := func(title string, dim Dimension, measures Measures) SummaryTable {
		return SummaryTable{
			Title:     title,
			Dimension: dim,
			Measures:  measures,
			Rows:      Aggregate(rows, dim, measures),
		}
	}
	return Dashboard{
		ByAdvisor:       build("Agendamientos por Asesor", DimensionAdvisor, MeasureCount|MeasureSum),
		ByClientType:    build("Tipo de Cliente", DimensionClientType, MeasureCount|MeasureSum),
		ByPaymentMethod: build("Método de Pago", DimensionPaymentMethod, MeasureSum),
		ByCity:          build("Agendamientos por Ciudad", DimensionCity, MeasureCount|MeasureSum),
	}
}
