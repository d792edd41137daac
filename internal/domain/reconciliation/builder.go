package reconciliation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"procesos/internal/domain/tabular"
)

// BuildRecords строит записи manager из таблицы
// Возвращает *tabular.SchemaError, если нет обязательных колонок
func BuildRecords(table *tabular.Table, cols ManagerColumns) ([]Record, int, error) {
	if table == nil {
		return nil, 0, fmt.Errorf("manager: %w", ErrNilTable)
	}
	if err := table.Require(cols.Required()...); err != nil {
		return nil, 0, err
	}

	invalidTotals := 0
	records := make([]Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		total, totalRaw, err := parseAmount(table.Ptr(i, cols.Total))
		if err != nil {
			invalidTotals++
		}
		records = append(records, Record{
			Row:     i + 1,
			GuideID: table.Text(i, cols.GuideID),
			Name:    table.Ptr(i, cols.Sender),
			Date:    table.Ptr(i, cols.Date),
			Payload: ManagerPayload{
				Pieces:        table.Text(i, cols.Pieces),
				Country:       table.Text(i, cols.Country),
				Recipient:     table.Text(i, cols.Recipient),
				Comments:      table.Text(i, cols.Comments),
				Weight:        table.Text(i, cols.Weight),
				Total:         total,
				TotalRaw:      totalRaw,
				PaymentMethod: table.Text(i, cols.PaymentMethod),
			},
		})
	}
	return records, invalidTotals, nil
}

// BuildCandidates строит кандидатов bitrix из таблицы
func BuildCandidates(table *tabular.Table, cols BitrixColumns) ([]Candidate, error) {
	if table == nil {
		return nil, fmt.Errorf("bitrix: %w", ErrNilTable)
	}
	if err := table.Require(cols.Required()...); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		candidates = append(candidates, Candidate{
			Row:  i + 1,
			Name: table.Ptr(i, cols.Client),
			Date: table.Ptr(i, cols.PickupDate),
			Payload: BitrixPayload{
				ScheduledAt:  table.Text(i, cols.ScheduledAt),
				Advisor:      table.Text(i, cols.Advisor),
				City:         table.Text(i, cols.City),
				ClientType:   table.Text(i, cols.ClientType),
				ShipmentType: table.Text(i, cols.ShipmentType),
				BoxSale:      table.Text(i, cols.BoxSale),
				BoxCount:     table.Text(i, cols.BoxCount),
			},
		})
	}
	return candidates, nil
}

// parseAmount разбирает денежную сумму вида "$1,234.50"
// Пустое значение не ошибка; нераспознанное значение возвращает ErrParse и считается пустым
func parseAmount(raw *string) (decimal.NullDecimal, string, error) {
	if raw == nil {
		return decimal.NullDecimal{}, "", nil
	}
	text := strings.TrimSpace(*raw)
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "").Replace(text)
	if cleaned == "" {
		return decimal.NullDecimal{}, text, nil
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}, text, fmt.Errorf("amount %q: %w", text, ErrParse)
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, text, nil
}
