package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementInput одна строка таблицы liquidacion
type SettlementInput struct {
	Row       int
	Name      string
	Role      string
	Hours     decimal.Decimal
	Rate      decimal.Decimal
	Discount  decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// SettlementResult результат расчета
type SettlementResult struct {
	Hours    decimal.Decimal `json:"hours"`
	Rate     decimal.Decimal `json:"rate"`
	Gross    decimal.Decimal `json:"gross"`
	Discount decimal.Decimal `json:"discount"`
	Deposit  decimal.Decimal `json:"deposit"`
	Net      decimal.Decimal `json:"net"`
}

// Settlement расчет вместе с исходными данными и номером квитанции
type Settlement struct {
	Input         SettlementInput
	Result        SettlementResult
	ReceiptNumber string
}

// ComputeSettlement считает выплату: Net = Hours*Rate - Discount - Deposit
// Депозит удерживается только для зарезервированной должности
func ComputeSettlement(in SettlementInput, settings Settings) SettlementResult {
	gross := in.Hours.Mul(in.Rate)
	deposit := decimal.Zero
	if IsReservedRole(in.Role, settings.ReservedRole) {
		deposit = settings.DriverDeposit
	}
	return SettlementResult{
		Hours:    in.Hours,
		Rate:     in.Rate,
		Gross:    gross,
		Discount: in.Discount,
		Deposit:  deposit,
		Net:      gross.Sub(in.Discount).Sub(deposit),
	}
}

// IsReservedRole сравнивает должность без учета регистра и пробелов по краям
func IsReservedRole(role, reserved string) bool {
	reserved = strings.TrimSpace(reserved)
	if reserved == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(role), reserved)
}

// ReceiptNumber формирует номер вида PREFIX-YYYYMMDD-XXXXX
func ReceiptNumber(prefix string, issuedAt time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s-%s-%s", prefix, issuedAt.Format("20060102"), strings.ToUpper(id.String()[:5]))
}

// NewReceiptNumber номер квитанции со случайным суффиксом
func NewReceiptNumber(prefix string, issuedAt time.Time) string {
	return ReceiptNumber(prefix, issuedAt, uuid.New())
}
