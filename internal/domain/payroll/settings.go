package payroll

import (
	"github.com/shopspring/decimal"
)

// Columns имена колонок таблицы liquidacion
type Columns struct {
	Name      string
	Role      string
	Hours     string
	Rate      string
	Discount  string
	StartDate string
	EndDate   string
}

// DefaultColumns возвращает стандартные имена колонок
func DefaultColumns() Columns {
	return Columns{
		Name:      "Nombre",
		Role:      "Cargo",
		Hours:     "Horas",
		Rate:      "ValorHora",
		Discount:  "Descuento",
		StartDate: "FechaInicio",
		EndDate:   "FechaFin",
	}
}

// Required колонки, без которых расчет невозможен
func (c Columns) Required() []string {
	return []string{c.Name, c.Hours, c.Rate}
}

// DateColumns колонки с датами (Excel serial → текст)
func (c Columns) DateColumns() []string {
	return []string{c.StartDate, c.EndDate}
}

// Settings параметры расчета
type Settings struct {
	Columns Columns
	// ReservedRole должность, для которой удерживается депозит
	ReservedRole string
	// DriverDeposit сумма депозита
	DriverDeposit decimal.Decimal
	// ReceiptPrefix префикс номера квитанции
	ReceiptPrefix string
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Columns:       DefaultColumns(),
		ReservedRole:  "CONDUCTOR",
		DriverDeposit: decimal.NewFromInt(150),
		ReceiptPrefix: "MX",
	}
}
