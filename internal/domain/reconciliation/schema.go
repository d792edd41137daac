package reconciliation

// ManagerColumns имена колонок выгрузки manager
type ManagerColumns struct {
	GuideID       string
	Pieces        string
	Country       string
	Date          string
	Sender        string
	Recipient     string
	Comments      string
	Weight        string
	Total         string
	PaymentMethod string
}

// DefaultManagerColumns колонки стандартной выгрузки manager
func DefaultManagerColumns() ManagerColumns {
	return ManagerColumns{
		GuideID:       "GUIA#",
		Pieces:        "PZ",
		Country:       "PAIS",
		Date:          "FECHA",
		Sender:        "REMITENTE",
		Recipient:     "DESTINATARIO",
		Comments:      "COMENTARIOS",
		Weight:        "PESO",
		Total:         "TOTAL",
		PaymentMethod: "METODO PAGO",
	}
}

// Required возвращает обязательные колонки в порядке вывода в отчет
func (c ManagerColumns) Required() []string {
	return []string{
		c.GuideID, c.Pieces, c.Country, c.Date, c.Sender,
		c.Recipient, c.Comments, c.Weight, c.Total, c.PaymentMethod,
	}
}

// BitrixColumns имена колонок выгрузки CRM
type BitrixColumns struct {
	Client       string
	ScheduledAt  string
	PickupDate   string
	Advisor      string
	City         string
	ClientType   string
	ShipmentType string
	BoxSale      string
	BoxCount     string
}

// DefaultBitrixColumns колонки стандартной выгрузки bitrix
func DefaultBitrixColumns() BitrixColumns {
	return BitrixColumns{
		Client:       "CLIENTE",
		ScheduledAt:  "FECHA DE AGENDA",
		PickupDate:   "FECHA RECOGIDA",
		Advisor:      "ASESOR",
		City:         "CIUDAD",
		ClientType:   "TIPO DE CLIENTE",
		ShipmentType: "TIPO ENVIO",
		BoxSale:      "VENTA CAJA",
		BoxCount:     "CANTIDAD CAJAS",
	}
}

// Required возвращает обязательные колонки в порядке вывода в отчет
func (c BitrixColumns) Required() []string {
	return []string{
		c.Client, c.ScheduledAt, c.PickupDate, c.Advisor, c.City,
		c.ClientType, c.ShipmentType, c.BoxSale, c.BoxCount,
	}
}

// Payload возвращает колонки bitrix, которые попадают в итоговую таблицу
// CLIENTE не выводится: имя уже есть в REMITENTE
func (c BitrixColumns) Payload() []string {
	return []string{
		c.ScheduledAt, c.PickupDate, c.Advisor, c.City,
		c.ClientType, c.ShipmentType, c.BoxSale, c.BoxCount,
	}
}

// DateColumns колонки с датами, которые декодер должен перевести из серийного формата Excel
func (c ManagerColumns) DateColumns() []string {
	return []string{c.Date}
}

// DateColumns колонки с датами bitrix
func (c BitrixColumns) DateColumns() []string {
	return []string{c.ScheduledAt, c.PickupDate}
}

// Settings явная конфигурация сопоставления
type Settings struct {
	Manager         ManagerColumns
	Bitrix          BitrixColumns
	ManagerDateMode DateMode
	BitrixDateMode  DateMode
	// HintMaxDistance максимальное расстояние Левенштейна для подсказки; < 0 отключает подсказки
	HintMaxDistance int
}

// DefaultSettings настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Manager:         DefaultManagerColumns(),
		Bitrix:          DefaultBitrixColumns(),
		ManagerDateMode: DateModeBySeparator,
		BitrixDateMode:  DateModeBySeparator,
		HintMaxDistance: 2,
	}
}
