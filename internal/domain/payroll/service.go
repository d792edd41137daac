package payroll

import (
	"time"

	"procesos/internal/domain/tabular"
)

// Service интерфейс расчета выплат
type Service interface {
	// Settle рассчитывает выплаты по всем строкам таблицы и присваивает номера квитанций
	Settle(table *tabular.Table, issuedAt time.Time) ([]Settlement, error)

	// Settings возвращает настройки, с которыми создан сервис
	Settings() Settings
}

type service struct {
	settings    Settings
	numberMaker func(prefix string, issuedAt time.Time) string
}

// NewService создает новый domain service
func NewService(settings Settings) Service {
	return &service{settings: settings, numberMaker: NewReceiptNumber}
}

func (s *service) Settings() Settings {
	return s.settings
}

func (s *service) Settle(table *tabular.Table, issuedAt time.Time) ([]Settlement, error) {
	inputs, err := BuildSettlementInputs(table, s.settings.Columns)
	if err != nil {
		return nil, err
	}

	settlements := make([]Settlement, 0, len(inputs))
	for _, in := range inputs {
		settlements = append(settlements, Settlement{
			Input:         in,
			Result:        ComputeSettlement(in, s.settings),
			ReceiptNumber: s.numberMaker(s.settings.ReceiptPrefix, issuedAt),
		})
	}
	return settlements, nil
}
