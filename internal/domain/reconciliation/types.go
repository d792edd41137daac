package reconciliation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MatchTier уровень сопоставления строки manager со строкой bitrix
// Уровни упорядочены по убыванию уверенности
type MatchTier int

const (
	TierExact MatchTier = iota
	TierMultiDate
	TierNameOnly
	TierUnmatched
)

// AllTiers возвращает уровни в порядке применения
func AllTiers() []MatchTier {
	return []MatchTier{TierExact, TierMultiDate, TierNameOnly, TierUnmatched}
}

func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "EXACT"
	case TierMultiDate:
		return "MULTI_DATE"
	case TierNameOnly:
		return "NAME_ONLY"
	case TierUnmatched:
		return "UNMATCHED"
	default:
		return fmt.Sprintf("MatchTier(%d)", int(t))
	}
}

// Label возвращает подпись уровня для отчета оператору
func (t MatchTier) Label() string {
	switch t {
	case TierExact:
		return "EXACTO"
	case TierMultiDate:
		return "MULTIPLE_FECHA"
	case TierNameOnly:
		return "SOLO_NOMBRE"
	case TierUnmatched:
		return "NO_CRUZADO"
	default:
		return t.String()
	}
}

// MarshalText сериализует уровень в JSON как строку
func (t MatchTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Date календарная дата без времени
// Невалидная дата никогда не равна другой невалидной дате
type Date struct {
	Year  int
	Month time.Month
	Day   int
	Valid bool
}

// NewDate создает валидную дату
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day, Valid: true}
}

// Equal сравнивает даты, две невалидные даты не равны
func (d Date) Equal(other Date) bool {
	return d.Valid && other.Valid && d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Key нормализованный ключ (имя, дата)
type Key struct {
	Name string
	Date Date
}

// Matchable ключ участвует в соединении по (имя, дата) только если обе части заданы
func (k Key) Matchable() bool {
	return k.Name != "" && k.Date.Valid
}

// ManagerPayload поля manager, переносимые в отчет без изменений
type ManagerPayload struct {
	Pieces        string
	Country       string
	Recipient     string
	Comments      string
	Weight        string
	Total         decimal.NullDecimal
	TotalRaw      string
	PaymentMethod string
}

// Record строка основной таблицы (manager)
type Record struct {
	Row     int
	GuideID string
	Name    *string
	Date    *string
	Payload ManagerPayload
}

// BitrixPayload поля CRM, переносимые в отчет без изменений
type BitrixPayload struct {
	ScheduledAt  string
	Advisor      string
	City         string
	ClientType   string
	ShipmentType string
	BoxSale      string
	BoxCount     string
}

// Candidate строка вторичной таблицы (bitrix)
type Candidate struct {
	Row     int
	Name    *string
	Date    *string
	Payload BitrixPayload
}

// Hint ближайшее имя из bitrix для несопоставленной строки
type Hint struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// UnifiedRow строка результата: запись manager, найденный кандидат (или nil) и уровень
type UnifiedRow struct {
	Record    Record
	Candidate *Candidate
	Tier      MatchTier
	Hint      *Hint
}

// MatchStats статистика одного прогона сопоставления
type MatchStats struct {
	Records               int `json:"records"`
	Candidates            int `json:"candidates"`
	OutputRows            int `json:"output_rows"`
	Exact                 int `json:"exact"`
	MultiDateRows         int `json:"multi_date_rows"`
	MultiDateRecords      int `json:"multi_date_records"`
	NameOnly              int `json:"name_only"`
	Unmatched             int `json:"unmatched"`
	UnusedCandidates      int `json:"unused_candidates"`
	InvalidRecordDates    int `json:"invalid_record_dates"`
	InvalidCandidateDates int `json:"invalid_candidate_dates"`
	InvalidTotals         int `json:"invalid_totals"`
	Hints                 int `json:"hints"`
}

// TierCounts возвращает количество строк результата по уровням
func (s MatchStats) TierCounts() map[MatchTier]int {
	return map[MatchTier]int{
		TierExact:     s.Exact,
		TierMultiDate: s.MultiDateRows,
		TierNameOnly:  s.NameOnly,
		TierUnmatched: s.Unmatched,
	}
}
