package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// ParseHours разбирает отработанные часы: "h:m:s", "h:m" или число
func ParseHours(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return decimal.Zero, nil
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		if len(parts) > 3 {
			return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidHours)
		}
		multipliers := []int64{3600, 60, 1}
		var seconds int64
		for i, part := range parts {
			value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || value < 0 {
				return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidHours)
			}
			seconds += value * multipliers[i]
		}
		return decimal.NewFromInt(seconds).Div(secondsPerHour), nil
	}

	value, err := parseNumber(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidHours)
	}
	return value, nil
}

// HoursFromDuration переводит длительность в часы
func HoursFromDuration(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour)
}

// ParseAmount разбирает сумму, пустое значение равно нулю
func ParseAmount(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return decimal.Zero, nil
	}
	value, err := parseNumber(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidAmount)
	}
	return value, nil
}

func parseNumber(text string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "").Replace(text)
	return decimal.NewFromString(cleaned)
}

// Форматы дат периода: ISO (в том числе после конвертации Excel serial) и американский MM/DD/YYYY
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate разбирает дату периода, пустое значение дает нулевое время
func ParseDate(raw string) (time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", raw, ErrInvalidDate)
}

// FormatDate форматирует дату для квитанции (MM/DD/YYYY)
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}
