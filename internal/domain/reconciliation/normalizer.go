package reconciliation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DateMode способ разбора текстовой даты
type DateMode int

const (
	// DateModeBySeparator ISO, если в значении есть '-', иначе день первым
	DateModeBySeparator DateMode = iota
	// DateModeISO только YYYY-MM-DD
	DateModeISO
	// DateModeDayFirst только DD/MM/YYYY
	DateModeDayFirst
)

func (m DateMode) String() string {
	switch m {
	case DateModeBySeparator:
		return "separator"
	case DateModeISO:
		return "iso"
	case DateModeDayFirst:
		return "dayfirst"
	default:
		return fmt.Sprintf("DateMode(%d)", int(m))
	}
}

// ParseDateMode разбирает режим из конфигурации
func ParseDateMode(value string) (DateMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "separator":
		return DateModeBySeparator, nil
	case "iso":
		return DateModeISO, nil
	case "dayfirst", "day_first":
		return DateModeDayFirst, nil
	default:
		return DateModeBySeparator, fmt.Errorf("unknown date mode %q", value)
	}
}

var (
	isoDatePattern      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[ T].*)?$`)
	dayFirstDatePattern = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})[/.](\d{4}|\d{2})(?:\s+.*)?$`)
)

// NormalizeName нормализует имя контрагента; nil дает пустую строку
func NormalizeName(text *string) string {
	if text == nil {
		return ""
	}
	return NormalizeNameString(*text)
}

// NormalizeNameString убирает диакритику и не-ASCII символы, приводит к верхнему регистру,
// схлопывает пробелы. Дефисы и подчеркивания считаются разделителями слов
func NormalizeNameString(text string) string {
	if text == "" {
		return ""
	}

	text = strings.Map(func(r rune) rune {
		if r == '_' || unicode.Is(unicode.Pd, r) {
			return ' '
		}
		return r
	}, text)

	// Transformer хранит состояние, поэтому собираем цепочку на каждый вызов
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// NormalizeDate разбирает дату; nil и нераспознанный текст дают невалидную дату
func NormalizeDate(value *string, mode DateMode) Date {
	if value == nil {
		return Date{}
	}
	date, err := ParseDate(*value, mode)
	if err != nil {
		return Date{}
	}
	return date
}

// ParseDate разбирает дату и возвращает ErrParse, если текст не распознан
func ParseDate(value string, mode DateMode) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, fmt.Errorf("empty date: %w", ErrParse)
	}

	var iso bool
	switch mode {
	case DateModeISO:
		iso = true
	case DateModeDayFirst:
	default:
		iso = strings.Contains(value, "-")
	}

	var year, month, day int
	if iso {
		m := isoDatePattern.FindStringSubmatch(value)
		if m == nil {
			return Date{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", value, ErrParse)
		}
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	} else {
		m := dayFirstDatePattern.FindStringSubmatch(value)
		if m == nil {
			return Date{}, fmt.Errorf("date %q is not DD/MM/YYYY: %w", value, ErrParse)
		}
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}

	// time.Date нормализует 31/02 в 03/03, такие даты отбрасываем
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("date %q is out of range: %w", value, ErrParse)
	}

	return NewDate(year, time.Month(month), day), nil
}

// KeyOf вычисляет нормализованный ключ по сырому имени и дате
func KeyOf(name, date *string, mode DateMode) Key {
	return Key{Name: NormalizeName(name), Date: NormalizeDate(date, mode)}
}
