package tableio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV читает CSV в UTF-8 или Windows-1252, разделитель "," или ";"
func readCSV(data []byte) ([][]string, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// toUTF8 убирает BOM и перекодирует из Windows-1252, если вход не UTF-8
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode windows-1252: %w", err)
	}
	return decoded, nil
}

// detectDelimiter выбирает разделитель по первой строке, где он встречается (вне кавычек)
func detectDelimiter(data []byte) rune {
	commas, semicolons := 0, 0
	quoted := false
	for _, b := range data {
		switch b {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				commas++
			}
		case ';':
			if !quoted {
				semicolons++
			}
		case '\n':
			// Строки без разделителей (заголовок отчета над таблицей) пропускаются
			if !quoted && commas+semicolons > 0 {
				if semicolons > commas {
					return ';'
				}
				return ','
			}
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}
