package tableio

import "errors"

var (
	// ErrDecode входной файл не удалось прочитать как таблицу
	ErrDecode = errors.New("decode table")
	// ErrEncode не удалось сформировать выходной файл
	ErrEncode = errors.New("encode report")
	// ErrUnsupportedFormat расширение файла не поддерживается
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
