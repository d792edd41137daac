package receipts

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"procesos/internal/domain/payroll"
)

// ArchiveFileName имя архива с квитанциями
const ArchiveFileName = "Recibos_Liquidacion.zip"

// EntryName имя файла квитанции в архиве: пробелы заменяются на "_"
func EntryName(employee string) string {
	name := strings.TrimSpace(employee)
	name = strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(name)
	if name == "" {
		name = "recibo"
	}
	return name + ".pdf"
}

// Bundler собирает квитанции в один ZIP
type Bundler struct {
	renderer Renderer
}

// NewBundler создает сборщик архива
func NewBundler(renderer Renderer) *Bundler {
	return &Bundler{renderer: renderer}
}

// Bundle рендерит квитанцию на каждый расчет и упаковывает их в архив
// Совпадающие имена получают числовой суффикс: Juan.pdf, Juan_2.pdf
func (b *Bundler) Bundle(ctx context.Context, settlements []payroll.Settlement) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int, len(settlements))

	for _, s := range settlements {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return nil, err
		}

		pdfBytes, err := b.renderer.Render(s)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("row %d: %w", s.Input.Row, err)
		}

		name := uniqueName(EntryName(s.Input.Name), used)
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(pdfBytes); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write zip entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

func uniqueName(name string, used map[string]int) string {
	used[name]++
	if used[name] == 1 {
		return name
	}
	base := strings.TrimSuffix(name, ".pdf")
	for {
		candidate := fmt.Sprintf("%s_%d.pdf", base, used[name])
		if _, taken := used[candidate]; !taken {
			used[candidate] = 1
			return candidate
		}
		used[name]++
	}
}
