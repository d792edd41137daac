package receipts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"procesos/internal/domain/payroll"
)

// ErrRender не удалось сформировать PDF
var ErrRender = errors.New("render receipt")

const (
	documentTitle   = "FACTURA DE NÓMINA"
	signatureLine   = "Recibí Conforme _________________________________"
	watermarkAlpha  = 0.15
	watermarkWidth  = 140.0
	headerLogoWidth = 60.0
	logoImageName   = "logo"
)

// Options параметры оформления квитанции
type Options struct {
	CompanyName string
	// Logo содержимое PNG/JPG; пусто означает квитанцию без логотипа
	Logo     []byte
	LogoType string
	// Now источник времени для метаданных документа
	Now func() time.Time
}

// LoadLogo читает логотип с диска; пустой путь не ошибка
func LoadLogo(path string) ([]byte, string, error) {
	if path == "" {
		return nil, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read logo %s: %w", path, err)
	}
	imageType := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	return data, imageType, nil
}

// Renderer формирует PDF одной квитанции
type Renderer interface {
	Render(s payroll.Settlement) ([]byte, error)
}

// PDFRenderer квитанции на go-pdf/fpdf
type PDFRenderer struct {
	opts Options
}

// NewPDFRenderer создает рендерер квитанций
func NewPDFRenderer(opts Options) *PDFRenderer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PDFRenderer{opts: opts}
}

func (r *PDFRenderer) Render(s payroll.Settlement) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 20, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetCreationDate(r.opts.Now())
	pdf.SetTitle(documentTitle+" "+s.ReceiptNumber, true)
	pdf.SetAuthor(r.opts.CompanyName, true)

	// Встроенные шрифты работают в cp1252, строки переводятся из UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	hasLogo := len(r.opts.Logo) > 0
	if hasLogo {
		pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: r.opts.LogoType}, bytes.NewReader(r.opts.Logo))
		pdf.SetHeaderFunc(func() { r.watermark(pdf) })
	}

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	if hasLogo {
		pdf.ImageOptions(logoImageName, pageWidth-right-headerLogoWidth, 10, headerLogoWidth, 0, false,
			fpdf.ImageOptions{ImageType: r.opts.LogoType}, 0, "")
		pdf.SetY(34)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentWidth, 10, tr(documentTitle), "", 1, "C", false, 0, "")
	if r.opts.CompanyName != "" {
		pdf.CellFormat(contentWidth, 10, tr(r.opts.CompanyName), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	in := s.Input
	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(contentWidth-40, 7, tr(value), "", 1, "L", false, 0, "")
	}
	field("No. Recibo:", s.ReceiptNumber)
	pdf.Ln(4)
	field("Nombre:", in.Name)
	field("Cargo:", in.Role)
	field("Valor por Hora:", FormatMoney(s.Result.Rate))
	field("Fecha Inicio:", payroll.FormatDate(in.StartDate))
	field("Fecha Fin:", payroll.FormatDate(in.EndDate))
	pdf.Ln(8)

	r.financialTable(pdf, tr, s.Result)

	pdf.Ln(24)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentWidth, 7, tr(signatureLine), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRender, s.ReceiptNumber, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRender, s.ReceiptNumber, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) financialTable(pdf *fpdf.Fpdf, tr func(string) string, result payroll.SettlementResult) {
	const conceptWidth, amountWidth, rowHeight = 90.0, 50.0, 8.0

	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(0x0B, 0x6E, 0x2E)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(conceptWidth, rowHeight, tr("Concepto"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, tr("Monto"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	rows := [][2]string{
		{"Horas Trabajadas", result.Hours.StringFixed(2)},
		{"Total A Pagar", FormatMoney(result.Gross)},
		{"Depósito Directo", FormatMoney(result.Deposit)},
		{"Descuento", FormatMoney(result.Discount)},
	}
	for _, row := range rows {
		pdf.CellFormat(conceptWidth, rowHeight, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountWidth, rowHeight, tr(row[1]), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(0xDC, 0xE6, 0xDC)
	pdf.CellFormat(conceptWidth, rowHeight, tr("Valor Neto a Pagar"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, tr(FormatMoney(result.Net)), "1", 1, "R", true, 0, "")
}

// watermark полупрозрачный логотип в центре страницы
func (r *PDFRenderer) watermark(pdf *fpdf.Fpdf) {
	pageWidth, pageHeight := pdf.GetPageSize()
	x, y := pdf.GetXY()
	pdf.SetAlpha(watermarkAlpha, "Normal")
	pdf.ImageOptions(logoImageName, (pageWidth-watermarkWidth)/2, pageHeight/2-40, watermarkWidth, 0, false,
		fpdf.ImageOptions{ImageType: r.opts.LogoType}, 0, "")
	pdf.SetAlpha(1, "Normal")
	pdf.SetXY(x, y)
}

// FormatMoney форматирует сумму как $1,234.56
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + "$" + grouped.String() + "." + frac
}
