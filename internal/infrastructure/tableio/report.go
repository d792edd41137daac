package tableio

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"procesos/internal/domain/reconciliation"
)

const (
	// ReportFileName имя итоговой книги
	ReportFileName = "Agendamiento.xlsx"

	SheetRows      = "Agendamiento"
	SheetDashboard = "Dashboard"

	ColumnTier = "NIVEL CRUCE"
	ColumnHint = "SUGERENCIA"

	columnCount = "AGENDAMIENTOS"
	columnSum   = "TOTAL_DINERO"

	// missingLabel подпись группы без значения
	missingLabel = "SIN DATO"

	// Таблицы дашборда идут друг за другом с отступом len(table)+3 строк
	tableGap = 3
	// chartColumn колонка, в которой размещаются диаграммы
	chartColumn = "M"
)

// ReportEncoder формирует итоговую книгу сопоставления
type ReportEncoder interface {
	Encode(ctx context.Context, rows []reconciliation.UnifiedRow, dashboard reconciliation.Dashboard) ([]byte, error)
}

type reportEncoder struct {
	manager reconciliation.ManagerColumns
	bitrix  reconciliation.BitrixColumns
}

// NewReportEncoder создает кодировщик с именами колонок из настроек сопоставления
func NewReportEncoder(manager reconciliation.ManagerColumns, bitrix reconciliation.BitrixColumns) ReportEncoder {
	return &reportEncoder{manager: manager, bitrix: bitrix}
}

// ReportHeader возвращает заголовок листа Agendamiento
func ReportHeader(manager reconciliation.ManagerColumns, bitrix reconciliation.BitrixColumns) []string {
	header := manager.Required()
	header = append(header, bitrix.Payload()...)
	return append(header, ColumnTier, ColumnHint)
}

func (e *reportEncoder) Encode(ctx context.Context, rows []reconciliation.UnifiedRow, dashboard reconciliation.Dashboard) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetRows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := e.writeRows(f, rows); err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %w", ErrEncode, SheetRows, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetDashboard); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := writeDashboard(f, dashboard); err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %w", ErrEncode, SheetDashboard, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func (e *reportEncoder) writeRows(f *excelize.File, rows []reconciliation.UnifiedRow) error {
	header := ReportHeader(e.manager, e.bitrix)
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#0B6E2E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetRows, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetRows, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowValues(row)
		if err := f.SetSheetRow(SheetRows, cell, &values); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(SheetRows, "A", lastCol, 18)
}

// rowValues значения строки в порядке ReportHeader
func rowValues(row reconciliation.UnifiedRow) []interface{} {
	r := row.Record
	p := r.Payload

	var total interface{} = p.TotalRaw
	if p.Total.Valid {
		total = p.Total.Decimal.InexactFloat64()
	}

	values := []interface{}{
		r.GuideID, p.Pieces, p.Country, deref(r.Date), deref(r.Name),
		p.Recipient, p.Comments, p.Weight, total, p.PaymentMethod,
	}

	if c := row.Candidate; c != nil {
		b := c.Payload
		values = append(values, b.ScheduledAt, deref(c.Date), b.Advisor, b.City,
			b.ClientType, b.ShipmentType, b.BoxSale, b.BoxCount)
	} else {
		values = append(values, "", "", "", "", "", "", "", "")
	}

	hint := ""
	if row.Hint != nil {
		hint = row.Hint.Name
	}
	return append(values, row.Tier.Label(), hint)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// tablePlacement положение таблицы дашборда на листе (строки с 1)
type tablePlacement struct {
	table     reconciliation.SummaryTable
	headerRow int
	sumCol    string
	countCol  string
}

func (p tablePlacement) firstRow() int { return p.headerRow + 1 }
func (p tablePlacement) lastRow() int  { return p.headerRow + len(p.table.Rows) }

func (p tablePlacement) ref(col string, from, to int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", SheetDashboard, col, from, col, to)
}

func (p tablePlacement) categories() string { return p.ref("A", p.firstRow(), p.lastRow()) }

func (p tablePlacement) seriesName(col string) string {
	return fmt.Sprintf("%s!$%s$%d", SheetDashboard, col, p.headerRow)
}

func writeDashboard(f *excelize.File, dashboard reconciliation.Dashboard) error {
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	tables := dashboard.Tables()
	placements := make([]tablePlacement, 0, len(tables))
	row := 1
	for _, table := range tables {
		placement, err := writeSummary(f, table, row, boldStyle)
		if err != nil {
			return err
		}
		placements = append(placements, placement)
		row += len(table.Rows) + tableGap
	}

	if err := f.SetColWidth(SheetDashboard, "A", "C", 22); err != nil {
		return err
	}
	return addCharts(f, placements)
}

func writeSummary(f *excelize.File, table reconciliation.SummaryTable, headerRow, style int) (tablePlacement, error) {
	placement := tablePlacement{table: table, headerRow: headerRow}

	header := []interface{}{string(table.Dimension)}
	col := 'B'
	if table.HasCount() {
		header = append(header, columnCount)
		placement.countCol = string(col)
		col++
	}
	if table.HasSum() {
		header = append(header, columnSum)
		placement.sumCol = string(col)
	}

	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(SheetDashboard, cell, &header); err != nil {
		return placement, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), headerRow)
	if err := f.SetCellStyle(SheetDashboard, cell, last, style); err != nil {
		return placement, err
	}

	for i, group := range table.Rows {
		label := group.Value
		if group.Missing {
			label = missingLabel
		}
		values := []interface{}{label}
		if table.HasCount() {
			values = append(values, group.Count)
		}
		if table.HasSum() {
			values = append(values, group.Sum.InexactFloat64())
		}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(SheetDashboard, cell, &values); err != nil {
			return placement, err
		}
	}
	return placement, nil
}

type chartSpec struct {
	anchor    string
	title     string
	chartType excelize.ChartType
	placement tablePlacement
	valueCol  string
	percent   bool
}

// addCharts добавляет пять диаграмм: количество и сумма по консультанту,
// тип клиента, способ оплаты, количество по городу
func addCharts(f *excelize.File, p []tablePlacement) error {
	advisor, clientType, payment, city := p[0], p[1], p[2], p[3]
	specs := []chartSpec{
		{anchor: "2", title: "Agendamientos por Asesor", chartType: excelize.Col, placement: advisor, valueCol: advisor.countCol},
		{anchor: "18", title: "Dinero por Asesor", chartType: excelize.Bar, placement: advisor, valueCol: advisor.sumCol},
		{anchor: "34", title: "Tipo de Cliente", chartType: excelize.Pie, placement: clientType, valueCol: clientType.sumCol, percent: true},
		{anchor: "52", title: "Método de Pago", chartType: excelize.Pie, placement: payment, valueCol: payment.sumCol, percent: true},
		{anchor: "70", title: "Agendamientos por Ciudad", chartType: excelize.Col, placement: city, valueCol: city.countCol},
	}

	for _, spec := range specs {
		// Пустая таблица дает некорректный диапазон
		if len(spec.placement.table.Rows) == 0 || spec.valueCol == "" {
			continue
		}
		chart := &excelize.Chart{
			Type: spec.chartType,
			Series: []excelize.ChartSeries{{
				Name:       spec.placement.seriesName(spec.valueCol),
				Categories: spec.placement.categories(),
				Values:     spec.placement.ref(spec.valueCol, spec.placement.firstRow(), spec.placement.lastRow()),
			}},
			Title:    []excelize.RichTextRun{{Text: spec.title}},
			Legend:   excelize.ChartLegend{Position: "bottom"},
			PlotArea: excelize.ChartPlotArea{ShowVal: !spec.percent, ShowPercent: spec.percent},
		}
		if err := f.AddChart(SheetDashboard, chartColumn+spec.anchor, chart); err != nil {
			return fmt.Errorf("chart %q: %w", spec.title, err)
		}
	}
	return nil
}
