package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"procesos/internal/domain/payroll"
	"procesos/internal/domain/reconciliation"
)

// Генератор примерных выгрузок manager, bitrix и liquidacion для ручной проверки сервиса
func main() {
	outDir := flag.String("out", filepath.Join("data", "samples"), "каталог для файлов")
	rows := flag.Int("rows", 50, "количество строк manager")
	seed := flag.Int64("seed", 0, "seed генератора; 0 дает случайные данные")
	flag.Parse()

	if *rows < 1 {
		log.Fatalf("rows must be positive, got %d", *rows)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	faker := gofakeit.New(*seed)
	shipments := newShipments(faker, *rows)

	files := []struct {
		name  string
		sheet string
		rows  [][]interface{}
	}{
		{"manager.xlsx", "Reporte", managerRows(faker, shipments)},
		{"bitrix.xlsx", "CRM", bitrixRows(faker, shipments)},
		{"liquidacion.xlsx", "Liquidacion", payrollRows(faker, *rows/5+3)},
	}

	for _, f := range files {
		path := filepath.Join(*outDir, f.name)
		if err := writeWorkbook(path, f.sheet, f.rows); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("✓ %s (%d rows)\n", path, len(f.rows))
	}
}

type shipment struct {
	guide  string
	sender string
	date   time.Time
}

func newShipments(faker *gofakeit.Faker, n int) []shipment {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	senders := make([]string, n/3+1)
	for i := range senders {
		senders[i] = faker.Name()
	}

	out := make([]shipment, n)
	for i := range out {
		out[i] = shipment{
			guide:  fmt.Sprintf("G%06d", faker.Number(1, 999999)),
			sender: faker.RandomString(senders),
			date:   start.AddDate(0, 0, faker.Number(0, 27)),
		}
	}
	return out
}

func managerRows(faker *gofakeit.Faker, shipments []shipment) [][]interface{} {
	cols := reconciliation.DefaultManagerColumns()
	header := make([]interface{}, 0, len(cols.Required()))
	for _, name := range cols.Required() {
		header = append(header, name)
	}

	// Первая строка выгрузки manager это заголовок отчета
	rows := [][]interface{}{{"Reporte de envios"}, header}
	for _, s := range shipments {
		total := ""
		if faker.Number(1, 10) > 1 {
			total = fmt.Sprintf("$%.2f", faker.Price(80, 4500))
		}
		rows = append(rows, []interface{}{
			s.guide,
			faker.Number(1, 4),
			"MX",
			s.date.Format("2006-01-02"),
			s.sender,
			faker.Name(),
			faker.RandomString([]string{"", "", "FRAGIL", "ENTREGA EN OFICINA"}),
			faker.Number(1, 40),
			total,
			faker.RandomString([]string{"EFECTIVO", "TARJETA", "TRANSFERENCIA", ""}),
		})
	}
	return rows
}

func bitrixRows(faker *gofakeit.Faker, shipments []shipment) [][]interface{} {
	cols := reconciliation.DefaultBitrixColumns()
	header := make([]interface{}, 0, len(cols.Required()))
	for _, name := range cols.Required() {
		header = append(header, name)
	}

	advisors := []string{"MARIA", "JOSE", "LAURA", "CARLOS"}
	rows := [][]interface{}{header}
	seen := make(map[string]bool)
	for _, s := range shipments {
		if seen[s.sender] || faker.Number(1, 10) > 8 {
			continue
		}
		seen[s.sender] = true

		name := s.sender
		pickup := s.date
		switch faker.Number(1, 10) {
		case 1:
			// Опечатка в имени дает подсказку вместо совпадения
			name = typo(name)
		case 2:
			pickup = pickup.AddDate(0, 0, faker.Number(1, 5))
		}

		boxes := faker.Number(0, 3)
		boxSale := "NO"
		if boxes > 0 {
			boxSale = "SI"
		}

		rows = append(rows, []interface{}{
			strings.ToUpper(name),
			pickup.AddDate(0, 0, -faker.Number(1, 3)).Format("02/01/2006"),
			pickup.Format("02/01/2006"),
			faker.RandomString(advisors),
			faker.City(),
			faker.RandomString([]string{"NUEVO", "RECURRENTE"}),
			faker.RandomString([]string{"AEREO", "TERRESTRE"}),
			boxSale,
			boxes,
		})
	}
	return rows
}

func payrollRows(faker *gofakeit.Faker, n int) [][]interface{} {
	cols := payroll.DefaultColumns()
	rows := [][]interface{}{{cols.Name, cols.Role, cols.Hours, cols.Rate, cols.Discount, cols.StartDate, cols.EndDate}}
	for i := 0; i < n; i++ {
		hours := fmt.Sprintf("%d:%02d", faker.Number(20, 96), 15*faker.Number(0, 3))
		discount := ""
		if faker.Bool() {
			discount = fmt.Sprintf("%d", faker.Number(10, 300))
		}
		rows = append(rows, []interface{}{
			faker.Name(),
			faker.RandomString([]string{"Conductor", "Auxiliar", "Bodega"}),
			hours,
			faker.Number(60, 140),
			discount,
			"2026-01-01",
			"2026-01-15",
		})
	}
	return rows
}

func typo(name string) string {
	if len(name) < 4 {
		return name
	}
	runes := []rune(name)
	runes[1], runes[2] = runes[2], runes[1]
	return string(runes)
}

func writeWorkbook(path, sheet string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
