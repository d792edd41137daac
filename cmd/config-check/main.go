package main

import (
	"fmt"
	"os"

	"procesos/internal/config"
)

func main() {
	fmt.Println("=== Проверка конфигурации ===")
	fmt.Println("")

	// LoadConfig уже вызывает Validate
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация успешно загружена")
	fmt.Println("")

	fmt.Println("Основные настройки:")
	fmt.Printf("  Порт: %s\n", cfg.Port)
	fmt.Printf("  Таймаут обработки: %v\n", cfg.RequestTimeout)
	fmt.Printf("  Уровень логирования: %s\n", cfg.LogLevel)
	fmt.Println("")

	fmt.Println("Журнал запусков:")
	fmt.Printf("  Путь: %s\n", cfg.JournalDatabasePath)
	fmt.Printf("  Max Open Connections: %d\n", cfg.MaxOpenConns)
	fmt.Printf("  Max Idle Connections: %d\n", cfg.MaxIdleConns)
	fmt.Printf("  Connection Max Lifetime: %v\n", cfg.ConnMaxLifetime)
	fmt.Println("")

	fmt.Println("Загрузки:")
	fmt.Printf("  Максимальный размер: %d MB\n", cfg.MaxUploadSizeMB)
	if cfg.UploadRateLimit > 0 {
		fmt.Printf("  Лимит: %.2f запросов/с, burst %d\n", cfg.UploadRateLimit, cfg.UploadRateBurst)
	} else {
		fmt.Println("  Лимит: отключен")
	}
	fmt.Println("")

	fmt.Println("Сверка (agendamiento):")
	fmt.Printf("  Строка заголовка manager: %d\n", cfg.Reconciliation.ManagerHeaderRow)
	if cfg.Reconciliation.HintMaxDistance < 0 {
		fmt.Println("  Подсказки по именам: отключены")
	} else {
		fmt.Printf("  Расстояние для подсказок: %d\n", cfg.Reconciliation.HintMaxDistance)
	}
	fmt.Println("")

	fmt.Println("Квитанции (liquidacion):")
	fmt.Printf("  Роль с депозитом: %s\n", cfg.Payroll.ReservedRole)
	fmt.Printf("  Депозит: %s\n", cfg.Payroll.DriverDeposit.String())
	fmt.Printf("  Префикс номера: %s\n", cfg.Payroll.ReceiptPrefix)
	fmt.Printf("  Компания: %s\n", cfg.Payroll.CompanyName)
	if cfg.Payroll.LogoPath != "" {
		fmt.Printf("  Логотип: %s\n", cfg.Payroll.LogoPath)
	} else {
		fmt.Println("  Логотип: [не задан]")
	}
	fmt.Println("")

	fmt.Println("=== Проверка завершена ===")
}
