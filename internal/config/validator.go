package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// Validate проверяет корректность конфигурации
// Возвращает все найденные проблемы одной ошибкой
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.RequestTimeout < time.Second {
		errors = append(errors, "request timeout must be at least 1 second")
	}

	if c.JournalDatabasePath == "" {
		errors = append(errors, "journal database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация уровня логирования
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	if c.MaxUploadSizeMB < 1 {
		errors = append(errors, "max upload size must be at least 1 MB")
	}
	if c.UploadRateLimit < 0 {
		errors = append(errors, "upload rate limit cannot be negative")
	}
	if c.UploadRateBurst < 1 {
		errors = append(errors, "upload rate burst must be at least 1")
	}

	if c.Reconciliation == nil {
		errors = append(errors, "reconciliation config is required")
	} else if err := c.Reconciliation.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("reconciliation config: %v", err))
	}

	if c.Payroll == nil {
		errors = append(errors, "payroll config is required")
	} else if err := c.Payroll.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("payroll config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate проверяет параметры сверки
func (rc *ReconciliationConfig) Validate() error {
	if rc.ManagerHeaderRow < 0 {
		return fmt.Errorf("manager header row cannot be negative, got %d", rc.ManagerHeaderRow)
	}
	return nil
}

// Validate проверяет параметры расчета
func (pc *PayrollConfig) Validate() error {
	var errors []string

	if strings.TrimSpace(pc.ReservedRole) == "" {
		errors = append(errors, "reserved role is required")
	}
	if pc.DriverDeposit.IsNegative() {
		errors = append(errors, "driver deposit cannot be negative")
	}
	if strings.TrimSpace(pc.ReceiptPrefix) == "" {
		errors = append(errors, "receipt prefix is required")
	}
	if pc.LogoPath != "" {
		if _, err := os.Stat(pc.LogoPath); err != nil {
			errors = append(errors, fmt.Sprintf("receipt logo not readable: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

// GetDefaults возвращает конфигурацию по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                "9999",
		RequestTimeout:      2 * time.Minute,
		JournalDatabasePath: "journal.db",
		MaxOpenConns:        10,
		MaxIdleConns:        2,
		ConnMaxLifetime:     5 * time.Minute,
		LogLevel:            "INFO",
		MaxUploadSizeMB:     20,
		UploadRateLimit:     2,
		UploadRateBurst:     5,
		Reconciliation: &ReconciliationConfig{
			ManagerHeaderRow: 1,
			HintMaxDistance:  2,
		},
		Payroll: &PayrollConfig{
			ReservedRole:  "CONDUCTOR",
			DriverDeposit: decimal.NewFromInt(150),
			ReceiptPrefix: "MX",
			CompanyName:   "Portal de Procesos",
		},
	}
}
