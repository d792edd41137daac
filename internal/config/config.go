package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port           string        `json:"port"`
	RequestTimeout time.Duration `json:"request_timeout"`

	// Журнал запусков
	JournalDatabasePath string `json:"journal_database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Загрузка файлов
	MaxUploadSizeMB int     `json:"max_upload_size_mb"`
	UploadRateLimit float64 `json:"upload_rate_limit"`
	UploadRateBurst int     `json:"upload_rate_burst"`

	// Сверка
	Reconciliation *ReconciliationConfig `json:"reconciliation"`

	// Расчет и квитанции
	Payroll *PayrollConfig `json:"payroll"`
}

// ReconciliationConfig параметры сверки manager/bitrix
type ReconciliationConfig struct {
	// ManagerHeaderRow строка заголовка выгрузки manager (с нуля)
	ManagerHeaderRow int `json:"manager_header_row"`
	// HintMaxDistance порог подсказок; отрицательное значение отключает их
	HintMaxDistance int `json:"hint_max_distance"`
}

// PayrollConfig параметры расчета и оформления квитанций
type PayrollConfig struct {
	ReservedRole  string          `json:"reserved_role"`
	DriverDeposit decimal.Decimal `json:"driver_deposit"`
	ReceiptPrefix string          `json:"receipt_prefix"`
	CompanyName   string          `json:"company_name"`
	LogoPath      string          `json:"logo_path"`
}

// MaxUploadBytes лимит тела запроса в байтах
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Port:           getEnv("SERVER_PORT", "9999"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 2*time.Minute),

		JournalDatabasePath: getEnv("JOURNAL_DATABASE_PATH", "journal.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 20),
		UploadRateLimit: getEnvFloat("UPLOAD_RATE_LIMIT", 2),
		UploadRateBurst: getEnvInt("UPLOAD_RATE_BURST", 5),

		Reconciliation: LoadReconciliationConfig(),
		Payroll:        LoadPayrollConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadReconciliationConfig загружает параметры сверки
func LoadReconciliationConfig() *ReconciliationConfig {
	return &ReconciliationConfig{
		ManagerHeaderRow: getEnvInt("MANAGER_HEADER_ROW", 1),
		HintMaxDistance:  getEnvInt("HINT_MAX_DISTANCE", 2),
	}
}

// LoadPayrollConfig загружает параметры расчета
func LoadPayrollConfig() *PayrollConfig {
	return &PayrollConfig{
		ReservedRole:  getEnv("PAYROLL_RESERVED_ROLE", "CONDUCTOR"),
		DriverDeposit: getEnvDecimal("PAYROLL_DRIVER_DEPOSIT", decimal.NewFromInt(150)),
		ReceiptPrefix: getEnv("RECEIPT_PREFIX", "MX"),
		CompanyName:   getEnv("COMPANY_NAME", "Portal de Procesos"),
		LogoPath:      os.Getenv("RECEIPT_LOGO_PATH"),
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDecimal получает денежную сумму из переменной окружения
func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}
