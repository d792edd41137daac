package container

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"procesos/database"
	journalhandler "procesos/internal/api/handlers/journal"
	payrollhandler "procesos/internal/api/handlers/payroll"
	reconhandler "procesos/internal/api/handlers/reconciliation"
	systemhandler "procesos/internal/api/handlers/system"
	"procesos/internal/api/routes"
	journalapp "procesos/internal/application/journal"
	payrollapp "procesos/internal/application/payroll"
	reconapp "procesos/internal/application/reconciliation"
	"procesos/internal/config"
	"procesos/internal/domain/payroll"
	"procesos/internal/domain/reconciliation"
	"procesos/internal/domain/repositories"
	"procesos/internal/infrastructure/persistence"
	"procesos/internal/infrastructure/receipts"
	"procesos/internal/infrastructure/tableio"
	"procesos/server/middleware"
	"procesos/server/monitoring"
)

// Version версия сервиса для health check
const Version = "1.0.0"

// errJournalDisabled журнал не удалось открыть при старте
var errJournalDisabled = errors.New("journal is disabled")

// Container контейнер зависимостей
// Управляет жизненным циклом всех компонентов приложения
type Container struct {
	mu sync.RWMutex

	// Конфигурация
	Config *config.Config

	// Журнал запусков; nil, если базу не удалось открыть
	JournalDB     *database.JournalDB
	RunRepository repositories.RunRepository

	// Domain services
	ReconciliationService reconciliation.Service
	PayrollService        payroll.Service

	// Инфраструктура
	Decoder       tableio.Decoder
	ReportEncoder tableio.ReportEncoder
	Bundler       *receipts.Bundler

	// Use cases
	JournalUseCase        *journalapp.UseCase
	ReconciliationUseCase *reconapp.UseCase
	PayrollUseCase        *payrollapp.UseCase

	// HTTP
	Handlers      routes.Handlers
	HealthChecker *monitoring.HealthChecker

	initialized bool
}

// NewContainer создает новый контейнер
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// Initialize инициализирует все зависимости контейнера
func (c *Container) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return fmt.Errorf("container already initialized")
	}

	// Шаг 1: Журнал запусков
	c.initJournal()

	// Шаг 2: Domain services и инфраструктура
	if err := c.initServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Шаг 3: Use cases и обработчики
	c.initHandlers()

	c.initialized = true
	log.Println("Container initialized successfully")
	return nil
}

// initJournal открывает журнал. Ошибка не фатальна: обработка файлов работает и без него
func (c *Container) initJournal() {
	journalDB, err := database.NewJournalDBWithConfig(c.Config.JournalDatabasePath, database.DBConfig{
		MaxOpenConns:    c.Config.MaxOpenConns,
		MaxIdleConns:    c.Config.MaxIdleConns,
		ConnMaxLifetime: c.Config.ConnMaxLifetime,
	})
	if err != nil {
		log.Printf("Warning: journal database unavailable, runs will not be recorded: %v", err)
		return
	}

	c.JournalDB = journalDB
	c.RunRepository = persistence.NewRunRepository(journalDB)
	log.Printf("Journal database opened: %s", c.Config.JournalDatabasePath)
}

func (c *Container) initServices() error {
	reconSettings := reconciliation.DefaultSettings()
	reconSettings.HintMaxDistance = c.Config.Reconciliation.HintMaxDistance

	payrollSettings := payroll.DefaultSettings()
	payrollSettings.ReservedRole = c.Config.Payroll.ReservedRole
	payrollSettings.DriverDeposit = c.Config.Payroll.DriverDeposit
	payrollSettings.ReceiptPrefix = c.Config.Payroll.ReceiptPrefix

	logo, logoType, err := receipts.LoadLogo(c.Config.Payroll.LogoPath)
	if err != nil {
		return err
	}

	c.ReconciliationService = reconciliation.NewService(reconSettings)
	c.PayrollService = payroll.NewService(payrollSettings)
	c.Decoder = tableio.NewDecoder()
	c.ReportEncoder = tableio.NewReportEncoder(reconSettings.Manager, reconSettings.Bitrix)
	c.Bundler = receipts.NewBundler(receipts.NewPDFRenderer(receipts.Options{
		CompanyName: c.Config.Payroll.CompanyName,
		Logo:        logo,
		LogoType:    logoType,
	}))
	return nil
}

func (c *Container) initHandlers() {
	if c.RunRepository != nil {
		c.JournalUseCase = journalapp.NewUseCase(c.RunRepository)
	}

	c.ReconciliationUseCase = reconapp.NewUseCase(
		c.Decoder,
		c.ReportEncoder,
		c.ReconciliationService,
		c.JournalUseCase,
		c.Config.Reconciliation.ManagerHeaderRow,
	)
	c.PayrollUseCase = payrollapp.NewUseCase(c.Decoder, c.PayrollService, c.Bundler, c.JournalUseCase)

	middleware.InitErrorMetrics()

	c.HealthChecker = monitoring.NewHealthChecker(Version)
	c.HealthChecker.RegisterComponent("journal", false, func(ctx context.Context) error {
		if c.JournalUseCase == nil {
			return errJournalDisabled
		}
		return c.JournalUseCase.Ping(ctx)
	})

	c.Handlers = routes.Handlers{
		Reconciliation: reconhandler.NewHandler(c.ReconciliationUseCase, c.Config.RequestTimeout),
		Payroll:        payrollhandler.NewHandler(c.PayrollUseCase, c.Config.RequestTimeout),
		Journal:        journalhandler.NewHandler(c.JournalUseCase),
		ErrorMetrics:   systemhandler.NewErrorMetricsHandler(),
		Health:         c.HealthChecker,
	}
}

// Router создает gin engine приложения
func (c *Container) Router() (*gin.Engine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return nil, fmt.Errorf("container is not initialized")
	}

	return routes.NewEngine(c.Handlers, routes.Options{
		MaxUploadBytes:  c.Config.MaxUploadBytes(),
		UploadRateLimit: c.Config.UploadRateLimit,
		UploadRateBurst: c.Config.UploadRateBurst,
	}), nil
}

// Shutdown корректно завершает работу контейнера
func (c *Container) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}

	if c.JournalDB != nil {
		if err := c.JournalDB.Close(); err != nil {
			log.Printf("Error closing journal database: %v", err)
		}
	}

	c.initialized = false
	log.Println("Container shut down successfully")
	return nil
}

// IsInitialized проверяет, инициализирован ли контейнер
func (c *Container) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}
