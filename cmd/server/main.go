// @title Portal de Procesos API
// @version 1.0
// @description Сверка выгрузок manager и bitrix в книгу Agendamiento и выпуск PDF квитанций по таблице расчетов.

// @contact.name API Support
// @contact.email support@example.com

// @license.name Internal Use Only

// @host localhost:9999
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"procesos/internal/config"
	"procesos/internal/container"
	"procesos/server"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск Portal de Procesos...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	server.InitLogger(cfg.LogLevel)

	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Ошибка создания контейнера: %v", err)
	}
	if err := c.Initialize(); err != nil {
		log.Fatalf("Ошибка инициализации контейнера: %v", err)
	}

	router, err := c.Router()
	if err != nil {
		log.Fatalf("Ошибка создания роутера: %v", err)
	}

	srv := server.NewServer(cfg.Port, router)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Паника при запуске сервера: %v", r)
			}
		}()
		errCh <- srv.Start()
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер запущен на порту %s", cfg.Port)
	log.Printf("✓ API доступно: http://localhost:%s", cfg.Port)
	log.Printf("✓ Swagger: http://localhost:%s/swagger/index.html", cfg.Port)
	if c.JournalDB != nil {
		log.Printf("✓ Журнал запусков: %s", cfg.JournalDatabasePath)
	} else {
		log.Printf("⚠ Журнал запусков отключен")
	}
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("✗ Ошибка запуска сервера: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("⏹  Получен сигнал %s, останавливаю сервер...", sig)
	}

	// Даем текущим загрузкам завершиться в пределах таймаута обработки
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("✗ Ошибка при остановке сервера: %v", err)
	}
	if err := c.Shutdown(ctx); err != nil {
		log.Printf("✗ Ошибка при остановке контейнера: %v", err)
	}
	log.Println("✓ Сервер успешно остановлен")
}
