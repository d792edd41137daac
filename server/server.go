package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server HTTP сервер портала
type Server struct {
	httpServer *http.Server
}

// NewServer создает сервер на порту port с готовым обработчиком
func NewServer(port string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute, // Сборка архива квитанций может идти долго
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Addr адрес, на котором слушает сервер
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start запускает HTTP сервер и блокируется до остановки
// После Shutdown возвращает nil
func (s *Server) Start() error {
	if s.httpServer.Handler == nil {
		return fmt.Errorf("http handler is nil")
	}

	log.Printf("Starting HTTP server on %s...", s.httpServer.Addr)
	log.Printf("API доступно по адресу: http://localhost%s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", s.httpServer.Addr, err)
	}
	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Initiating graceful shutdown...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}

	log.Println("Graceful shutdown completed")
	return nil
}
