// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/bot"
	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

type Server struct {
	server *http.Server
	logger *logger.Logger
}

func NewServer(port string, telegramBot *bot.TelegramBot, logger *logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/webhook/stripe", telegramBot.HandleStripeWebhook)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server: httpServer,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Infof("Starting HTTP server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
