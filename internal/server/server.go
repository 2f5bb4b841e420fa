package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

const maxUpdateSize = 1 << 20

// UpdateHandler принимает тело webhook-запроса Telegram
type UpdateHandler interface {
	HandleWebhook(ctx context.Context, body []byte) error
}

// Server HTTP-сервер для режима webhook
type Server struct {
	router  *mux.Router
	http    *http.Server
	handler UpdateHandler
	token   string
	logger  *log.Logger
}

func New(addr, token string, handler UpdateHandler, logger *log.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		handler: handler,
		token:   token,
		logger:  logger.WithComponent(log.ComponentHTTP),
	}
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/webhook/{token}", s.handleWebhook).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler корневой обработчик, нужен для тестов и встраивания
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start блокируется до Shutdown
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateSize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Telegram повторяет доставку при любом ответе кроме 200, поэтому
	// ошибки обработки только логируются
	if err := s.handler.HandleWebhook(r.Context(), body); err != nil {
		s.logger.ErrorContext(r.Context(), "webhook update failed", log.FieldError, err)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
