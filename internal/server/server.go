// Package server exposes the small HTTP proxy the mobile clients talk to.
// Each endpoint forwards a single prompt to the provider and returns the
// completion, so the API key never ships inside the app.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/klai4444/Receptionist/internal/config"
	"github.com/klai4444/Receptionist/internal/httputil"
	"github.com/klai4444/Receptionist/internal/logging"
)

const (
	assistantSystemPrompt    = "You are a helpful assistant."
	receptionistSystemPrompt = "You are a helpful virtual receptionist."
)

// Completer produces one single-turn completion. Implemented by
// openaiCompleter in production and by fakes in tests.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Server is the proxy HTTP server.
type Server struct {
	cfg       config.ServerConfig
	completer Completer
	router    chi.Router
}

// New creates a proxy server backed by the given completer.
func New(cfg config.ServerConfig, completer Completer) *Server {
	s := &Server{
		cfg:       cfg,
		completer: completer,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("proxy listening on http://localhost:%d", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.OkJSON(w, map[string]string{"status": "ok"})
	})

	r.Post("/openai", s.handleCompletion)
	r.Post("/getOpenAIResponse", s.handleReply)
	r.Post("/api/getOpenAIResponse", s.handleReply)

	return r
}

// handleCompletion serves POST /openai: {"prompt": ...} in, the raw
// completion message object out.
func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil || req.Prompt == "" {
		httputil.Error(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	content, err := s.completer.Complete(r.Context(), assistantSystemPrompt, req.Prompt)
	if err != nil {
		logging.Errorf("completion failed: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Something went wrong with OpenAI API")
		return
	}

	httputil.OkJSON(w, map[string]string{
		"role":    "assistant",
		"content": content,
	})
}

// handleReply serves the receptionist endpoints: {"message": ...} in,
// {"reply": ...} out.
func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil || req.Message == "" {
		httputil.Error(w, http.StatusBadRequest, "Message is required")
		return
	}

	content, err := s.completer.Complete(r.Context(), receptionistSystemPrompt, req.Message)
	if err != nil {
		logging.Errorf("completion failed: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if content == "" {
		content = "I didn't understand that."
	}

	httputil.OkJSON(w, map[string]string{"reply": content})
}

// corsMiddleware allows requests from any origin; the proxy is the public
// surface the mobile app and the web build both call.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
