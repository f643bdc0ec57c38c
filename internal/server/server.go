package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/askasha/asha-agent/internal/agent"
	"github.com/askasha/asha-agent/internal/interview"
	"github.com/askasha/asha-agent/internal/server/ratelimit"
	"github.com/askasha/asha-agent/internal/store"
)

// Config holds server configuration
type Config struct {
	Port int
}

// Deps are the collaborators the server routes requests to. Conversations,
// Profiles, DB and JWT may be nil: persistence and auth then stay disabled.
type Deps struct {
	Orchestrator  *agent.Orchestrator
	Conductor     *interview.Conductor
	Conversations *store.ConversationStore
	Profiles      *store.ResumeProfileStore
	DB            *store.DB
	JWT           *JWTService
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	orchestrator  *agent.Orchestrator
	conductor     *interview.Conductor
	conversations *store.ConversationStore
	profiles      *store.ResumeProfileStore
	db            *store.DB
	jwtService    *JWTService
	validate      *validator.Validate
	rateLimiter   *ratelimit.Limiter
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		orchestrator:  deps.Orchestrator,
		conductor:     deps.Conductor,
		conversations: deps.Conversations,
		profiles:      deps.Profiles,
		db:            deps.DB,
		jwtService:    deps.JWT,
		validate:      validator.New(),
		rateLimiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.withAuth(s.handleChat))
	mux.HandleFunc("POST /interview/start-session", s.withAuth(s.handleStartSession))
	mux.HandleFunc("POST /interview/send-message", s.withAuth(s.handleSendMessage))
	mux.HandleFunc("POST /interview/end-session", s.withAuth(s.handleEndSession))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.rateLimiter.Middleware(s.withLogging(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withLogging logs one line per request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, HTTPStatus(err), map[string]string{"error": err.Error()})
}
