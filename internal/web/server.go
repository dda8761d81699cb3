package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chat-keeper/internal/query"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
)

// Server exposes the archive's read side over HTTP: the chat list, paged
// message views and aggregate stats, plus the embedded index page.
type Server struct {
	query     *query.Service
	server    *http.Server
	host      string
	port      int
	startTime time.Time
}

func New(q *query.Service, host string, port int) *Server {
	return &Server{
		query:     q,
		host:      host,
		port:      port,
		startTime: time.Now(),
	}
}

// Start blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chats", s.handleChats)
	mux.HandleFunc("/api/chat/", s.handleChat)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/", s.handleIndex)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Chat archive web UI listening on http://%s:%d", s.host, s.port)
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	chats, err := s.query.ListChats()
	if err != nil {
		log.Printf("❌ Failed to list chats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list chats")
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/chat/")
	if name == "" || name == r.URL.Path {
		writeError(w, http.StatusBadRequest, "file name is required in path /api/chat/{filename}")
		return
	}

	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "invalid page parameter")
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil || size < 1 {
		writeError(w, http.StatusBadRequest, "invalid size parameter")
		return
	}

	result, err := s.query.ChatPage(name, page, size)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			writeError(w, http.StatusNotFound, "chat not found")
			return
		}
		log.Printf("❌ Failed to read chat %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to read chat")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.query.Stats()
	if err != nil {
		log.Printf("❌ Failed to compute stats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
