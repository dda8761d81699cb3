package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chat-keeper/internal/query"
	"chat-keeper/internal/storage"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	return New(query.NewService(dir), "127.0.0.1", 8866), dir
}

func writeChat(t *testing.T, dir, name string, contents ...string) {
	t.Helper()
	var b strings.Builder
	for i, c := range contents {
		line, err := storage.EncodeLine(storage.Record{
			Timestamp: time.Date(2024, 5, 1, 10, i, 0, 0, time.UTC),
			Role:      "user",
			Content:   c,
		})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		b.Write(line)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestHandleChats(t *testing.T) {
	srv, dir := newTestServer(t)
	writeChat(t, dir, "1_private.jsonl", "hello")

	req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rr := httptest.NewRecorder()
	srv.handleChats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var chats []query.ChatSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &chats); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(chats) != 1 || chats[0].ChatID != "1" || chats[0].Type != "private" {
		t.Fatalf("unexpected chats: %+v", chats)
	}
}

func TestHandleChatsEmptyArchive(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleChats(rr, httptest.NewRequest(http.MethodGet, "/api/chats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("empty archive must serialize as []: %s", got)
	}
}

func TestHandleChatPagination(t *testing.T) {
	srv, dir := newTestServer(t)
	writeChat(t, dir, "9_private.jsonl", "hi", "bye")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/9_private.jsonl?page=1&size=10", nil)
	rr := httptest.NewRecorder()
	srv.handleChat(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rr.Code, rr.Body.String())
	}
	var page query.Page
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if page.Total != 2 || page.Page != 1 || page.PageSize != 10 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	if page.Messages[0].Content != "bye" || page.Messages[1].Content != "hi" {
		t.Fatalf("unexpected order: %+v", page.Messages)
	}
}

func TestHandleChatNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/ghost_private.jsonl", nil)
	rr := httptest.NewRecorder()
	srv.handleChat(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("error payload missing: %s", rr.Body.String())
	}
}

func TestHandleChatBadParams(t *testing.T) {
	srv, dir := newTestServer(t)
	writeChat(t, dir, "9_private.jsonl", "hi")

	for _, q := range []string{"page=0", "page=x", "size=0", "size=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/chat/9_private.jsonl?"+q, nil)
		rr := httptest.NewRecorder()
		srv.handleChat(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", q, rr.Code)
		}
	}
}

func TestHandleStats(t *testing.T) {
	srv, dir := newTestServer(t)
	writeChat(t, dir, "1_private.jsonl", "a", "b")
	writeChat(t, dir, "-2_group.jsonl", "c")

	rr := httptest.NewRecorder()
	srv.handleStats(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var st query.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if st.TotalChats != 2 || st.TotalMessages != 3 || st.PrivateChats != 1 || st.GroupChats != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestHandleIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleIndex(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %s", ct)
	}
	if !strings.Contains(rr.Body.String(), "/api/chats") {
		t.Fatalf("index page should reference the API")
	}

	rr = httptest.NewRecorder()
	srv.handleIndex(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status: %d", rr.Code)
	}
}

func TestHandleMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleChats(rr, httptest.NewRequest(http.MethodPost, "/api/chats", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", rr.Code)
	}
}
