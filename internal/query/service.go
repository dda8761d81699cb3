package query

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"chat-keeper/internal/storage"
)

// ErrNotFound reports a query for a conversation file that does not exist.
var ErrNotFound = errors.New("chat not found")

// ChatSummary describes one conversation file for the list view.
type ChatSummary struct {
	FileName     string  `json:"filename"`
	ChatID       string  `json:"chat_id"`
	Type         string  `json:"type"`
	MessageCount int     `json:"message_count"`
	SizeKB       float64 `json:"size_kb"`
	LastMessage  string  `json:"last_message"`
	LastTime     string  `json:"last_time"`
}

// Page is one reverse-chronological window of a conversation file.
type Page struct {
	Messages []storage.Record `json:"messages"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Stats aggregates the whole archive directory.
type Stats struct {
	TotalChats    int     `json:"total_chats"`
	TotalMessages int     `json:"total_messages"`
	TotalSizeMB   float64 `json:"total_size_mb"`
	PrivateChats  int     `json:"private_chats"`
	GroupChats    int     `json:"group_chats"`
}

// Service is a stateless read-side projection over the archive directory.
// Every call observes the latest durable state; nothing is cached and nothing
// is mutated, so concurrent calls are safe by construction.
type Service struct {
	dir string
}

func NewService(dir string) *Service { return &Service{dir: dir} }

// previewLimit bounds the content preview in the chat list, in runes.
const previewLimit = 50

// ListChats enumerates every conversation file in the archive, rotated
// archives included, sorted by last activity descending. Files that vanish
// mid-scan (a concurrent rotation) are skipped, not fatal.
func (s *Service) ListChats() ([]ChatSummary, error) {
	names, err := s.listFiles()
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(names))
	for _, name := range names {
		info, err := storage.ParseFileName(name)
		if err != nil {
			continue
		}
		path := filepath.Join(s.dir, name)
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		count, last := scanTail(path)

		sum := ChatSummary{
			FileName:     name,
			ChatID:       info.ChatID,
			Type:         string(info.Kind),
			MessageCount: count,
			SizeKB:       math.Round(float64(st.Size())/1024*10) / 10,
		}
		if last != nil {
			sum.LastMessage = truncate(last.Content, previewLimit)
			sum.LastTime = last.Timestamp.Format(time.RFC3339)
		}
		summaries = append(summaries, sum)
	}

	// RFC 3339 strings order chronologically; the empty string (no readable
	// record yet) sorts as oldest.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastTime > summaries[j].LastTime
	})
	return summaries, nil
}

// ChatPage returns the page-th window of records counted from the newest,
// newest first. Page numbers start at 1; a page past the oldest record yields
// an empty window with the correct total. Corrupt lines are skipped but still
// count toward the total.
func (s *Service) ChatPage(name string, page, size int) (Page, error) {
	if page < 1 || size < 1 {
		return Page{}, fmt.Errorf("invalid paging: page=%d size=%d", page, size)
	}
	if name != filepath.Base(name) || !strings.HasSuffix(name, storage.FileExt) {
		return Page{}, ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("open chat file: %w", err)
	}
	defer f.Close()

	var lines [][]byte
	sc := newScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := sc.Err(); err != nil {
		return Page{}, fmt.Errorf("scan chat file: %w", err)
	}

	total := len(lines)
	start := total - page*size
	if start < 0 {
		start = 0
	}
	end := total - (page-1)*size
	if end < 0 {
		end = 0
	}

	messages := make([]storage.Record, 0, end-start)
	for i := end - 1; i >= start; i-- {
		rec, err := storage.DecodeLine(lines[i])
		if err != nil {
			continue
		}
		messages = append(messages, rec)
	}
	return Page{Messages: messages, Total: total, Page: page, PageSize: size}, nil
}

// Stats scans every conversation file and aggregates counts and sizes,
// classifying chats by the kind encoded in the file name.
func (s *Service) Stats() (Stats, error) {
	names, err := s.listFiles()
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	var totalBytes int64
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		st.TotalChats++
		totalBytes += fi.Size()
		switch {
		case strings.Contains(name, "_private"):
			st.PrivateChats++
		case strings.Contains(name, "_group"):
			st.GroupChats++
		}
		count, _ := scanTail(filepath.Join(s.dir, name))
		st.TotalMessages += count
	}
	st.TotalSizeMB = math.Round(float64(totalBytes)/(1024*1024)*100) / 100
	return st, nil
}

// listFiles returns the conversation file names in the archive directory.
// A missing directory is an empty archive, not an error.
func (s *Service) listFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), storage.FileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// scanTail counts non-empty lines and decodes the last one cheaply. A file
// that cannot be read or whose tail is corrupt yields what was readable.
func scanTail(path string) (int, *storage.Record) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil
	}
	defer f.Close()

	var count int
	var lastLine []byte
	sc := newScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		count++
		lastLine = append(lastLine[:0], line...)
	}
	if len(lastLine) == 0 {
		return count, nil
	}
	rec, err := storage.DecodeLine(lastLine)
	if err != nil {
		return count, nil
	}
	return count, &rec
}

func newScanner(f *os.File) *bufio.Scanner {
	sc := bufio.NewScanner(f)
	buf := make([]byte, 0, 1024*1024)
	sc.Buffer(buf, 10*1024*1024)
	return sc
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
