package recorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chat-keeper/internal/routing"
	"chat-keeper/internal/storage"
)

func newTestRecorder(t *testing.T, saveSystemInfo bool, policy *routing.Policy) (*Recorder, string) {
	t.Helper()
	dir := t.TempDir()
	archive, err := storage.NewArchive(dir, 1024*1024)
	if err != nil {
		t.Fatalf("init archive: %v", err)
	}
	return New(archive, policy, saveSystemInfo), dir
}

func loadRecords(t *testing.T, path string) []storage.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var recs []storage.Record
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		rec, err := storage.DecodeLine([]byte(line))
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func allowAll() *routing.Policy { return routing.New(true, true, nil, nil) }

func TestRecordWritesUserMessage(t *testing.T) {
	rec, dir := newTestRecorder(t, true, allowAll())
	rec.Record(Message{ChatID: "42", Kind: storage.KindPrivate, Content: "hello", SenderID: "42", SenderName: "Alice"}, RoleUser)

	recs := loadRecords(t, filepath.Join(dir, "42_private.jsonl"))
	if len(recs) != 1 {
		t.Fatalf("want 1 record, got %d", len(recs))
	}
	got := recs[0]
	if got.Role != "user" || got.Content != "hello" || got.SenderID != "42" || got.SenderName != "Alice" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.GroupID != "" {
		t.Fatalf("private record must not carry group_id: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRecordGroupCarriesGroupID(t *testing.T) {
	rec, dir := newTestRecorder(t, true, allowAll())
	rec.Record(Message{ChatID: "-100", Kind: storage.KindGroup, Content: "hi all", SenderID: "7"}, RoleUser)

	recs := loadRecords(t, filepath.Join(dir, "-100_group.jsonl"))
	if len(recs) != 1 || recs[0].GroupID != "-100" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestRecordWithoutSystemInfo(t *testing.T) {
	rec, dir := newTestRecorder(t, false, allowAll())
	rec.Record(Message{ChatID: "-100", Kind: storage.KindGroup, Content: "hi", SenderID: "7", SenderName: "Bob"}, RoleUser)

	recs := loadRecords(t, filepath.Join(dir, "-100_group.jsonl"))
	got := recs[0]
	if got.SenderID != "" || got.SenderName != "" || got.GroupID != "" {
		t.Fatalf("system metadata must be omitted: %+v", got)
	}
	if got.Content != "hi" {
		t.Fatalf("content lost: %+v", got)
	}
}

func TestRecordSkipsEmptyAndDenied(t *testing.T) {
	deny := routing.New(false, false, nil, nil)

	rec, dir := newTestRecorder(t, true, allowAll())
	rec.Record(Message{ChatID: "", Kind: storage.KindPrivate, Content: "no identity"}, RoleUser)
	rec.Record(Message{ChatID: "1", Kind: storage.KindPrivate, Content: "   "}, RoleUser)

	denied, deniedDir := newTestRecorder(t, true, deny)
	denied.Record(Message{ChatID: "1", Kind: storage.KindPrivate, Content: "denied"}, RoleUser)

	for _, d := range []string{dir, deniedDir} {
		entries, err := os.ReadDir(d)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("no file should be created in %s, found %d", d, len(entries))
		}
	}
}

func TestRecordAssistantRole(t *testing.T) {
	rec, dir := newTestRecorder(t, true, allowAll())
	rec.Record(Message{ChatID: "5", Kind: storage.KindPrivate, Content: "how can I help?"}, RoleAssistant)

	recs := loadRecords(t, filepath.Join(dir, "5_private.jsonl"))
	if recs[0].Role != "assistant" {
		t.Fatalf("unexpected role: %+v", recs[0])
	}
}
