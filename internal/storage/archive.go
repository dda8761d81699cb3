package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Archive owns the storage directory and the append/rotate lifecycle of
// every conversation file in it. Size check, rotation and write happen inside
// a single per-conversation critical section, so concurrent writers to the
// same conversation cannot interleave records or rotate twice.
type Archive struct {
	dir     string
	maxSize int64

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// NewArchive ensures dir exists and returns an archive whose active files are
// rotated once they grow past maxSize bytes.
func NewArchive(dir string, maxSize int64) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &Archive{
		dir:     dir,
		maxSize: maxSize,
		locks:   make(map[string]*sync.Mutex),
		now:     time.Now,
	}, nil
}

// Dir returns the storage directory the archive writes to.
func (a *Archive) Dir() string { return a.dir }

func (a *Archive) lockFor(name string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[name]
	if !ok {
		l = &sync.Mutex{}
		a.locks[name] = l
	}
	return l
}

// Append durably writes one record to the conversation's active file,
// sealing the file first if it has outgrown the size limit. The active file
// is created lazily on the first accepted record.
func (a *Archive) Append(conv Conversation, rec Record) error {
	name := conv.FileName()
	l := a.lockFor(name)
	l.Lock()
	defer l.Unlock()

	path := filepath.Join(a.dir, name)
	if err := a.rotateIfNeeded(path); err != nil {
		return err
	}

	line, err := EncodeLine(rec)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close after append: %w", err)
	}
	return nil
}

// rotateIfNeeded renames an oversized active file to a timestamped archive
// name. Rotation never rewrites bytes: every previously appended record stays
// intact in the sealed file.
func (a *Archive) rotateIfNeeded(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat active file: %w", err)
	}
	if st.Size() <= a.maxSize {
		return nil
	}

	stem := strings.TrimSuffix(path, FileExt)
	stamp := a.now().Format("20060102_150405")
	rotated := fmt.Sprintf("%s_%s%s", stem, stamp, FileExt)
	// Two rotations within the same second would collide on the timestamp;
	// a counter suffix keeps archive names unique.
	for n := 1; ; n++ {
		if _, err := os.Stat(rotated); os.IsNotExist(err) {
			break
		}
		rotated = fmt.Sprintf("%s_%s_%d%s", stem, stamp, n, FileExt)
	}
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate %s: %w", filepath.Base(path), err)
	}
	log.Printf("📁 Rotated conversation file: %s", filepath.Base(rotated))
	return nil
}
