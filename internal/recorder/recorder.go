package recorder

import (
	"log"
	"strings"
	"time"

	"chat-keeper/internal/routing"
	"chat-keeper/internal/storage"
)

// Role of the message author from the archive's point of view.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is the normalized shape every messaging host must produce before
// handing a message to the recorder. The recorder never sees host-specific
// update types.
type Message struct {
	ChatID     string
	Kind       storage.Kind
	Content    string
	SenderID   string
	SenderName string
}

// Sink receives normalized messages from a messaging host.
type Sink interface {
	Record(msg Message, role Role)
}

// Recorder applies the routing policy and persists accepted messages to the
// archive. Recording is best effort: a failed append is logged and the
// message dropped, the host keeps running.
type Recorder struct {
	archive        *storage.Archive
	policy         *routing.Policy
	saveSystemInfo bool
	now            func() time.Time
}

func New(archive *storage.Archive, policy *routing.Policy, saveSystemInfo bool) *Recorder {
	return &Recorder{
		archive:        archive,
		policy:         policy,
		saveSystemInfo: saveSystemInfo,
		now:            time.Now,
	}
}

// Record persists one message. A message without an identity or without text
// is skipped silently: that is a normal outcome, not an error.
func (r *Recorder) Record(msg Message, role Role) {
	content := strings.TrimSpace(msg.Content)
	if msg.ChatID == "" || content == "" {
		return
	}
	if !r.policy.Allow(msg.Kind, msg.ChatID) {
		return
	}

	rec := storage.Record{
		Timestamp: r.now(),
		Role:      string(role),
		Content:   content,
	}
	if r.saveSystemInfo {
		rec.SenderID = msg.SenderID
		rec.SenderName = msg.SenderName
		if msg.Kind == storage.KindGroup {
			rec.GroupID = msg.ChatID
		}
	}

	conv := storage.Conversation{ChatID: msg.ChatID, Kind: msg.Kind}
	if err := r.archive.Append(conv, rec); err != nil {
		log.Printf("❌ Failed to record %s message for %s: %v", role, conv.FileName(), err)
	}
}
