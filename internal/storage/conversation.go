package storage

import (
	"fmt"
	"strings"
)

// Kind distinguishes private and group conversations.
type Kind string

const (
	KindPrivate Kind = "private"
	KindGroup   Kind = "group"
)

// FileExt is the extension of every conversation file in the archive.
const FileExt = ".jsonl"

// Conversation identifies one logical chat. Each conversation maps to exactly
// one active file; rotation produces immutable timestamped archives next to it.
type Conversation struct {
	ChatID string
	Kind   Kind
}

// FileName returns the active file name for the conversation.
func (c Conversation) FileName() string {
	return fmt.Sprintf("%s_%s%s", c.ChatID, c.Kind, FileExt)
}

// FileInfo is the identity recovered from a conversation file name.
type FileInfo struct {
	Conversation
	Archived bool
}

// ParseFileName recovers the conversation identity from an active or rotated
// file name. Accepted layouts are <chat_id>_<kind>.jsonl for active files and
// <chat_id>_<kind>_<timestamp>[_<n>].jsonl for archives; anything else is
// rejected.
func ParseFileName(name string) (FileInfo, error) {
	stem, ok := strings.CutSuffix(name, FileExt)
	if !ok {
		return FileInfo{}, fmt.Errorf("not a conversation file: %q", name)
	}
	for _, kind := range []Kind{KindPrivate, KindGroup} {
		marker := "_" + string(kind)
		i := strings.LastIndex(stem, marker)
		if i <= 0 {
			continue
		}
		rest := stem[i+len(marker):]
		if rest == "" {
			return FileInfo{Conversation: Conversation{ChatID: stem[:i], Kind: kind}}, nil
		}
		if strings.HasPrefix(rest, "_") && len(rest) > 1 {
			return FileInfo{Conversation: Conversation{ChatID: stem[:i], Kind: kind}, Archived: true}, nil
		}
	}
	return FileInfo{}, fmt.Errorf("not a conversation file: %q", name)
}
