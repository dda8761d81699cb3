package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Record is a single archived message. Records are immutable once written;
// order inside a file is append order, which equals arrival order.
// Sender fields and GroupID are optional system metadata.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	SenderID   string    `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name,omitempty"`
	GroupID    string    `json:"group_id,omitempty"`
}

// EncodeLine serializes a record as one JSONL line, trailing newline included.
func EncodeLine(rec Record) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return append(b, '\n'), nil
}

// DecodeLine parses one JSONL line. Every line is self-contained, so a
// corrupt line fails on its own without invalidating its neighbours.
func DecodeLine(line []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(bytes.TrimSpace(line), &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
