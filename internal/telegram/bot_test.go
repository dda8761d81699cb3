package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-keeper/internal/storage"
)

func TestNormalizePrivateMessage(t *testing.T) {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, FirstName: "Alice", LastName: "Smith"},
		Chat: &tgbotapi.Chat{ID: 42, Type: "private"},
		Text: "  hello  ",
	}
	got := normalize(msg)
	if got.Kind != storage.KindPrivate || got.ChatID != "42" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.Content != "hello" {
		t.Fatalf("content not trimmed: %q", got.Content)
	}
	if got.SenderID != "42" || got.SenderName != "Alice Smith" {
		t.Fatalf("unexpected sender: %+v", got)
	}
}

func TestNormalizeGroupMessage(t *testing.T) {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7, UserName: "bob"},
		Chat: &tgbotapi.Chat{ID: -100123, Type: "supergroup"},
		Text: "hi all",
	}
	got := normalize(msg)
	if got.Kind != storage.KindGroup || got.ChatID != "-100123" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.SenderID != "7" || got.SenderName != "bob" {
		t.Fatalf("unexpected sender: %+v", got)
	}
}

func TestNormalizeCaptionFallback(t *testing.T) {
	msg := &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 5},
		Chat:    &tgbotapi.Chat{ID: 5, Type: "private"},
		Caption: "photo caption",
	}
	if got := normalize(msg); got.Content != "photo caption" {
		t.Fatalf("caption not used: %+v", got)
	}
}

func TestNormalizeEmptyMessage(t *testing.T) {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 5},
		Chat: &tgbotapi.Chat{ID: 5, Type: "private"},
	}
	if got := normalize(msg); got.Content != "" {
		t.Fatalf("expected empty content: %+v", got)
	}
}
