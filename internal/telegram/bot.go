package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-keeper/internal/llm"
	"chat-keeper/internal/recorder"
	"chat-keeper/internal/storage"
)

// Bot bridges the Telegram Bot API to the archive. Every update is
// normalized into the recorder's host-independent shape here; Telegram types
// never leak past this package.
type Bot struct {
	api          *tgbotapi.BotAPI
	sink         recorder.Sink
	llmClient    llm.Client // nil disables replies, the bot records only
	systemPrompt string
	adminID      int64
}

func New(botToken string, sink recorder.Sink, llmClient llm.Client, systemPrompt string, adminID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram api: %w", err)
	}
	log.Printf("🤖 Authorized on account @%s", api.Self.UserName)
	return &Bot{
		api:          api,
		sink:         sink,
		llmClient:    llmClient,
		systemPrompt: systemPrompt,
		adminID:      adminID,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	norm := normalize(msg)
	b.sink.Record(norm, recorder.RoleUser)

	// Replies are generated for private chats only; in groups the bot is a
	// silent archivist.
	if b.llmClient == nil || norm.Kind != storage.KindPrivate || norm.Content == "" {
		return
	}

	var contextMsgs []llm.Message
	if b.systemPrompt != "" {
		contextMsgs = append(contextMsgs, llm.Message{Role: "system", Content: b.systemPrompt})
	}
	contextMsgs = append(contextMsgs, llm.Message{Role: "user", Content: norm.Content})

	resp, err := b.llmClient.Generate(ctx, contextMsgs)
	if err != nil {
		log.Printf("❌ Failed to generate reply: %v", err)
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, resp.Content)
	if _, err := b.api.Send(out); err != nil {
		log.Printf("❌ Failed to send reply: %v", err)
		return
	}

	// The reply goes through the same routing decision as the inbound
	// message, with the same conversation identity.
	b.sink.Record(recorder.Message{
		ChatID:  norm.ChatID,
		Kind:    norm.Kind,
		Content: resp.Content,
	}, recorder.RoleAssistant)
}

// SendAdminReport delivers a text report to the configured admin user, if any.
func (b *Bot) SendAdminReport(text string) {
	if b.adminID == 0 || text == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(b.adminID, text)); err != nil {
		log.Printf("❌ Failed to send admin report: %v", err)
	}
}

// normalize maps a Telegram message to the archive's normalized shape. Group
// and supergroup chats key the conversation by the chat id; private chats by
// the sender id, mirroring how the archive names its files.
func normalize(msg *tgbotapi.Message) recorder.Message {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		text = strings.TrimSpace(msg.Caption)
	}
	out := recorder.Message{Content: text}

	if msg.Chat != nil && (msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()) {
		out.Kind = storage.KindGroup
		out.ChatID = strconv.FormatInt(msg.Chat.ID, 10)
	} else {
		out.Kind = storage.KindPrivate
		if msg.From != nil {
			out.ChatID = strconv.FormatInt(msg.From.ID, 10)
		}
	}

	if msg.From != nil {
		out.SenderID = strconv.FormatInt(msg.From.ID, 10)
		out.SenderName = senderName(msg.From)
	}
	return out
}

func senderName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
