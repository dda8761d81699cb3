package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chat-keeper/internal/analytics"
	"chat-keeper/internal/config"
	"chat-keeper/internal/llm"
	"chat-keeper/internal/query"
	"chat-keeper/internal/recorder"
	"chat-keeper/internal/routing"
	"chat-keeper/internal/scheduler"
	"chat-keeper/internal/storage"
	"chat-keeper/internal/telegram"
	"chat-keeper/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	archive, err := storage.NewArchive(cfg.DataDir, cfg.MaxFileSize())
	if err != nil {
		log.Fatalf("failed to init archive: %v", err)
	}
	log.Printf("📦 Chat archive ready, data directory: %s", cfg.DataDir)

	policy := routing.New(cfg.EnableGroup, cfg.EnablePrivate, cfg.GroupWhitelist, cfg.GroupBlacklist)
	rec := recorder.New(archive, policy, cfg.SaveSystemInfo)
	querySvc := query.NewService(cfg.DataDir)

	var llmClient llm.Client
	if cfg.OpenAIAPIKey != "" || cfg.YandexOAuthToken != "" {
		c, err := llm.NewFactory(cfg).CreateClient(cfg.LLMProvider, cfg.OpenAIModel)
		if err != nil {
			log.Printf("failed to create llm client, replies disabled: %v", err)
		} else {
			llmClient = c
		}
	}

	systemPrompt := readSystemPrompt(cfg.SystemPromptPath)

	bot, err := telegram.New(cfg.TelegramBotToken, rec, llmClient, systemPrompt, cfg.AdminUserID)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	webSrv := web.New(querySvc, cfg.WebHost, cfg.WebPort)
	go func() {
		if err := webSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ Web server stopped: %v", err)
		}
	}()

	sched := scheduler.New(cfg.ReportCron)
	sched.SetReportFunction(func(ctx context.Context) error {
		stats, err := querySvc.Stats()
		if err != nil {
			return err
		}
		chats, err := querySvc.ListChats()
		if err != nil {
			return err
		}
		report := analytics.BuildActivityReport(stats, chats, time.Now())
		log.Printf("📊 %s", report.Summary())
		bot.SendAdminReport(report.Summary())
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)

	sched.Stop()
	if err := webSrv.Stop(); err != nil {
		log.Printf("failed to stop web server: %v", err)
	}
	log.Println("📦 Chat archive stopped")
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
