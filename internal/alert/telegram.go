package alert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/savelyev/oddsfeed/internal/normalize"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Min interval between any two Telegram messages to the same chat to avoid 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// maxDigestItems caps the per-item section of a run digest.
const maxDigestItems = 5

// queuedMessage represents a message queued for sending
type queuedMessage struct {
	text     string
	queuedAt time.Time
}

// TelegramNotifier sends Telegram digests after each feed run
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time

	// Async queue for sending messages
	queue     chan queuedMessage
	queueDone chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	// Test bot connection
	_, err = bot.GetMe()
	if err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	notifier := &TelegramNotifier{
		bot:       bot,
		chatID:    chatID,
		queue:     make(chan queuedMessage, 100), // Buffer up to 100 messages
		queueDone: make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}

	// Start background worker for sending messages
	notifier.wg.Add(1)
	go notifier.messageSender()

	slog.Info("Telegram notifier initialized", "chat_id", chatID)

	return notifier
}

// SendRunDigest queues a digest for a finished feed run (non-blocking)
func (n *TelegramNotifier) SendRunDigest(ctx context.Context, snapshot *models.FeedSnapshot) error {
	if n == nil || n.bot == nil {
		return fmt.Errorf("telegram notifier not initialized")
	}

	msg := queuedMessage{
		text:     formatRunDigest(snapshot),
		queuedAt: time.Now(),
	}

	select {
	case <-n.ctx.Done():
		return fmt.Errorf("notifier stopped")
	case <-ctx.Done():
		return ctx.Err()
	case n.queue <- msg:
		return nil
	default:
		// Queue is full, log warning but don't block
		slog.Warn("Telegram message queue is full, dropping digest", "feed", snapshot.Title)
		return fmt.Errorf("message queue is full")
	}
}

// messageSender runs in background and sends queued messages with proper intervals
func (n *TelegramNotifier) messageSender() {
	defer n.wg.Done()

	for {
		select {
		case <-n.ctx.Done():
			// Drain remaining messages before exit
			for {
				select {
				case msg := <-n.queue:
					n.sendQueuedMessage(msg)
				default:
					close(n.queueDone)
					return
				}
			}
		case msg := <-n.queue:
			n.sendQueuedMessage(msg)
		}
	}
}

// sendQueuedMessage sends a queued message with proper rate limiting
func (n *TelegramNotifier) sendQueuedMessage(msg queuedMessage) {
	tgMsg := tgbotapi.NewMessage(n.chatID, msg.text)
	tgMsg.ParseMode = tgbotapi.ModeMarkdown

	// Wait for proper interval
	n.mu.Lock()
	elapsed := time.Since(n.lastSend)
	if elapsed < telegramSendInterval {
		waitTime := telegramSendInterval - elapsed
		n.mu.Unlock()
		select {
		case <-n.ctx.Done():
			slog.Warn("Telegram send: cancelled during wait")
			return
		case <-time.After(waitTime):
		}
		n.mu.Lock()
	}

	n.lastSend = time.Now()
	_, err := n.bot.Send(tgMsg)
	n.mu.Unlock()

	if err != nil {
		slog.Error("Telegram send: failed",
			"error", err,
			"queue_delay", time.Since(msg.queuedAt),
			"message_preview", truncateString(msg.text, 50))
	} else {
		slog.Info("Telegram send: success",
			"queue_delay", time.Since(msg.queuedAt),
			"queue_length", len(n.queue))
	}
}

// Stop stops the notifier and waits for all queued messages to be sent
func (n *TelegramNotifier) Stop() {
	if n == nil {
		return
	}
	n.cancel()
	<-n.queueDone
	n.wg.Wait()
}

// formatRunDigest formats a feed snapshot as a Telegram message (English).
func formatRunDigest(snapshot *models.FeedSnapshot) string {
	withOdds := 0
	withErrors := 0
	for i := range snapshot.Items {
		if snapshot.Items[i].Odds.HasLines() {
			withOdds++
		}
		if snapshot.Items[i].Error != "" {
			withErrors++
		}
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📊 *Feed Update: %s*\n\n", escapeMarkdown(snapshot.Title)))
	builder.WriteString(fmt.Sprintf("Articles: %d | With odds: %d | Errors: %d\n", len(snapshot.Items), withOdds, withErrors))

	shown := 0
	for i := range snapshot.Items {
		item := &snapshot.Items[i]
		if !item.Odds.HasLines() {
			continue
		}
		if shown == maxDigestItems {
			builder.WriteString(fmt.Sprintf("_and %d more with odds_\n", withOdds-maxDigestItems))
			break
		}
		builder.WriteString(fmt.Sprintf("\n🏆 *%s*\n", escapeMarkdown(item.Title)))
		builder.WriteString(normalize.DescribeItem(*item))
		builder.WriteString("\n")
		shown++
	}

	builder.WriteString(fmt.Sprintf("\n🕐 Updated: %s\n", formatTime(snapshot.LastUpdated)))
	return builder.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04 UTC")
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
