package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends run outcome messages to a Telegram chat
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a notifier for the given bot token and chat
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	log.Printf("Notifier authorized on account %s\n", bot.Self.UserName)

	return &Notifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// NewNotifierFromEnv creates a notifier from CAPITALS_TG_TOKEN and
// CAPITALS_TG_CHAT. Returns (nil, nil) when the token is not set, so
// notification stays optional.
func NewNotifierFromEnv() (*Notifier, error) {
	token := os.Getenv("CAPITALS_TG_TOKEN")
	if token == "" {
		return nil, nil
	}

	chatStr := os.Getenv("CAPITALS_TG_CHAT")
	chatID, err := strconv.ParseInt(chatStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CAPITALS_TG_CHAT value %q: %w", chatStr, err)
	}

	return NewNotifier(token, chatID)
}

// NotifySuccess reports a completed run
func (n *Notifier) NotifySuccess(rowCount int, outputPath string) {
	text := fmt.Sprintf("✅ Scrape completed: %d capitals written to %s", rowCount, outputPath)
	n.send(text)
}

// NotifyFailure reports a failed run
func (n *Notifier) NotifyFailure(err error) {
	text := fmt.Sprintf("❌ Scrape failed: %v", err)
	n.send(text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("Error sending notification: %v\n", err)
	}
}
