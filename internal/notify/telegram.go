// Package notify forwards accepted complaints to the maintenance desk's
// Telegram chat. Notification is best-effort and strictly after persistence;
// a delivery failure never affects the submission outcome.
package notify

import (
	"fmt"
	"log"
	"strconv"

	"hosteldesk/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier announces an accepted complaint.
type Notifier interface {
	ComplaintAccepted(complaint *models.Complaint)
}

// TelegramNotifier sends a formatted message for each accepted complaint.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier connects the bot. Returns an error if the token is
// rejected or the chat id is malformed; callers treat an unconfigured
// notifier (empty token) as disabled, not as an error.
func NewTelegramNotifier(token, chatID string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid notify chat id %q: %w", chatID, err)
	}

	log.Printf("Telegram notifier authorized on account %s", bot.Self.UserName)
	return &TelegramNotifier{BotAPI: bot, ChatID: id}, nil
}

// ComplaintAccepted pushes one message to the maintenance chat.
func (n *TelegramNotifier) ComplaintAccepted(complaint *models.Complaint) {
	msg := tgbotapi.NewMessage(n.ChatID, FormatComplaint(complaint))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram notification for complaint %d: %v", complaint.ID, err)
	}
}

// FormatComplaint renders the Telegram message body for a complaint.
func FormatComplaint(c *models.Complaint) string {
	return fmt.Sprintf("*New complaint #%d*\nName: %s\nRoll no: %s\nRoom: %s\n\n%s",
		c.ID, c.Name, c.RollNo, c.RoomNo, c.Body)
}
