package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier pings the back-office chat. Small operations run their
// admin workflow from a phone; a new Pending booking should not wait for
// someone to open the admin panel.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}

func (n *TelegramNotifier) BookingCreated(_ context.Context, ev Event) error {
	return n.send(fmt.Sprintf(
		"New booking %s\n%s (%s)\n%s, %d participant(s), %s\nTotal: ₹%s",
		ev.BookingRef, ev.ItemTitle, ev.BookingType, ev.BookingDate, ev.Participants, ev.CustomerName, ev.TotalAmount,
	))
}

func (n *TelegramNotifier) BookingConfirmed(_ context.Context, ev Event) error {
	return n.send(fmt.Sprintf(
		"Booking %s confirmed for %s (%s)",
		ev.BookingRef, ev.CustomerName, ev.CustomerEmail,
	))
}
