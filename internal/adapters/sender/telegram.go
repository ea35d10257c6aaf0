package sender

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TelegramBot is the slice of the bot API the sender needs; narrowed for
// testability.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram sends outbound text, rate-limited to stay under the Bot API's
// ~30 messages/second ceiling.
type Telegram struct {
	bot     TelegramBot
	limiter *rate.Limiter
}

func NewTelegram(b TelegramBot) *Telegram {
	return &Telegram{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}
}

func (s *Telegram) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	log.Debug().Int64("chatId", chatID).Int("length", len(text)).Msg("sending message")

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})

	return err
}

// SendPrivateMessage sends to the user's private chat; in the Bot API a
// user's DM chat ID equals their user ID.
func (s *Telegram) SendPrivateMessage(ctx context.Context, userID int64, text string) error {
	return s.SendMessage(ctx, userID, text)
}
