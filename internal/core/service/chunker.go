package service

import (
	"context"
	"unicode/utf8"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// SafeSender splits outbound text into transport-sized chunks, each wrapped
// with an optional surround string (e.g. a code fence). Text above the
// absolute ceiling is refused outright with domain.ErrMessageTooLong so
// runaway command output cannot flood the chat.
type SafeSender struct {
	sender  port.TextSender
	limit   int
	ceiling int
}

func NewSafeSender(sender port.TextSender, limit, ceiling int) *SafeSender {
	return &SafeSender{sender: sender, limit: limit, ceiling: ceiling}
}

// Ceiling is the absolute length above which Send refuses outright.
func (s *SafeSender) Ceiling() int {
	return s.ceiling
}

func (s *SafeSender) Send(ctx context.Context, chatID int64, text, surround string) error {
	if len(text) > s.ceiling {
		log.Warn().Int64("chatId", chatID).Int("length", len(text)).Msg("refusing oversized message")
		return domain.ErrMessageTooLong
	}

	limit := s.limit - 2*len(surround)

	for len(text) > limit {
		// Back off to a rune boundary so a chunk never carries a torn
		// multi-byte character.
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}

		if cut == 0 {
			cut = limit
		}

		if err := s.sender.SendMessage(ctx, chatID, surround+text[:cut]+surround); err != nil {
			return err
		}

		text = text[cut:]
	}

	return s.sender.SendMessage(ctx, chatID, surround+text+surround)
}
