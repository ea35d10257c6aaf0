package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// BotAdminChecker resolves chat-admin status through the Bot API. A failed
// lookup denies rather than grants.
type BotAdminChecker struct {
	bot *bot.Bot
}

func NewBotAdminChecker(b *bot.Bot) *BotAdminChecker {
	return &BotAdminChecker{bot: b}
}

func (c *BotAdminChecker) IsAdmin(ctx context.Context, chatID, userID int64) bool {
	member, err := c.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		log.Warn().Err(err).Int64("chatId", chatID).Int64("userId", userID).Msg("chat member lookup failed")
		return false
	}

	return member.Type == models.ChatMemberTypeOwner || member.Type == models.ChatMemberTypeAdministrator
}
