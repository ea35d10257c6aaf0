// Package handler adapts inbound Telegram updates to the command pipeline.
package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gabbot/internal/core/command"
	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"
	"gabbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Master commands bypass prefix matching entirely; they must stay reachable
// when a channel's prefix has been changed to something nobody remembers.
const (
	masterShowPrefix  = "showprefix"
	masterResetPrefix = "resetprefix"
)

// outputWrapper fences command output so chat clients render it as a block.
const outputWrapper = "```"

// AdminChecker reports whether a user administers a chat.
type AdminChecker interface {
	IsAdmin(ctx context.Context, chatID, userID int64) bool
}

// PrivateConsumer gets first refusal on private messages, for flows (hangman
// setup) that hold a pending exchange with a user.
type PrivateConsumer interface {
	HandlePrivate(ctx context.Context, msg *domain.Message) bool
}

// Message is the dispatcher: it owns the per-update pipeline from raw text
// to chunked reply.
type Message struct {
	tokenizer *command.Tokenizer
	executor  *command.Executor
	vars      *service.VarCache
	safe      *service.SafeSender
	sender    port.TextSender
	store     port.VariableStore
	defaults  service.DefaultsProvider
	private   PrivateConsumer
	admins    AdminChecker
	ownerID   int64
	timeout   time.Duration
}

type Config struct {
	Tokenizer *command.Tokenizer
	Executor  *command.Executor
	Vars      *service.VarCache
	Safe      *service.SafeSender
	Sender    port.TextSender
	Store     port.VariableStore
	Defaults  service.DefaultsProvider
	Private   PrivateConsumer
	Admins    AdminChecker
	OwnerID   int64
	Timeout   time.Duration
}

func NewMessage(cfg Config) *Message {
	return &Message{
		tokenizer: cfg.Tokenizer,
		executor:  cfg.Executor,
		vars:      cfg.Vars,
		safe:      cfg.Safe,
		sender:    cfg.Sender,
		store:     cfg.Store,
		defaults:  cfg.Defaults,
		private:   cfg.Private,
		admins:    cfg.Admins,
		ownerID:   cfg.OwnerID,
		timeout:   cfg.Timeout,
	}
}

// Handle is the bot's default update handler. The pipeline runs on its own
// goroutine so one slow command does not stall the update loop.
func (h *Message) Handle(_ context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	raw := update.Message
	if raw.From.IsBot {
		return
	}

	msg := &domain.Message{
		ID:        raw.ID,
		ChatID:    raw.Chat.ID,
		UserID:    raw.From.ID,
		Username:  raw.From.Username,
		Text:      raw.Text,
		Date:      time.Unix(int64(raw.Date), 0),
		IsPrivate: raw.Chat.Type == "private",
	}

	go h.dispatch(msg)
}

func (h *Message) dispatch(msg *domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if msg.IsPrivate && h.private.HandlePrivate(ctx, msg) {
		return
	}

	prefix, err := h.vars.Prefix(ctx, msg.ChatID)
	if err != nil {
		log.Error().Err(err).Int64("chatId", msg.ChatID).Msg("failed to load channel prefix")
		return
	}

	switch msg.Text {
	case masterShowPrefix:
		h.reply(ctx, msg.ChatID, fmt.Sprintf("Command prefix currently in use: %s", prefix))
		return
	case masterResetPrefix:
		h.resetPrefix(ctx, msg)
		return
	}

	if !strings.HasPrefix(msg.Text, prefix) {
		return
	}

	msg.IsAdmin = msg.IsPrivate || h.admins.IsAdmin(ctx, msg.ChatID, msg.UserID)

	inv, err := h.tokenizer.Tokenize(ctx, msg.ChatID, msg.Text, prefix)
	if errors.Is(err, domain.ErrUnknownCommand) {
		h.reply(ctx, msg.ChatID, capitalize(err.Error()))
		return
	}

	if err != nil {
		log.Error().Err(err).Int64("chatId", msg.ChatID).Msg("tokenization failed")
		h.reply(ctx, msg.ChatID, "Something went wrong.")
		return
	}

	inv.Message = msg

	sink := func(ctx context.Context, text string) error {
		return h.sender.SendMessage(ctx, msg.ChatID, text)
	}

	lines, err := h.executor.Execute(ctx, inv, prefix, sink)
	if err != nil {
		log.Error().Err(err).Str("command", inv.Command).Msg("command failed")
		h.reply(ctx, msg.ChatID, fmt.Sprintf("Something went wrong running %s.", inv.Command))
		return
	}

	if len(lines) == 0 {
		return
	}

	err = h.safe.Send(ctx, msg.ChatID, strings.Join(lines, "\n"), outputWrapper)
	if errors.Is(err, domain.ErrMessageTooLong) {
		h.reply(ctx, msg.ChatID,
			fmt.Sprintf("Outbound message length greater than %d character limit.", h.safe.Ceiling()))
		return
	}

	if err != nil {
		log.Error().Err(err).Int64("chatId", msg.ChatID).Msg("failed to send command output")
	}
}

// resetPrefix restores the channel's prefix to the configured default.
func (h *Message) resetPrefix(ctx context.Context, msg *domain.Message) {
	admin := msg.IsPrivate || h.admins.IsAdmin(ctx, msg.ChatID, msg.UserID)
	if !admin && msg.UserID != h.ownerID {
		return
	}

	fallback := h.defaults.Default(port.VarPrefix)

	if err := h.store.Set(ctx, msg.ChatID, port.VarPrefix, fallback); err != nil {
		log.Error().Err(err).Int64("chatId", msg.ChatID).Msg("failed to reset prefix")
		h.reply(ctx, msg.ChatID, "Something went wrong resetting the prefix.")
		return
	}

	if err := h.vars.Refresh(ctx, msg.ChatID); err != nil {
		log.Warn().Err(err).Int64("chatId", msg.ChatID).Msg("refresh after prefix reset failed")
	}

	h.reply(ctx, msg.ChatID, fmt.Sprintf("Command prefix reset to %s", fallback))
}

func (h *Message) reply(ctx context.Context, chatID int64, text string) {
	if err := h.sender.SendMessage(ctx, chatID, text); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send reply")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
