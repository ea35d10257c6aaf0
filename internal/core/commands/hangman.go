package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/game"
	"gabbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const setupInstructions = "Let's set up a hangman game. Reply here with the phrase and the wrong-guess budget, " +
	"separated by a semicolon, e.g.: the quick brown fox;8"

// HangmanHandler owns all per-channel games plus the pending setup sessions.
// Starting a game happens over a private exchange so the phrase stays hidden
// from the channel; a setup that gets no qualifying reply within the timeout
// is cancelled and the player notified.
type HangmanHandler struct {
	sender  port.TextSender
	timeout time.Duration

	mu      sync.Mutex
	games   map[int64]*game.Hangman
	pending map[int64]*setupSession
}

type setupSession struct {
	id        uuid.UUID
	channelID int64
	timer     *time.Timer
}

func NewHangmanHandler(sender port.TextSender, timeout time.Duration) *HangmanHandler {
	return &HangmanHandler{
		sender:  sender,
		timeout: timeout,
		games:   make(map[int64]*game.Hangman),
		pending: make(map[int64]*setupSession),
	}
}

func (h *HangmanHandler) Run(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	action := inv.Args[0].String()

	switch action {
	case "start":
		return h.start(ctx, inv.Message)
	case "guess":
		if len(inv.Args) < 2 {
			return domain.TextResult("Guess a single letter, e.g.: hangman guess e"), nil
		}

		return h.guess(inv.Message.ChatID, inv.Args[1].String())
	case "hint":
		return h.hint(inv.Message.ChatID)
	default:
		return domain.TextResult(fmt.Sprintf("Unknown hangman action %q", action)), nil
	}
}

func (h *HangmanHandler) start(ctx context.Context, msg *domain.Message) (domain.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if g, ok := h.games[msg.ChatID]; ok && !g.Finished() {
		return domain.TextResult("A game is already in progress in this channel."), nil
	}

	if _, ok := h.pending[msg.UserID]; ok {
		return domain.TextResult("You already have a game setup in progress; check your private messages."), nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return domain.Result{}, fmt.Errorf("creating setup session: %w", err)
	}

	if err := h.sender.SendPrivateMessage(ctx, msg.UserID, setupInstructions); err != nil {
		return domain.TextResult("I could not message you privately. Open a private chat with me first."), nil
	}

	userID := msg.UserID
	session := &setupSession{id: id, channelID: msg.ChatID}
	session.timer = time.AfterFunc(h.timeout, func() {
		h.expire(userID, id)
	})
	h.pending[userID] = session

	log.Debug().Str("session", id.String()).Int64("chatId", msg.ChatID).Msg("hangman setup started")

	return domain.TextResult(fmt.Sprintf("%s is setting up a hangman game, check your private messages.", msg.Username)), nil
}

// expire cancels a setup that received no reply in time. The session ID
// guards against cancelling a newer setup by the same user.
func (h *HangmanHandler) expire(userID int64, id uuid.UUID) {
	h.mu.Lock()
	session, ok := h.pending[userID]
	if !ok || session.id != id {
		h.mu.Unlock()
		return
	}

	delete(h.pending, userID)
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.sender.SendPrivateMessage(ctx, userID, "Hangman setup timed out."); err != nil {
		log.Warn().Err(err).Int64("userId", userID).Msg("failed to send setup timeout notice")
	}
}

// HandlePrivate consumes a private message if the sender has a pending setup
// session. It reports whether the message was consumed.
func (h *HangmanHandler) HandlePrivate(ctx context.Context, msg *domain.Message) bool {
	h.mu.Lock()
	session, ok := h.pending[msg.UserID]
	if !ok {
		h.mu.Unlock()
		return false
	}

	phrase, budget, err := parseSetup(msg.Text)
	if err != nil {
		h.mu.Unlock()

		if sendErr := h.sender.SendPrivateMessage(ctx, msg.UserID, capitalizeError(err)); sendErr != nil {
			log.Warn().Err(sendErr).Msg("failed to send setup error")
		}

		return true
	}

	session.timer.Stop()
	delete(h.pending, msg.UserID)
	h.games[session.channelID] = game.NewHangman(phrase, budget)
	h.mu.Unlock()

	if err := h.sender.SendPrivateMessage(ctx, msg.UserID, "Game on!"); err != nil {
		log.Warn().Err(err).Msg("failed to confirm hangman setup")
	}

	announcement := fmt.Sprintf("A game of hangman has started! %d wrong guesses allowed. Guess with: hangman guess <letter>",
		budget)
	if err := h.sender.SendMessage(ctx, session.channelID, announcement); err != nil {
		log.Error().Err(err).Int64("chatId", session.channelID).Msg("failed to announce hangman game")
	}

	return true
}

func parseSetup(text string) (string, int, error) {
	phrase, rawBudget, found := strings.Cut(text, ";")
	phrase = strings.TrimSpace(phrase)

	if !found || phrase == "" {
		return "", 0, fmt.Errorf("send the phrase and budget as: phrase;budget")
	}

	budget, err := strconv.Atoi(strings.TrimSpace(rawBudget))
	if err != nil || budget < 1 {
		return "", 0, fmt.Errorf("the wrong-guess budget must be a positive whole number")
	}

	return phrase, budget, nil
}

func (h *HangmanHandler) guess(chatID int64, letter string) (domain.Result, error) {
	if len([]rune(letter)) != 1 {
		return domain.TextResult("Guess a single letter."), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.games[chatID]
	if !ok {
		return domain.TextResult("There is no hangman game in this channel."), nil
	}

	if g.Finished() {
		return domain.TextResult("The game is over. Start a new one with: hangman start"), nil
	}

	correct := g.Guess([]rune(letter)[0])

	switch {
	case g.Won():
		return domain.LinesResult(g.Hint(), fmt.Sprintf("You won! The phrase was: %s", g.Phrase())), nil
	case g.Lost():
		return domain.LinesResult(fmt.Sprintf("You lost! The phrase was: %s", g.Phrase())), nil
	case correct:
		return domain.LinesResult("Correct!", g.Hint()), nil
	default:
		return domain.TextResult(fmt.Sprintf("Wrong! %d wrong guesses remaining.", g.Remaining())), nil
	}
}

func (h *HangmanHandler) hint(chatID int64) (domain.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.games[chatID]
	if !ok {
		return domain.TextResult("There is no hangman game in this channel."), nil
	}

	return domain.TextResult(g.Hint()), nil
}
