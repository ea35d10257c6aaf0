package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/game"
)

// PollHandler owns all per-channel polls. One poll per channel; open/close,
// delete are admin-gated here since the command itself is open to everyone
// for voting.
type PollHandler struct {
	ownerID int64

	mu    sync.Mutex
	polls map[int64]*game.Poll
}

func NewPollHandler(ownerID int64) *PollHandler {
	return &PollHandler{ownerID: ownerID, polls: make(map[int64]*game.Poll)}
}

func (h *PollHandler) Run(_ context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	action := inv.Args[0].String()

	var input domain.Value
	if len(inv.Args) > 1 {
		input = inv.Args[1]
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	chatID := inv.Message.ChatID
	poll := h.polls[chatID]

	switch action {
	case "create":
		return h.create(chatID, poll, input.String())
	case "open", "close":
		if line, ok := h.requireAdmin(inv.Message, "poll "+action); !ok {
			return domain.TextResult(line), nil
		}

		if poll == nil {
			return domain.TextResult("There is no poll in this channel."), nil
		}

		poll.Open = action == "open"

		state := "closed"
		if poll.Open {
			state = "opened"
		}

		return domain.TextResult(fmt.Sprintf("Poll is now %s.", state)), nil
	case "delete":
		if line, ok := h.requireAdmin(inv.Message, "poll delete"); !ok {
			return domain.TextResult(line), nil
		}

		if poll == nil {
			return domain.TextResult("There is no poll in this channel."), nil
		}

		delete(h.polls, chatID)

		return domain.TextResult("Poll deleted."), nil
	case "vote", "votei":
		return h.vote(poll, inv.Message.UserID, input)
	case "show", "tally":
		if poll == nil {
			return domain.TextResult("There is no poll in this channel."), nil
		}

		return domain.LinesResult(poll.Tally()...), nil
	default:
		return domain.TextResult(fmt.Sprintf("Unknown poll action %q", action)), nil
	}
}

func (h *PollHandler) create(chatID int64, existing *game.Poll, input string) (domain.Result, error) {
	if existing != nil {
		return domain.TextResult("A poll already exists in this channel. Delete it first."), nil
	}

	options, err := game.ParseOptions(input)
	if err != nil {
		return domain.TextResult(capitalizeError(err)), nil
	}

	h.polls[chatID] = game.NewPoll(options)

	lines := []string{"Poll created. Vote with the option number:"}
	for i, option := range options {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, option))
	}

	return domain.LinesResult(lines...), nil
}

func (h *PollHandler) vote(poll *game.Poll, userID int64, input domain.Value) (domain.Result, error) {
	if poll == nil {
		return domain.TextResult("There is no poll in this channel."), nil
	}

	option, ok := input.Int()
	if !ok {
		return domain.TextResult("Vote with the number of an option."), nil
	}

	err := poll.Vote(userID, option)
	switch {
	case errors.Is(err, game.ErrPollClosed):
		return domain.TextResult("The poll is closed."), nil
	case errors.Is(err, game.ErrNoSuchOption):
		return domain.TextResult(fmt.Sprintf("There is no option %d.", option)), nil
	case err != nil:
		return domain.Result{}, err
	}

	return domain.TextResult("Vote recorded."), nil
}

// requireAdmin gates the destructive poll actions the same way the executor
// gates admin commands: channel admins pass, and so does the bot owner.
func (h *PollHandler) requireAdmin(msg *domain.Message, action string) (string, bool) {
	if msg.IsAdmin || msg.UserID == h.ownerID {
		return "", true
	}

	return fmt.Sprintf("The action %s requires administrator privileges.", action), false
}

func capitalizeError(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
