// Package game holds the in-memory per-channel mini games. All state here
// dies with the process; only the handlers coordinating these types touch
// them, under their own locks.
package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPollClosed   = errors.New("poll is not open for voting")
	ErrNoSuchOption = errors.New("no such option")
)

// Poll is one channel's poll: ordered options and one vote per user, last
// write wins.
type Poll struct {
	Open    bool
	Options []string
	votes   map[int64]int
}

// ParseOptions splits a semicolon-delimited option list, trimming each entry.
// A poll needs at least two non-empty options.
func ParseOptions(input string) ([]string, error) {
	var options []string

	for _, opt := range strings.Split(input, ";") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		options = append(options, opt)
	}

	if len(options) < 2 {
		return nil, errors.New("a poll needs at least 2 options, separated by semicolons")
	}

	return options, nil
}

func NewPoll(options []string) *Poll {
	return &Poll{
		Open:    true,
		Options: options,
		votes:   make(map[int64]int),
	}
}

// Vote records a user's vote for a 1-based option index. A repeated vote
// replaces the previous one.
func (p *Poll) Vote(userID int64, option int) error {
	if !p.Open {
		return ErrPollClosed
	}

	if option < 1 || option > len(p.Options) {
		return fmt.Errorf("%w: %d", ErrNoSuchOption, option)
	}

	p.votes[userID] = option

	return nil
}

// Tally renders one line per option with its vote count, plus the share of
// the total when any votes exist.
func (p *Poll) Tally() []string {
	counts := make([]int, len(p.Options))
	total := 0

	for _, option := range p.votes {
		counts[option-1]++
		total++
	}

	lines := make([]string, len(p.Options))
	for i, option := range p.Options {
		line := fmt.Sprintf("%d. %s: %d vote(s)", i+1, option, counts[i])
		if total > 0 {
			line += fmt.Sprintf(" (%d%%)", counts[i]*100/total)
		}

		lines[i] = line
	}

	return lines
}
