package domain

import (
	"context"
	"math"
	"strconv"
	"time"
)

// Message is the transport-agnostic view of one inbound chat message.
type Message struct {
	ID        int
	ChatID    int64
	UserID    int64
	Username  string
	Text      string
	Date      time.Time
	IsAdmin   bool
	IsPrivate bool
}

// Value is one positional command argument, either free text or a number,
// decided once at tokenization time.
type Value struct {
	raw     string
	num     float64
	numeric bool
}

// ParseValue coerces a token to a number if it parses cleanly, otherwise
// keeps it as text.
func ParseValue(token string) Value {
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return Value{raw: token, num: n, numeric: true}
	}

	return Value{raw: token}
}

// TextValue returns a Value that is always treated as text, regardless of
// content. Used when excess arguments are folded back into one string.
func TextValue(s string) Value {
	return Value{raw: s}
}

func (v Value) String() string {
	return v.raw
}

func (v Value) Numeric() bool {
	return v.numeric
}

// Float returns the numeric form of the value, if it has one.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// Int returns the value as an integer. The second return is false for text
// values and for numbers with a fractional part.
func (v Value) Int() (int, bool) {
	if !v.numeric || v.num != math.Trunc(v.num) {
		return 0, false
	}

	return int(v.num), true
}

// Invocation is one parsed command call, consumed immediately by the executor.
type Invocation struct {
	Command string
	Args    []Value
	Message *Message
}

// Permission is the gate level a command requires.
type Permission int

const (
	PermissionNone Permission = iota
	PermissionAdmin
	PermissionOwner
)

// Sink writes one line of output to the invocation's destination chat.
type Sink func(ctx context.Context, text string) error

type resultKind int

const (
	resultNone resultKind = iota
	resultText
	resultLines
)

// Result is the closed set of shapes a command handler can return: a single
// line, multiple lines, or nothing (the handler wrote to its Sink directly).
type Result struct {
	kind  resultKind
	text  string
	lines []string
}

func NoResult() Result {
	return Result{}
}

func TextResult(text string) Result {
	return Result{kind: resultText, text: text}
}

func LinesResult(lines ...string) Result {
	return Result{kind: resultLines, lines: lines}
}

// Lines normalizes the result into output lines.
func (r Result) Lines() []string {
	switch r.kind {
	case resultText:
		return []string{r.text}
	case resultLines:
		return r.lines
	default:
		return nil
	}
}
