package game

import "strings"

// narrowSpace pads rendered letters so the masked phrase stays readable in a
// proportional font.
const narrowSpace = "\u202f"

// Hangman is one channel's game. The phrase is folded to upper case at
// creation; spaces count as pre-revealed. The game is terminal once won or
// lost and rejects further guesses.
type Hangman struct {
	phrase       []rune
	letterCounts map[rune]int
	guessed      map[rune]bool
	wrong        int
	maxWrong     int
	unguessed    int
	won          bool
	lost         bool
}

func NewHangman(phrase string, maxWrong int) *Hangman {
	h := &Hangman{
		phrase:       []rune(strings.ToUpper(phrase)),
		letterCounts: make(map[rune]int),
		guessed:      make(map[rune]bool),
		maxWrong:     maxWrong,
	}

	for _, r := range h.phrase {
		if r == ' ' {
			continue
		}

		h.letterCounts[r]++
		h.unguessed++
	}

	return h
}

// Guess marks a letter as guessed and reports whether it appears in the
// phrase. A wrong guess moves the game toward loss even when repeated;
// guesses after the game finishes are ignored and count as wrong.
func (h *Hangman) Guess(letter rune) bool {
	if h.Finished() {
		return false
	}

	r := []rune(strings.ToUpper(string(letter)))[0]

	prev := h.guessed[r]
	h.guessed[r] = true

	if h.letterCounts[r] > 0 {
		if !prev {
			h.unguessed -= h.letterCounts[r]
		}

		if h.unguessed == 0 {
			h.won = true
		}

		return true
	}

	h.wrong++
	if h.wrong == h.maxWrong {
		h.lost = true
	}

	return false
}

// Hint renders the phrase with unguessed letters masked.
func (h *Hangman) Hint() string {
	var b strings.Builder

	for _, r := range h.phrase {
		switch {
		case r == ' ':
			b.WriteString("  ")
		case h.guessed[r]:
			b.WriteRune(r)
			b.WriteString(narrowSpace)
		default:
			b.WriteString("_" + narrowSpace)
		}
	}

	return b.String()
}

// Phrase returns the full phrase, for the game-over reveal.
func (h *Hangman) Phrase() string {
	return string(h.phrase)
}

func (h *Hangman) Finished() bool {
	return h.won || h.lost
}

func (h *Hangman) Won() bool {
	return h.won
}

func (h *Hangman) Lost() bool {
	return h.lost
}

// Remaining is the number of wrong guesses left before the game is lost.
func (h *Hangman) Remaining() int {
	return h.maxWrong - h.wrong
}
