package domain

import "errors"

var (
	ErrUnknownCommand  = errors.New("undefined command name")
	ErrMessageTooLong  = errors.New("outbound message exceeds size ceiling")
	ErrUnknownVariable = errors.New("no such channel variable")
	ErrNoResults       = errors.New("no search results")
)
