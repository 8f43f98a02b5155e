package domain

import "errors"

var (
	// ErrInvalidMove is returned for a pick out of turn, outside the window, or after the match ended.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidState is returned when a decision or result is requested in a state that has none.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidSequence is returned when a sequence is empty or holds a non-positive value.
	ErrInvalidSequence = errors.New("invalid sequence")
	// ErrInvalidPlayer is returned for a player id other than 1 or 2.
	ErrInvalidPlayer = errors.New("invalid player")
)
