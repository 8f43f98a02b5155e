package app

import (
	"numbergame/internal/bot"
	"numbergame/internal/domain"
)

// EventKind identifies emitted match events for Nakama dispatch.
type EventKind string

const (
	EventMatchStarted EventKind = "match_started"
	EventNumberPicked EventKind = "number_picked"
	EventMatchEnded   EventKind = "match_ended"
)

// Event is a match event; every event goes to everyone in the match.
type Event struct {
	Kind    EventKind
	Payload any
}

// Opponent is how the computer presents itself to the human.
type Opponent struct {
	ID     string
	Name   string
	Player domain.PlayerID
}

type MatchStartedPayload struct {
	MatchID     string
	Sequence    []int
	HumanPlayer domain.PlayerID
	Strategy    domain.Strategy
	CurrentTurn domain.PlayerID
	Opponent    Opponent
	Note        string
}

type NumberPickedPayload struct {
	Player      domain.PlayerID
	End         domain.End
	Index       int
	Value       int
	Scores      domain.Scoreboard
	NextTurn    domain.PlayerID
	Rationale   *bot.Rationale
	Note        string
	ByComputer  bool
	WindowLeft  int
	WindowRight int
}

type MatchEndedPayload struct {
	Winner   domain.Winner
	Scores   domain.Scoreboard
	HumanWon bool
	Note     string
}
