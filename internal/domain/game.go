package domain

import "fmt"

// Game is the authoritative state of one match between a human and the computer.
type Game struct {
	Phase       Phase
	Board       *Board
	HumanPlayer PlayerID
	CurrentTurn PlayerID
	Strategy    Strategy
	History     []Turn
}

// NewGame installs the sequence and puts the match in progress with player 1 to move.
func NewGame(sequence []int, human PlayerID, strategy Strategy) (*Game, error) {
	if !human.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, human)
	}
	board, err := NewBoard(sequence)
	if err != nil {
		return nil, err
	}
	return &Game{
		Phase:       PhaseInProgress,
		Board:       board,
		HumanPlayer: human,
		CurrentTurn: Player1,
		Strategy:    strategy,
	}, nil
}

// ComputerPlayer returns the seat the computer plays.
func (g *Game) ComputerPlayer() PlayerID {
	return g.HumanPlayer.Opponent()
}

// IsHumanTurn reports whether the human is to move in a running match.
func (g *Game) IsHumanTurn() bool {
	return g.Phase == PhaseInProgress && g.CurrentTurn == g.HumanPlayer
}

// IsComputerTurn reports whether the computer is to move in a running match.
func (g *Game) IsComputerTurn() bool {
	return g.Phase == PhaseInProgress && g.CurrentTurn == g.ComputerPlayer()
}

// Pick applies one turn for player. It fails with ErrInvalidMove when the match is not
// running or it is not player's turn. The turn passes to the opponent and the match
// finishes when the window empties.
func (g *Game) Pick(player PlayerID, end End) (Turn, error) {
	if g.Phase != PhaseInProgress {
		return Turn{}, fmt.Errorf("%w: match is %s", ErrInvalidMove, g.Phase)
	}
	if player != g.CurrentTurn {
		return Turn{}, fmt.Errorf("%w: player %d moved out of turn", ErrInvalidMove, player)
	}
	index, value, err := g.Board.Take(player, end)
	if err != nil {
		return Turn{}, err
	}

	turn := Turn{Player: player, End: end, Index: index, Value: value}
	g.History = append(g.History, turn)
	g.CurrentTurn = player.Opponent()
	if g.Board.IsOver() {
		g.Phase = PhaseFinished
	}
	return turn, nil
}

// IsOver reports whether the match has finished.
func (g *Game) IsOver() bool {
	return g.Phase == PhaseFinished
}

// Winner returns the outcome of a finished match.
func (g *Game) Winner() (Winner, error) {
	if !g.IsOver() {
		return WinnerTie, fmt.Errorf("%w: match is %s", ErrInvalidState, g.Phase)
	}
	return WinnerOf(g.Board.Scores()), nil
}

// HumanWon reports whether the human finished strictly ahead.
func (g *Game) HumanWon() bool {
	w, err := g.Winner()
	return err == nil && Winner(g.HumanPlayer) == w
}

// WinnerOf compares two totals.
func WinnerOf(s Scoreboard) Winner {
	switch {
	case s.Player1 > s.Player2:
		return WinnerPlayer1
	case s.Player2 > s.Player1:
		return WinnerPlayer2
	default:
		return WinnerTie
	}
}
