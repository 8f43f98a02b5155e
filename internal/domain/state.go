package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseNotStarted is the state before a sequence has been installed.
	PhaseNotStarted Phase = "not_started"
	// PhaseInProgress is the state while numbers remain in the window.
	PhaseInProgress Phase = "in_progress"
	// PhaseFinished is the terminal state once the window is empty.
	PhaseFinished Phase = "finished"
)

// PlayerID identifies one of the two seats. Player 1 always moves first.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Valid reports whether p is player 1 or 2.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	return 3 - p
}

// End selects one endpoint of the window.
type End int

const (
	EndLeft End = iota
	EndRight
)

func (e End) String() string {
	switch e {
	case EndLeft:
		return "left"
	case EndRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseEnd maps the wire names "left" and "right" to an End.
func ParseEnd(s string) (End, bool) {
	switch s {
	case "left", "LEFT":
		return EndLeft, true
	case "right", "RIGHT":
		return EndRight, true
	}
	return 0, false
}

// Strategy selects the algorithm the computer plays with for a whole match.
type Strategy string

const (
	// StrategyAuto is only a request value; it resolves by seat when the match starts.
	StrategyAuto Strategy = "auto"
	// StrategyOptimal plays the minimax-optimal move from the score table.
	StrategyOptimal Strategy = "optimal"
	// StrategyParity always favors one fixed index parity.
	StrategyParity Strategy = "parity"
)

// ParseStrategy maps a config or wire name to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyAuto, StrategyOptimal, StrategyParity:
		return Strategy(s), true
	case "":
		return StrategyAuto, true
	}
	return "", false
}

// Winner is the outcome of a finished match.
type Winner int

const (
	WinnerTie     Winner = 0
	WinnerPlayer1 Winner = 1
	WinnerPlayer2 Winner = 2
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer1:
		return "Player 1 Wins!"
	case WinnerPlayer2:
		return "Player 2 Wins!"
	default:
		return "It's a Tie!"
	}
}

// Scoreboard holds both players' running totals.
type Scoreboard struct {
	Player1 int
	Player2 int
}

// Of returns the score of the given player.
func (s Scoreboard) Of(p PlayerID) int {
	if p == Player2 {
		return s.Player2
	}
	return s.Player1
}

// Turn records one pick for the match history.
type Turn struct {
	Player PlayerID
	End    End
	Index  int
	Value  int
}
