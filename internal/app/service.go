package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"numbergame/internal/bot"
	"numbergame/internal/config"
	"numbergame/internal/domain"
)

// Service contains the number game use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
	cfg config.GameConfig
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, cfg config.GameConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, cfg: cfg}
}

// Config returns the rules this service starts matches with.
func (s *Service) Config() config.GameConfig {
	return s.cfg
}

// MatchRequest describes a match to start. A nil Sequence is generated from the config;
// an empty Strategy falls back to the configured default.
type MatchRequest struct {
	HumanPlayer domain.PlayerID
	Sequence    []int
	Strategy    domain.Strategy
}

// Match binds a game to the computer agent playing the other seat.
type Match struct {
	ID    string
	Game  *domain.Game
	Agent *bot.Agent
}

// Scores returns both running totals.
func (m *Match) Scores() domain.Scoreboard {
	return m.Game.Board.Scores()
}

// IsOver reports whether every number has been taken.
func (m *Match) IsOver() bool {
	return m.Game.IsOver()
}

// Winner returns the outcome. It fails with domain.ErrInvalidState before the match is over.
func (m *Match) Winner() (domain.Winner, error) {
	return m.Game.Winner()
}

// MoveResult describes one applied pick.
type MoveResult struct {
	Player domain.PlayerID
	End    domain.End
	Index  int
	// Value is the score delta credited to Player.
	Value     int
	Scores    domain.Scoreboard
	Over      bool
	Rationale *bot.Rationale
	Note      string
}

// StartMatch builds a fresh match. Player 1 always moves first.
func (s *Service) StartMatch(req MatchRequest) (*Match, []Event, error) {
	m := &Match{ID: uuid.NewString()}
	events, err := s.RestartMatch(m, req)
	if err != nil {
		return nil, nil, err
	}
	return m, events, nil
}

// RestartMatch replaces the state of an existing match, keeping its ID.
// On error the match is left untouched.
func (s *Service) RestartMatch(m *Match, req MatchRequest) ([]Event, error) {
	if !req.HumanPlayer.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, req.HumanPlayer)
	}

	seq := req.Sequence
	if seq == nil {
		var err error
		seq, err = domain.GenerateSequence(s.rng, domain.Generator(s.cfg.Generator), s.cfg.BoardLength, s.cfg.MaxValue)
		if err != nil {
			return nil, err
		}
	}

	requested := req.Strategy
	if requested == "" {
		requested = domain.Strategy(s.cfg.DefaultStrategy)
	}
	if _, ok := domain.ParseStrategy(string(requested)); !ok {
		return nil, fmt.Errorf("unknown bot strategy: %q", requested)
	}
	strategy := bot.ResolveStrategy(requested, req.HumanPlayer.Opponent())

	game, err := domain.NewGame(seq, req.HumanPlayer, strategy)
	if err != nil {
		return nil, err
	}
	agent, err := bot.NewAgent(strategy, game.Board.Numbers())
	if err != nil {
		return nil, err
	}

	m.Game = game
	m.Agent = agent

	return []Event{{
		Kind: EventMatchStarted,
		Payload: MatchStartedPayload{
			MatchID:     m.ID,
			Sequence:    game.Board.Numbers(),
			HumanPlayer: game.HumanPlayer,
			Strategy:    strategy,
			CurrentTurn: game.CurrentTurn,
			Opponent: Opponent{
				ID:     agent.ID,
				Name:   agent.Name,
				Player: game.ComputerPlayer(),
			},
			Note: NoteMatchStarted,
		},
	}}, nil
}

// ApplyHumanMove takes the given end for the human.
func (s *Service) ApplyHumanMove(m *Match, end domain.End) (MoveResult, []Event, error) {
	if err := checkMatch(m); err != nil {
		return MoveResult{}, nil, err
	}
	if !m.Game.IsHumanTurn() {
		return MoveResult{}, nil, fmt.Errorf("%w: not the human's turn", domain.ErrInvalidMove)
	}
	if end != domain.EndLeft && end != domain.EndRight {
		return MoveResult{}, nil, fmt.Errorf("%w: unknown end %d", domain.ErrInvalidMove, end)
	}

	turn, err := m.Game.Pick(m.Game.HumanPlayer, end)
	if err != nil {
		return MoveResult{}, nil, err
	}
	return s.afterPick(m, turn, nil, fmt.Sprintf(noteHumanPick, turn.Value), false)
}

// ApplyHumanPick is the index form of ApplyHumanMove. Only the two window endpoints
// are accepted.
func (s *Service) ApplyHumanPick(m *Match, index int) (MoveResult, []Event, error) {
	if err := checkMatch(m); err != nil {
		return MoveResult{}, nil, err
	}
	end, err := m.Game.Board.EndAt(index)
	if err != nil {
		return MoveResult{}, nil, err
	}
	return s.ApplyHumanMove(m, end)
}

// ComputeComputerMove lets the agent take its turn.
func (s *Service) ComputeComputerMove(m *Match) (MoveResult, []Event, error) {
	if err := checkMatch(m); err != nil {
		return MoveResult{}, nil, err
	}
	if !m.Game.IsComputerTurn() {
		return MoveResult{}, nil, fmt.Errorf("%w: not the computer's turn", domain.ErrInvalidMove)
	}

	decision, err := m.Agent.Play(m.Game)
	if err != nil {
		return MoveResult{}, nil, err
	}
	turn, err := m.Game.Pick(m.Game.ComputerPlayer(), decision.End)
	if err != nil {
		return MoveResult{}, nil, err
	}
	return s.afterPick(m, turn, decision.Rationale, decision.Note, true)
}

func (s *Service) afterPick(m *Match, turn domain.Turn, rationale *bot.Rationale, note string, byComputer bool) (MoveResult, []Event, error) {
	scores := m.Scores()
	left, right := m.Game.Board.WindowBounds()
	result := MoveResult{
		Player:    turn.Player,
		End:       turn.End,
		Index:     turn.Index,
		Value:     turn.Value,
		Scores:    scores,
		Over:      m.IsOver(),
		Rationale: rationale,
		Note:      note,
	}

	events := []Event{{
		Kind: EventNumberPicked,
		Payload: NumberPickedPayload{
			Player:      turn.Player,
			End:         turn.End,
			Index:       turn.Index,
			Value:       turn.Value,
			Scores:      scores,
			NextTurn:    m.Game.CurrentTurn,
			Rationale:   rationale,
			Note:        note,
			ByComputer:  byComputer,
			WindowLeft:  left,
			WindowRight: right,
		},
	}}

	if result.Over {
		winner, err := m.Winner()
		if err != nil {
			return MoveResult{}, nil, err
		}
		events = append(events, Event{
			Kind: EventMatchEnded,
			Payload: MatchEndedPayload{
				Winner:   winner,
				Scores:   scores,
				HumanWon: m.Game.HumanWon(),
				Note:     NoteMatchOver + winner.String(),
			},
		})
	}
	return result, events, nil
}

func checkMatch(m *Match) error {
	if m == nil || m.Game == nil || m.Agent == nil {
		return fmt.Errorf("%w: no match started", domain.ErrInvalidMove)
	}
	return nil
}
