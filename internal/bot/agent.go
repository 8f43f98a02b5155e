package bot

import (
	"fmt"

	"numbergame/internal/domain"
)

// Agent is the computer participant of a match.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds the agent and its strategy for a match over numbers.
func NewAgent(strategy domain.Strategy, numbers []int) (*Agent, error) {
	brain, err := NewBrain(strategy, numbers)
	if err != nil {
		return nil, err
	}
	identity := IdentityFor(strategy)
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Strategy: brain,
	}, nil
}

// Play asks the agent for its move on the game's current window.
func (a *Agent) Play(game *domain.Game) (Decision, error) {
	if game == nil || game.Phase != domain.PhaseInProgress {
		return Decision{}, fmt.Errorf("%w: no match in progress", domain.ErrInvalidState)
	}
	return a.Strategy.ChooseEnd(game.Board)
}
