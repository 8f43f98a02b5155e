package bot

import (
	"fmt"

	"numbergame/internal/domain"
)

// NewBrain creates the computer strategy for a match over numbers.
// StrategyAuto must be resolved with ResolveStrategy first.
func NewBrain(strategy domain.Strategy, numbers []int) (Brain, error) {
	if err := domain.ValidateSequence(numbers); err != nil {
		return nil, err
	}
	switch strategy {
	case domain.StrategyOptimal:
		return NewOptimalBot(numbers), nil
	case domain.StrategyParity:
		return NewParityBot(numbers), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
	}
}

// ResolveStrategy turns StrategyAuto into a concrete strategy by seat: a computer that
// moves first plays the parity rule, one that moves second plays the optimal table.
func ResolveStrategy(requested domain.Strategy, computer domain.PlayerID) domain.Strategy {
	if requested != domain.StrategyAuto && requested != "" {
		return requested
	}
	if computer == domain.Player1 {
		return domain.StrategyParity
	}
	return domain.StrategyOptimal
}
