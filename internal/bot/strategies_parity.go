package bot

import (
	"numbergame/internal/bot/internal"
	"numbergame/internal/domain"
)

// ParityBot always takes from positions of one index parity, chosen once from the
// sums at even and odd positions. It never looks ahead.
type ParityBot struct {
	profile internal.ParityProfile
}

// NewParityBot fixes the preferred parity for the sequence.
func NewParityBot(numbers []int) *ParityBot {
	return &ParityBot{profile: internal.AnalyzeParity(numbers)}
}

func (b *ParityBot) Name() string { return "Parity" }

func (b *ParityBot) Strategy() domain.Strategy { return domain.StrategyParity }

// Target returns the preferred 0-based index parity (0 even, 1 odd).
func (b *ParityBot) Target() int {
	return b.profile.Target
}

// ChooseEnd takes the left end when its index has the preferred parity, else the right.
func (b *ParityBot) ChooseEnd(board *domain.Board) (Decision, error) {
	if err := checkWindow(board); err != nil {
		return Decision{}, err
	}
	left, right := board.WindowBounds()
	if left == right || left%2 == b.profile.Target {
		return decide(board, domain.EndLeft), nil
	}
	return decide(board, domain.EndRight), nil
}
