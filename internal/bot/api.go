package bot

import (
	"fmt"

	"numbergame/internal/domain"
)

// Decision is the end the computer takes on its turn.
type Decision struct {
	End   domain.End
	Index int
	Value int
	// Rationale is set by strategies that look ahead.
	Rationale *Rationale
	// Note is the line shown in the message log.
	Note string
}

// Rationale carries the two table values an optimal decision compares.
type Rationale struct {
	// LeftTaken is dp[left+1][right], the opponent's guarantee if the left end is taken.
	LeftTaken int
	// RightTaken is dp[left][right-1], the opponent's guarantee if the right end is taken.
	RightTaken int
	// Guaranteed is dp[left][right], what the mover can secure from the current window.
	Guaranteed int
	Forced     bool
}

func (r Rationale) String() string {
	if r.Forced {
		return fmt.Sprintf("Only one number left, I secure %d.", r.Guaranteed)
	}
	return fmt.Sprintf("Taking left leaves you at most %d, taking right leaves you at most %d; I can secure %d.",
		r.LeftTaken, r.RightTaken, r.Guaranteed)
}

// Brain is the interface that all computer strategies implement.
type Brain interface {
	// ChooseEnd picks an end of the board's current window.
	// It fails with domain.ErrInvalidState when the window is empty.
	ChooseEnd(board *domain.Board) (Decision, error)
	Strategy() domain.Strategy
	Name() string
}

func decide(board *domain.Board, end domain.End) Decision {
	left, right := board.WindowBounds()
	index := left
	if end == domain.EndRight {
		index = right
	}
	value := board.Value(index)
	return Decision{
		End:   end,
		Index: index,
		Value: value,
		Note:  fmt.Sprintf("I pick %d.", value),
	}
}

func checkWindow(board *domain.Board) error {
	if board == nil {
		return fmt.Errorf("%w: no board", domain.ErrInvalidState)
	}
	if board.IsOver() {
		return fmt.Errorf("%w: window is empty", domain.ErrInvalidState)
	}
	return nil
}
