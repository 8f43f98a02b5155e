package bot

import (
	"fmt"

	"numbergame/internal/bot/internal"
	"numbergame/internal/domain"
)

// OptimalBot plays the minimax-optimal end using a table built once per sequence.
type OptimalBot struct {
	table internal.ScoreTable
}

// NewOptimalBot builds the score table over the full starting sequence.
func NewOptimalBot(numbers []int) *OptimalBot {
	return &OptimalBot{table: internal.BuildScoreTable(numbers)}
}

func (b *OptimalBot) Name() string { return "Optimal" }

func (b *OptimalBot) Strategy() domain.Strategy { return domain.StrategyOptimal }

// ChooseEnd takes the end that leaves the opponent the smaller guaranteed total.
// Ties go to the left end.
func (b *OptimalBot) ChooseEnd(board *domain.Board) (Decision, error) {
	if err := checkWindow(board); err != nil {
		return Decision{}, err
	}
	if board.Len() != b.table.Len() {
		return Decision{}, fmt.Errorf("%w: table built for %d numbers, board has %d", domain.ErrInvalidState, b.table.Len(), board.Len())
	}

	left, right := board.WindowBounds()
	if left == right {
		d := decide(board, domain.EndLeft)
		d.Rationale = &Rationale{Guaranteed: b.table.At(left, right), Forced: true}
		return d, nil
	}

	r := &Rationale{
		LeftTaken:  b.table.At(left+1, right),
		RightTaken: b.table.At(left, right-1),
		Guaranteed: b.table.At(left, right),
	}
	end := domain.EndRight
	if r.LeftTaken <= r.RightTaken {
		end = domain.EndLeft
	}

	d := decide(board, end)
	d.Rationale = r
	return d, nil
}

// Value returns dp[i][j] of the table, 0 outside the valid triangle.
func (b *OptimalBot) Value(i, j int) int {
	return b.table.At(i, j)
}
