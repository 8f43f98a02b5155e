package domain

import "fmt"

// Board holds the sequence of one match and the window of numbers not yet picked.
// The sequence is copied on Reset and never changes afterwards; the only mutations are
// TakeLeft and TakeRight.
type Board struct {
	numbers []int
	left    int
	right   int
	scores  Scoreboard
}

// NewBoard returns a board installed with the given sequence.
func NewBoard(sequence []int) (*Board, error) {
	b := &Board{}
	if err := b.Reset(sequence); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset installs a new sequence, opens the full window and clears both scores.
func (b *Board) Reset(sequence []int) error {
	if err := ValidateSequence(sequence); err != nil {
		return err
	}
	b.numbers = append([]int(nil), sequence...)
	b.left = 0
	b.right = len(sequence) - 1
	b.scores = Scoreboard{}
	return nil
}

// ValidateSequence checks that a sequence is non-empty and strictly positive.
func ValidateSequence(sequence []int) error {
	if len(sequence) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSequence)
	}
	for i, n := range sequence {
		if n <= 0 {
			return fmt.Errorf("%w: value %d at index %d is not positive", ErrInvalidSequence, n, i)
		}
	}
	return nil
}

// TakeLeft credits the leftmost remaining number to player and advances the left pointer.
func (b *Board) TakeLeft(player PlayerID) (index, value int, err error) {
	if err := b.checkTake(player); err != nil {
		return 0, 0, err
	}
	index, value = b.left, b.numbers[b.left]
	b.credit(player, value)
	b.left++
	return index, value, nil
}

// TakeRight credits the rightmost remaining number to player and retreats the right pointer.
func (b *Board) TakeRight(player PlayerID) (index, value int, err error) {
	if err := b.checkTake(player); err != nil {
		return 0, 0, err
	}
	index, value = b.right, b.numbers[b.right]
	b.credit(player, value)
	b.right--
	return index, value, nil
}

// Take dispatches to TakeLeft or TakeRight.
func (b *Board) Take(player PlayerID, end End) (index, value int, err error) {
	switch end {
	case EndLeft:
		return b.TakeLeft(player)
	case EndRight:
		return b.TakeRight(player)
	default:
		return 0, 0, fmt.Errorf("%w: unknown end %d", ErrInvalidMove, end)
	}
}

// EndAt maps a sequence index to the window endpoint it sits on.
// Any index other than the two current endpoints is rejected.
func (b *Board) EndAt(index int) (End, error) {
	if b.IsOver() {
		return 0, fmt.Errorf("%w: window is empty", ErrInvalidMove)
	}
	switch index {
	case b.left:
		return EndLeft, nil
	case b.right:
		return EndRight, nil
	}
	return 0, fmt.Errorf("%w: index %d is not a window endpoint (%d, %d)", ErrInvalidMove, index, b.left, b.right)
}

func (b *Board) checkTake(player PlayerID) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrInvalidPlayer, player)
	}
	if b.IsOver() {
		return fmt.Errorf("%w: window is empty", ErrInvalidMove)
	}
	return nil
}

func (b *Board) credit(player PlayerID, value int) {
	if player == Player1 {
		b.scores.Player1 += value
	} else {
		b.scores.Player2 += value
	}
}

// IsOver reports whether every number has been picked.
func (b *Board) IsOver() bool {
	return b.left > b.right
}

// WindowBounds returns the inclusive bounds of the remaining window.
func (b *Board) WindowBounds() (left, right int) {
	return b.left, b.right
}

// Remaining returns how many numbers are still in the window.
func (b *Board) Remaining() int {
	return b.right - b.left + 1
}

// Len returns the length of the full sequence.
func (b *Board) Len() int {
	return len(b.numbers)
}

// Value returns the number at index i of the full sequence.
func (b *Board) Value(i int) int {
	return b.numbers[i]
}

// Numbers returns a copy of the full sequence.
func (b *Board) Numbers() []int {
	return append([]int(nil), b.numbers...)
}

// Total returns the sum of the full sequence.
func (b *Board) Total() int {
	sum := 0
	for _, n := range b.numbers {
		sum += n
	}
	return sum
}

// Scores returns both players' totals.
func (b *Board) Scores() Scoreboard {
	return b.scores
}

// Score returns one player's total.
func (b *Board) Score(player PlayerID) int {
	return b.scores.Of(player)
}
