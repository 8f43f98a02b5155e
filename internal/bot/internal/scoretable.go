package internal

// ScoreTable is the memoized minimax table for one sequence.
// At(i, j) is the largest total the player to move can guarantee from numbers[i..j]
// when the opponent also plays optimally.
type ScoreTable struct {
	cells [][]int
}

// BuildScoreTable fills the table bottom-up by window length.
func BuildScoreTable(numbers []int) ScoreTable {
	n := len(numbers)
	t := ScoreTable{cells: make([][]int, n)}
	for i := range t.cells {
		t.cells[i] = make([]int, n)
		t.cells[i][i] = numbers[i]
	}

	for length := 2; length <= n; length++ {
		for i := 0; i+length-1 < n; i++ {
			j := i + length - 1
			pickLeft := numbers[i] + min(t.At(i+2, j), t.At(i+1, j-1))
			pickRight := numbers[j] + min(t.At(i+1, j-1), t.At(i, j-2))
			t.cells[i][j] = max(pickLeft, pickRight)
		}
	}
	return t
}

// At returns dp[i][j], or 0 for an empty or out-of-range window.
func (t ScoreTable) At(i, j int) int {
	if i < 0 || j >= len(t.cells) || i > j {
		return 0
	}
	return t.cells[i][j]
}

// Len returns the sequence length the table was built for.
func (t ScoreTable) Len() int {
	return len(t.cells)
}
