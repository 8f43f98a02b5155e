package bot

import (
	"errors"
	"math/rand"
	"testing"

	"numbergame/internal/domain"
)

// playOut runs the board to completion with first moving as player 1.
func playOut(t *testing.T, board *domain.Board, first, second Brain) domain.Scoreboard {
	t.Helper()
	movers := map[domain.PlayerID]Brain{domain.Player1: first, domain.Player2: second}
	player := domain.Player1
	for !board.IsOver() {
		d, err := movers[player].ChooseEnd(board)
		if err != nil {
			t.Fatalf("ChooseEnd error: %v", err)
		}
		if _, _, err := board.Take(player, d.End); err != nil {
			t.Fatalf("Take error: %v", err)
		}
		player = player.Opponent()
	}
	return board.Scores()
}

type randomBrain struct{ rng *rand.Rand }

func (r randomBrain) ChooseEnd(board *domain.Board) (Decision, error) {
	if err := checkWindow(board); err != nil {
		return Decision{}, err
	}
	return decide(board, domain.End(r.rng.Intn(2))), nil
}
func (randomBrain) Strategy() domain.Strategy { return "random" }
func (randomBrain) Name() string              { return "Random" }

func randomSequence(rng *rand.Rand, n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = rng.Intn(20) + 1
	}
	return seq
}

func TestOptimalBot_WorkedExample(t *testing.T) {
	numbers := []int{1, 2, 3, 4}
	b := NewOptimalBot(numbers)
	if got := b.Value(0, 3); got != 6 {
		t.Fatalf("dp[0][3] = %d, want 6", got)
	}

	board, _ := domain.NewBoard(numbers)
	d, err := b.ChooseEnd(board)
	if err != nil {
		t.Fatalf("ChooseEnd error: %v", err)
	}
	// dp[1][3] = 6 vs dp[0][2] = 4: taking the right end leaves the opponent less.
	if d.End != domain.EndRight || d.Value != 4 || d.Index != 3 {
		t.Fatalf("decision = %+v, want right end (index 3, value 4)", d)
	}
	if d.Rationale == nil || d.Rationale.LeftTaken != 6 || d.Rationale.RightTaken != 4 || d.Rationale.Guaranteed != 6 {
		t.Fatalf("rationale = %+v, want {6 4 6}", d.Rationale)
	}
	if d.Note != "I pick 4." {
		t.Fatalf("note = %q", d.Note)
	}

	scores := playOut(t, board, b, NewOptimalBot(numbers))
	if scores.Player1 != 6 || scores.Player2 != 4 {
		t.Fatalf("scores = %+v, want {6 4}", scores)
	}
}

func TestOptimalBot_SingleNumberIsForcedLeft(t *testing.T) {
	board, _ := domain.NewBoard([]int{8})
	d, err := NewOptimalBot([]int{8}).ChooseEnd(board)
	if err != nil {
		t.Fatalf("ChooseEnd error: %v", err)
	}
	if d.End != domain.EndLeft || d.Index != 0 || d.Value != 8 {
		t.Fatalf("decision = %+v, want forced left on index 0", d)
	}
	if d.Rationale == nil || !d.Rationale.Forced || d.Rationale.Guaranteed != 8 {
		t.Fatalf("rationale = %+v, want forced with 8", d.Rationale)
	}
}

func TestOptimalBot_TieFavorsLeft(t *testing.T) {
	numbers := []int{5, 5}
	board, _ := domain.NewBoard(numbers)
	d, err := NewOptimalBot(numbers).ChooseEnd(board)
	if err != nil {
		t.Fatalf("ChooseEnd error: %v", err)
	}
	if d.End != domain.EndLeft {
		t.Fatalf("tie went %v, want left", d.End)
	}
}

func TestOptimalBot_EmptyWindow(t *testing.T) {
	numbers := []int{3}
	board, _ := domain.NewBoard(numbers)
	board.TakeLeft(domain.Player1)

	if _, err := NewOptimalBot(numbers).ChooseEnd(board); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("ChooseEnd on empty window error = %v, want ErrInvalidState", err)
	}
}

func TestOptimalBot_RejectsForeignBoard(t *testing.T) {
	board, _ := domain.NewBoard([]int{1, 2, 3})
	if _, err := NewOptimalBot([]int{1, 2}).ChooseEnd(board); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("ChooseEnd error = %v, want ErrInvalidState", err)
	}
}

func TestOptimalBot_SelfPlayIsZeroSumAndOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 300; trial++ {
		numbers := randomSequence(rng, rng.Intn(16)+1)
		engine := NewOptimalBot(numbers)
		board, _ := domain.NewBoard(numbers)

		scores := playOut(t, board, engine, NewOptimalBot(numbers))
		if scores.Player1+scores.Player2 != board.Total() {
			t.Fatalf("%v: scores %+v do not sum to %d", numbers, scores, board.Total())
		}
		if want := engine.Value(0, len(numbers)-1); scores.Player1 != want {
			t.Fatalf("%v: first mover scored %d, want dp[0][N-1] = %d", numbers, scores.Player1, want)
		}
	}
}

func TestOptimalBot_NeverWorseThanTableAgainstAnyOpponent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 300; trial++ {
		numbers := randomSequence(rng, rng.Intn(14)+1)
		engine := NewOptimalBot(numbers)
		guarantee := engine.Value(0, len(numbers)-1)

		board, _ := domain.NewBoard(numbers)
		scores := playOut(t, board, engine, randomBrain{rng: rng})
		if scores.Player1 < guarantee {
			t.Fatalf("%v: engine moving first scored %d, below its guarantee %d", numbers, scores.Player1, guarantee)
		}

		board, _ = domain.NewBoard(numbers)
		scores = playOut(t, board, randomBrain{rng: rng}, engine)
		if scores.Player2 < board.Total()-guarantee {
			t.Fatalf("%v: engine moving second scored %d, below %d", numbers, scores.Player2, board.Total()-guarantee)
		}
	}
}

func TestOptimalBot_DominanceAgainstRecurrence(t *testing.T) {
	// With positive values the mover can always secure at least the larger end.
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 100; trial++ {
		numbers := randomSequence(rng, rng.Intn(12)+1)
		b := NewOptimalBot(numbers)
		for i := range numbers {
			for j := i; j < len(numbers); j++ {
				if got := b.Value(i, j); got < max(numbers[i], numbers[j]) {
					t.Fatalf("%v: dp[%d][%d] = %d < max(%d, %d)", numbers, i, j, got, numbers[i], numbers[j])
				}
			}
		}
	}
}
