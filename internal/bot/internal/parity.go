package internal

// ParityProfile summarizes a sequence for the odd/even heuristic.
type ParityProfile struct {
	EvenIndexSum int // sum at 0-based positions 0, 2, 4, ...
	OddIndexSum  int // sum at 0-based positions 1, 3, 5, ...
	Target       int // index parity the heuristic prefers to take from
}

// AnalyzeParity prefers even indices when they carry strictly more, otherwise odd.
func AnalyzeParity(numbers []int) ParityProfile {
	var p ParityProfile
	for i, n := range numbers {
		if i%2 == 0 {
			p.EvenIndexSum += n
		} else {
			p.OddIndexSum += n
		}
	}
	if p.EvenIndexSum > p.OddIndexSum {
		p.Target = 0
	} else {
		p.Target = 1
	}
	return p
}
