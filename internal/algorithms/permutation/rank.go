package permutation

// Rank writes into order the positions of values sorted by ascending value
// and returns it. Equal values keep their original relative order, which is
// the Bandt–Pompe tie-break: a window of identical values ranks to the
// identity pattern.
//
// order is reused when it has enough capacity.
func Rank(values []float64, order []int) []int {
	if cap(order) < len(values) {
		order = make([]int, len(values))
	}
	order = order[:len(values)]
	for i := range order {
		order[i] = i
	}

	// Insertion sort on strict less-than is stable; windows hold at most
	// MaxArea values.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && values[order[j]] < values[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
