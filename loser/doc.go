// Package loser merges several sorted sequences with a tournament (loser)
// tree, following the layout popularised by Bryan Boreham's go-loser.
//
// Each internal node remembers the leaf that lost the game played there and
// node 0 remembers the overall winner, so advancing the winning sequence only
// replays the games on its path to the root: O(log k) comparisons per element
// for k sequences.
//
// Exhausted sequences lose every game, which removes the need for a sentinel
// maximum value. Ties are won by the sequence that was passed first, so the
// merge is stable with respect to input order.
//
// Basic usage:
//
//	seqs := []iter.Seq[int]{slices.Values([]int{1, 3, 5}), slices.Values([]int{2, 4})}
//	for v := range loser.New(seqs, func(a, b int) bool { return a < b }).All() {
//	    fmt.Println(v) // 1, 2, 3, 4, 5
//	}
package loser
