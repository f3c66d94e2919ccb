package loser

import (
	"iter"
)

// Tree merges sorted sequences in ascending order of less.
type Tree[E any] struct {
	sequences []iter.Seq[E]
	less      func(a, b E) bool
	nodes     []node[E]
}

// Leaves live at positions k..2k-1, internal nodes at 1..k-1.
type node[E any] struct {
	index int // loser for internal nodes, winner for node 0
	value E   // leaves only
	done  bool
	next  func() (E, bool)
}

// New returns a Tree over sequences, each of which must already be sorted.
func New[E any](sequences []iter.Seq[E], less func(a, b E) bool) *Tree[E] {
	return &Tree[E]{
		sequences: sequences,
		less:      less,
	}
}

// Merge is shorthand for New(sequences, less).All().
func Merge[E any](less func(a, b E) bool, sequences ...iter.Seq[E]) iter.Seq[E] {
	return New(sequences, less).All()
}

// All yields every element of every sequence in merged order.
func (t *Tree[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		k := len(t.sequences)
		if k == 0 {
			return
		}

		t.nodes = make([]node[E], 2*k)
		for i, s := range t.sequences {
			next, stop := iter.Pull(s)
			//nolint:gocritic // stops run when the merge ends.
			defer stop()
			t.nodes[k+i].next = next
			t.advance(k + i)
		}

		t.nodes[0].index = t.play(1)
		for {
			w := t.nodes[0].index
			if t.nodes[w].done || !yield(t.nodes[w].value) {
				return
			}
			t.advance(w)
			t.replay(w)
		}
	}
}

func (t *Tree[E]) advance(leaf int) {
	n := &t.nodes[leaf]
	v, ok := n.next()
	if !ok {
		var zero E
		n.value, n.done = zero, true
		return
	}
	n.value = v
}

// beats reports whether leaf a wins against leaf b.
func (t *Tree[E]) beats(a, b int) bool {
	na, nb := &t.nodes[a], &t.nodes[b]
	switch {
	case na.done:
		return false
	case nb.done:
		return true
	case t.less(na.value, nb.value):
		return true
	case t.less(nb.value, na.value):
		return false
	}
	return a < b
}

// play fills the subtree rooted at pos and returns its winning leaf.
func (t *Tree[E]) play(pos int) int {
	if pos >= len(t.nodes)/2 {
		return pos
	}
	left, right := t.play(2*pos), t.play(2*pos+1)
	if t.beats(left, right) {
		t.nodes[pos].index = right
		return left
	}
	t.nodes[pos].index = left
	return right
}

// replay re-runs the games from leaf up to the root after leaf advanced.
func (t *Tree[E]) replay(leaf int) {
	winner := leaf
	for pos := leaf >> 1; pos != 0; pos >>= 1 {
		if loser := t.nodes[pos].index; t.beats(loser, winner) {
			t.nodes[pos].index, winner = winner, loser
		}
	}
	t.nodes[0].index = winner
}
