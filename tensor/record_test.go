package tensor_test

import (
	"slices"
	"testing"

	"github.com/davidvella/tnsdedup/tensor"
	"github.com/stretchr/testify/assert"
)

func TestSameCoords(t *testing.T) {
	tests := []struct {
		name string
		a, b tensor.Record
		want bool
	}{
		{
			name: "equal coordinates, different values",
			a:    tensor.Record{Coords: []uint64{1, 2, 3}, Value: 1},
			b:    tensor.Record{Coords: []uint64{1, 2, 3}, Value: 9},
			want: true,
		},
		{
			name: "first mode differs",
			a:    tensor.Record{Coords: []uint64{0, 2, 3}},
			b:    tensor.Record{Coords: []uint64{1, 2, 3}},
			want: false,
		},
		{
			name: "last mode differs",
			a:    tensor.Record{Coords: []uint64{1, 2, 3}},
			b:    tensor.Record{Coords: []uint64{1, 2, 4}},
			want: false,
		},
		{
			name: "different arity",
			a:    tensor.Record{Coords: []uint64{1, 2}},
			b:    tensor.Record{Coords: []uint64{1, 2, 3}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameCoords(tt.b))
			assert.Equal(t, tt.want, tt.b.SameCoords(tt.a))
		})
	}
}

func TestCompare(t *testing.T) {
	records := []tensor.Record{
		{Coords: []uint64{2, 0}},
		{Coords: []uint64{0, 5}},
		{Coords: []uint64{1, 1}},
		{Coords: []uint64{0, 1}},
	}

	slices.SortFunc(records, tensor.Compare)

	assert.Equal(t, []tensor.Record{
		{Coords: []uint64{0, 1}},
		{Coords: []uint64{0, 5}},
		{Coords: []uint64{1, 1}},
		{Coords: []uint64{2, 0}},
	}, records)
	assert.True(t, tensor.Less(records[0], records[1]))
	assert.False(t, tensor.Less(records[1], records[1]))
}

func TestCloneAndCopyTo(t *testing.T) {
	src := tensor.Record{Coords: []uint64{4, 5}, Value: 2}

	clone := src.Clone()
	clone.Coords[0] = 99
	assert.Equal(t, uint64(4), src.Coords[0])

	dst := tensor.New(2)
	backing := &dst.Coords[0]
	src.CopyTo(&dst)
	assert.Equal(t, src, dst)
	assert.Same(t, backing, &dst.Coords[0])
}

func TestString(t *testing.T) {
	assert.Equal(t, "1 2 0.5", tensor.Record{Coords: []uint64{1, 2}, Value: 0.5}.String())
}
