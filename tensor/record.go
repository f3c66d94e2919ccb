package tensor

import (
	"slices"
	"strconv"
)

// Record is a single nonzero of a sparse tensor.
type Record struct {
	Coords []uint64
	Value  float64
}

// New returns a record with a zeroed coordinate tuple of length nmodes.
func New(nmodes int) Record {
	return Record{Coords: make([]uint64, max(nmodes, 0))}
}

// SameCoords reports whether r and o address the same tensor element.
// It stops at the first differing mode.
func (r Record) SameCoords(o Record) bool {
	if len(r.Coords) != len(o.Coords) {
		return false
	}
	for m, c := range r.Coords {
		if c != o.Coords[m] {
			return false
		}
	}
	return true
}

// Clone returns a copy of r that shares no memory with it.
func (r Record) Clone() Record {
	return Record{Coords: slices.Clone(r.Coords), Value: r.Value}
}

// CopyTo overwrites dst with r, reusing the capacity of dst.Coords.
func (r Record) CopyTo(dst *Record) {
	dst.Coords = append(dst.Coords[:0], r.Coords...)
	dst.Value = r.Value
}

// Compare orders records lexicographically by coordinates. Values are not
// considered.
func Compare(a, b Record) int {
	return slices.Compare(a.Coords, b.Coords)
}

// Less reports whether a sorts before b.
func Less(a, b Record) bool {
	return Compare(a, b) < 0
}

// AppendTo appends the line form of r, without the trailing newline.
func (r Record) AppendTo(b []byte) []byte {
	for _, c := range r.Coords {
		b = strconv.AppendUint(b, c, 10)
		b = append(b, ' ')
	}
	return strconv.AppendFloat(b, r.Value, 'g', -1, 64)
}

func (r Record) String() string {
	return string(r.AppendTo(nil))
}

