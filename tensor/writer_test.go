package tensor_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/davidvella/tnsdedup/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("its a me errorio")

type mockWriter struct {
	errorCounter int
	counter      int
}

func (w *mockWriter) Write(p []byte) (n int, err error) {
	w.counter++
	if w.counter == w.errorCounter {
		return 0, errWrite
	}
	return len(p), nil
}

func TestWriterWrite(t *testing.T) {
	tests := []struct {
		name   string
		nmodes int
		record tensor.Record
		want   string
	}{
		{
			name:   "integral value",
			nmodes: 2,
			record: tensor.Record{Coords: []uint64{0, 0}, Value: 3},
			want:   "0 0 3\n",
		},
		{
			name:   "fractional value",
			nmodes: 3,
			record: tensor.Record{Coords: []uint64{1, 20, 300}, Value: 0.1},
			want:   "1 20 300 0.1\n",
		},
		{
			name:   "exponent",
			nmodes: 1,
			record: tensor.Record{Coords: []uint64{9}, Value: 1e-9},
			want:   "9 1e-09\n",
		},
		{
			name:   "max coordinate",
			nmodes: 1,
			record: tensor.Record{Coords: []uint64{math.MaxUint64}, Value: -2.5},
			want:   "18446744073709551615 -2.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := tensor.NewWriter(&buf, tt.nmodes)
			require.NoError(t, w.Write(tt.record))
			require.NoError(t, w.Flush())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriterRoundTrip(t *testing.T) {
	records := []tensor.Record{
		{Coords: []uint64{0, 1, 2}, Value: 1.0 / 3.0},
		{Coords: []uint64{4, 5, 6}, Value: math.Pi},
		{Coords: []uint64{7, 8, 9}, Value: -1e300},
	}

	var buf bytes.Buffer
	require.NoError(t, tensor.WriteAll(&buf, 3, records...))

	got, err := tensor.ReadAll(&buf, 3)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriterArity(t *testing.T) {
	w := tensor.NewWriter(&bytes.Buffer{}, 3)
	err := w.Write(tensor.Record{Coords: []uint64{1, 2}, Value: 1})
	assert.ErrorIs(t, err, tensor.ErrArity)
}

func TestWriterHandleError(t *testing.T) {
	mw := &mockWriter{errorCounter: 1}
	w := tensor.NewWriter(mw, 1)

	require.NoError(t, w.Write(tensor.Record{Coords: []uint64{1}, Value: 1}))
	err := w.Flush()
	require.ErrorIs(t, err, errWrite)
	assert.EqualError(t, err, "tensor: flush failed: its a me errorio")

	assert.ErrorIs(t, w.Write(tensor.Record{Coords: []uint64{2}, Value: 1}), errWrite)
	assert.ErrorIs(t, w.Flush(), errWrite)
}
