package dedup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/davidvella/tnsdedup/tensor"
)

// checkInterval is how many records are processed between context checks.
const checkInterval = 1024

// RecordReader fills rec with the next record, returning io.EOF at the end.
type RecordReader interface {
	Read(rec *tensor.Record) error
}

// RecordWriter receives every record that survives the pass.
type RecordWriter interface {
	Write(rec tensor.Record) error
}

// Stats summarises one pass.
type Stats struct {
	// Seen counts the records read after the first one, i.e. the number of
	// comparisons made.
	Seen uint64
	// Pruned counts the records merged into their predecessor.
	Pruned uint64
	// Written counts the records handed to the writer.
	Written uint64
	// Extent holds, per mode, the largest coordinate written.
	Extent []uint64
}

// Read returns the total number of records consumed.
func (s Stats) Read() uint64 {
	return s.Pruned + s.Written
}

// Merger runs the deduplicating pass.
type Merger struct {
	w      RecordWriter
	nmodes int
}

// New returns a Merger writing records with nmodes coordinates to w.
func New(w RecordWriter, nmodes int) *Merger {
	return &Merger{w: w, nmodes: nmodes}
}

// Run consumes r until it is exhausted. The final pending record is written
// only when the input ends cleanly; on error, records already written stay
// written and the pending one is dropped.
func (m *Merger) Run(ctx context.Context, r RecordReader) (Stats, error) {
	stats := Stats{Extent: make([]uint64, max(m.nmodes, 0))}

	prev, curr := tensor.New(m.nmodes), tensor.New(m.nmodes)
	if err := r.Read(&prev); err != nil {
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		return stats, fmt.Errorf("dedup: failed to read record: %w", err)
	}

	for {
		if stats.Seen%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("dedup: %w", err)
			}
		}

		err := r.Read(&curr)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("dedup: failed to read record: %w", err)
		}

		if prev.SameCoords(curr) {
			prev.Value += curr.Value
			stats.Pruned++
		} else {
			if err := m.flush(&stats, prev); err != nil {
				return stats, err
			}
			prev, curr = curr, prev
		}
		stats.Seen++
	}

	if err := m.flush(&stats, prev); err != nil {
		return stats, err
	}
	return stats, nil
}

func (m *Merger) flush(stats *Stats, rec tensor.Record) error {
	if err := m.w.Write(rec); err != nil {
		return fmt.Errorf("dedup: failed to write record: %w", err)
	}
	stats.Written++
	for mode := range min(len(rec.Coords), len(stats.Extent)) {
		stats.Extent[mode] = max(stats.Extent[mode], rec.Coords[mode])
	}
	return nil
}
