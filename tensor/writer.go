package tensor

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits records in line form through a buffer. The first write error
// is kept and returned by every later call.
type Writer struct {
	bw      *bufio.Writer
	nmodes  int
	scratch []byte
	err     error
}

// NewWriter returns a Writer for records with nmodes coordinates.
func NewWriter(w io.Writer, nmodes int) *Writer {
	return &Writer{
		bw:      bufio.NewWriter(w),
		nmodes:  nmodes,
		scratch: make([]byte, 0, 128),
	}
}

// Write appends one line holding rec.
func (w *Writer) Write(rec Record) error {
	if w.err != nil {
		return w.err
	}
	if len(rec.Coords) != w.nmodes {
		return fmt.Errorf("tensor: %w: record has %d coordinates, want %d", ErrArity, len(rec.Coords), w.nmodes)
	}

	w.scratch = rec.AppendTo(w.scratch[:0])
	w.scratch = append(w.scratch, '\n')
	if _, err := w.bw.Write(w.scratch); err != nil {
		w.err = fmt.Errorf("tensor: write failed: %w", err)
		return w.err
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = fmt.Errorf("tensor: flush failed: %w", err)
		return w.err
	}
	return nil
}

// WriteAll writes every record and flushes.
func WriteAll(w io.Writer, nmodes int, records ...Record) error {
	tw := NewWriter(w, nmodes)
	for _, rec := range records {
		if err := tw.Write(rec); err != nil {
			return err
		}
	}
	return tw.Flush()
}
