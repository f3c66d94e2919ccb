package tensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
)

const (
	initialLineSize = 64 * 1024
	maxLineSize     = 16 * 1024 * 1024
)

var (
	ErrArity     = errors.New("wrong number of fields")
	ErrMalformed = errors.New("malformed token")
	ErrNoModes   = errors.New("nmodes must be greater than 0")
)

// ParseError describes a line that could not be turned into a Record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tensor: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// Lenient makes the reader report a bad line as the end of input rather than
// as an error. Whatever was parsed from the bad line is discarded.
func Lenient() ReaderOption {
	return func(r *Reader) {
		r.lenient = true
	}
}

// Reader parses records from a text stream.
type Reader struct {
	sc      *bufio.Scanner
	nmodes  int
	line    int
	lenient bool
	err     error
}

// NewReader returns a Reader for records with nmodes coordinates.
func NewReader(r io.Reader, nmodes int, opts ...ReaderOption) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, initialLineSize), maxLineSize)

	rd := &Reader{
		sc:     sc,
		nmodes: nmodes,
	}
	for _, opt := range opts {
		opt(rd)
	}
	if nmodes <= 0 {
		rd.err = ErrNoModes
	}
	return rd
}

// Line returns the number of the last line consumed.
func (r *Reader) Line() int {
	return r.line
}

// Read parses the next record into rec, reusing rec.Coords when it has enough
// capacity. It returns io.EOF once the input is exhausted. Errors are sticky.
func (r *Reader) Read(rec *Record) error {
	if r.err != nil {
		return r.err
	}

	for r.sc.Scan() {
		r.line++
		line := r.sc.Bytes()
		if isSkippable(line) {
			continue
		}

		if err := r.parse(line, rec); err != nil {
			if r.lenient {
				r.err = io.EOF
			} else {
				r.err = &ParseError{Line: r.line, Err: err}
			}
			return r.err
		}
		return nil
	}

	if err := r.sc.Err(); err != nil {
		r.err = fmt.Errorf("tensor: read failed after line %d: %w", r.line, err)
		return r.err
	}
	r.err = io.EOF
	return r.err
}

func (r *Reader) parse(line []byte, rec *Record) error {
	if cap(rec.Coords) < r.nmodes {
		rec.Coords = make([]uint64, r.nmodes)
	}
	rec.Coords = rec.Coords[:r.nmodes]

	var (
		field int
		pos   int
	)
	for {
		tok, next := nextField(line, pos)
		if tok == nil {
			break
		}
		pos = next

		switch {
		case field < r.nmodes:
			c, err := strconv.ParseUint(string(tok), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: coordinate %d %q", ErrMalformed, field+1, tok)
			}
			rec.Coords[field] = c
		case field == r.nmodes:
			v, err := strconv.ParseFloat(string(tok), 64)
			if err != nil {
				return fmt.Errorf("%w: value %q", ErrMalformed, tok)
			}
			rec.Value = v
		}
		field++
	}

	if field != r.nmodes+1 {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, field, r.nmodes+1)
	}
	return nil
}

// Seq returns an iterator over independent copies of the remaining records.
// A terminal error other than io.EOF is yielded once with a zero Record.
func (r *Reader) Seq() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec := New(r.nmodes)
			err := r.Read(&rec)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ReadAll reads every remaining record.
func ReadAll(r io.Reader, nmodes int, opts ...ReaderOption) ([]Record, error) {
	records := make([]Record, 0, 1)
	for rec, err := range NewReader(r, nmodes, opts...).Seq() {
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func isSkippable(line []byte) bool {
	for _, b := range line {
		if isSpace(b) {
			continue
		}
		return b == '#'
	}
	return true
}

// nextField returns the next whitespace separated token at or after pos and
// the offset just past it. tok is nil when the line has no more tokens.
func nextField(line []byte, pos int) (tok []byte, next int) {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if pos == len(line) {
		return nil, pos
	}
	start := pos
	for pos < len(line) && !isSpace(line[pos]) {
		pos++
	}
	return line[start:pos], pos
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
