// Package local opens tensor files on the local filesystem. Files ending in
// .gz or .zst are transparently decompressed on read and compressed on
// write. The path "-" refers to standard input or standard output.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdio is the path that selects standard input or output.
const Stdio = "-"

// Compression identifies the codec applied to a file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// CompressionFor picks the codec from the file extension.
func CompressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	default:
		return None
	}
}

// Storage opens and creates tensor files.
type Storage struct {
	stdin  io.Reader
	stdout io.Writer
	perm   os.FileMode
}

// NewLocalStorage returns a Storage bound to the process standard streams.
func NewLocalStorage() *Storage {
	return NewStdioStorage(os.Stdin, os.Stdout)
}

// NewStdioStorage returns a Storage that maps "-" to the given streams.
func NewStdioStorage(stdin io.Reader, stdout io.Writer) *Storage {
	return &Storage{
		stdin:  stdin,
		stdout: stdout,
		perm:   0o644,
	}
}

// Open opens path for reading, decompressing it when its extension says so.
func (s *Storage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(s.stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("local: failed to open %s: %w", path, err)
	}

	switch CompressionFor(path) {
	case Gzip:
		zr, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("local: failed to open %s: %w", path, err)
		}
		return &stack{Reader: zr, closers: []io.Closer{zr, file}}, nil
	case Zstd:
		zr, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("local: failed to open %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &stack{Reader: rc, closers: []io.Closer{rc, file}}, nil
	default:
		return file, nil
	}
}

// Create creates or truncates path for writing, compressing it when its
// extension says so. Closing the returned writer flushes the codec before
// closing the file.
func (s *Storage) Create(_ context.Context, path string) (io.WriteCloser, error) {
	if path == Stdio {
		return nopWriteCloser{s.stdout}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, s.perm)
	if err != nil {
		return nil, fmt.Errorf("local: failed to open %s: %w", path, err)
	}

	switch CompressionFor(path) {
	case Gzip:
		zw := gzip.NewWriter(file)
		return &stack{Writer: zw, closers: []io.Closer{zw, file}}, nil
	case Zstd:
		zw, err := zstd.NewWriter(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("local: failed to open %s: %w", path, err)
		}
		return &stack{Writer: zw, closers: []io.Closer{zw, file}}, nil
	default:
		return file, nil
	}
}

// stack is a codec layered over a file. Close runs innermost first and keeps
// going after a failure.
type stack struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stack) Close() error {
	return CloseAll(s.closers...)
}

// CloseAll closes every closer and aggregates the failures.
func CloseAll(closers ...io.Closer) error {
	var result *multierror.Error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
