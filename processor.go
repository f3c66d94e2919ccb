package tnsdedup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/davidvella/tnsdedup/dedup"
	"github.com/davidvella/tnsdedup/loser"
	"github.com/davidvella/tnsdedup/storage/local"
	"github.com/davidvella/tnsdedup/tensor"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoShards = errors.New("tnsdedup: at least one input is required")
	ErrUnsorted = errors.New("records are not sorted by coordinate")
)

// Dedup collapses adjacent duplicate nonzeros of the tensor at input into
// output. Lines written before a failure are kept.
func Dedup(ctx context.Context, input, output string, nmodes int, opts ...Option) (stats dedup.Stats, err error) {
	o := newOptions(opts)
	if nmodes <= 0 {
		return stats, fmt.Errorf("tnsdedup: %w", tensor.ErrNoModes)
	}

	log := o.logger.WithFields(logrus.Fields{
		"action": "dedup",
		"nmodes": nmodes,
	})

	in, err := o.storage.Open(ctx, input)
	if err != nil {
		return stats, err
	}
	defer closeInto(&err, in)
	log.WithField("input", input).WithField("compression", local.CompressionFor(input)).Debug("input opened")

	stats, err = run(ctx, o, output, nmodes, log, tensor.NewReader(in, nmodes, o.readerOptions()...))
	return stats, err
}

// Merge merges the sorted shards at inputs into one stream and collapses its
// adjacent duplicates into output. Equal coordinates from different shards
// are summed in the order the shards were given.
func Merge(ctx context.Context, inputs []string, output string, nmodes int, opts ...Option) (stats dedup.Stats, err error) {
	o := newOptions(opts)
	if nmodes <= 0 {
		return stats, fmt.Errorf("tnsdedup: %w", tensor.ErrNoModes)
	}
	if len(inputs) == 0 {
		return stats, ErrNoShards
	}

	log := o.logger.WithFields(logrus.Fields{
		"action": "merge",
		"nmodes": nmodes,
		"shards": len(inputs),
	})

	var (
		seqs = make([]iter.Seq[tensor.Record], 0, len(inputs))
		errs = make([]error, len(inputs))
	)
	for i, input := range inputs {
		in, oerr := o.storage.Open(ctx, input)
		if oerr != nil {
			return stats, oerr
		}
		defer closeInto(&err, in)
		log.WithField("input", input).WithField("compression", local.CompressionFor(input)).Debug("shard opened")

		r := tensor.NewReader(in, nmodes, o.readerOptions()...)
		seqs = append(seqs, shard(input, r, &errs[i]))
	}

	next, stop := iter.Pull(loser.Merge(tensor.Less, seqs...))
	defer stop()

	return run(ctx, o, output, nmodes, log, &mergedReader{next: next, errs: errs})
}

func run(ctx context.Context, o options, output string, nmodes int, log *logrus.Entry, r dedup.RecordReader) (stats dedup.Stats, err error) {
	out, err := o.storage.Create(ctx, output)
	if err != nil {
		return stats, err
	}
	defer closeInto(&err, out)
	log = log.WithField("output", output)

	w := tensor.NewWriter(out, nmodes)
	stats, err = dedup.New(w, nmodes).Run(ctx, r)

	// Whatever was flushed before a failure still belongs on disk.
	if ferr := w.Flush(); ferr != nil && !errors.Is(err, ferr) {
		err = appendErr(err, ferr)
	}
	if err != nil {
		log.WithError(err).WithField("written", stats.Written).Error("pass failed")
		return stats, err
	}

	if o.observer != nil {
		o.observer.Observe(stats)
	}
	log.WithFields(logrus.Fields{
		"seen":    stats.Seen,
		"pruned":  stats.Pruned,
		"written": stats.Written,
		"extent":  stats.Extent,
	}).Info("pass complete")

	return stats, nil
}

func (o options) readerOptions() []tensor.ReaderOption {
	if o.lenient {
		return []tensor.ReaderOption{tensor.Lenient()}
	}
	return nil
}

// shard adapts a reader to the merge, stopping on the first error or
// out-of-order record and leaving the cause in errp.
func shard(name string, r *tensor.Reader, errp *error) iter.Seq[tensor.Record] {
	return func(yield func(tensor.Record) bool) {
		var (
			last tensor.Record
			seen bool
		)
		for rec, err := range r.Seq() {
			if err != nil {
				*errp = fmt.Errorf("tnsdedup: shard %s: %w", name, err)
				return
			}
			if seen && tensor.Compare(rec, last) < 0 {
				*errp = fmt.Errorf("tnsdedup: shard %s: line %d: %w", name, r.Line(), ErrUnsorted)
				return
			}
			last, seen = rec, true
			if !yield(rec) {
				return
			}
		}
	}
}

// mergedReader feeds the output of the loser tree to the merger.
type mergedReader struct {
	next func() (tensor.Record, bool)
	errs []error
}

func (m *mergedReader) Read(rec *tensor.Record) error {
	v, ok := m.next()
	for _, err := range m.errs {
		if err != nil {
			return err
		}
	}
	if !ok {
		return io.EOF
	}
	v.CopyTo(rec)
	return nil
}

// closeInto closes c and folds its error into *errp.
func closeInto(errp *error, c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		*errp = appendErr(*errp, cerr)
	}
}

func appendErr(err, next error) error {
	if err == nil {
		return next
	}
	return multierror.Append(err, next)
}
