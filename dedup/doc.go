// Package dedup implements the streaming pass that collapses adjacent
// duplicate nonzeros of a sparse tensor. Records sharing every coordinate
// with the record just before them are merged by summing their values; all
// other records are written through unchanged.
//
// The pass keeps two records in flight: the pending accumulator and the
// candidate that was just read. When the candidate has the same coordinates
// its value is folded into the accumulator. Otherwise the accumulator is
// written and the two slots swap roles. Memory use is therefore constant
// regardless of input size.
//
// Basic usage:
//
//	r := tensor.NewReader(in, nmodes)
//	w := tensor.NewWriter(out, nmodes)
//
//	stats, err := dedup.New(w, nmodes).Run(ctx, r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Fprintf(os.Stderr, "seen: %d pruned: %d\n", stats.Seen, stats.Pruned)
//
// Duplicates are only detected when adjacent, so the input is expected to be
// sorted by coordinate. Values are summed left to right in input order.
package dedup
