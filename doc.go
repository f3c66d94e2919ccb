// Package tnsdedup removes duplicate nonzeros from sparse tensors stored in
// the .tns text format, where every line is a coordinate tuple followed by a
// value.
//
// The input must already be sorted by coordinate so that duplicates are
// adjacent. Duplicates are merged by adding their values and the result is
// written in the same format:
//
//	stats, err := tnsdedup.Dedup(ctx, "enron.tns.gz", "enron.dedup.tns", 4,
//	    tnsdedup.WithLogger(logger),
//	)
//
// Several sorted shards of one tensor can be combined in the same pass:
//
//	stats, err := tnsdedup.Merge(ctx, []string{"part-0.tns", "part-1.tns"}, "all.tns", 3)
//
// Files ending in .gz or .zst are compressed transparently, see
// storage/local. The building blocks are exported separately: tensor for the
// file format, dedup for the merging pass and loser for the shard merge.
package tnsdedup
