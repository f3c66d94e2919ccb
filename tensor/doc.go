// Package tensor implements the plain-text coordinate format used to store
// sparse tensors (.tns files). Each line holds one nonzero: nmodes unsigned
// integer coordinates followed by a floating-point value, all separated by
// whitespace. Lines that are blank or start with '#' are ignored on input.
//
// Basic usage:
//
//	r := tensor.NewReader(in, 3)
//	w := tensor.NewWriter(out, 3)
//
//	var rec tensor.Record
//	for {
//	    err := r.Read(&rec)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := w.Write(rec); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// Read fills the record in place and reuses its coordinate slice, so a caller
// holding two records can alternate between them without allocating. Seq
// yields independent copies instead, which is what merging several streams
// needs.
//
// By default a line with the wrong number of fields or an unparsable token is
// an error (*ParseError wrapping ErrArity or ErrMalformed). A reader built
// with Lenient treats both as the end of input.
package tensor
