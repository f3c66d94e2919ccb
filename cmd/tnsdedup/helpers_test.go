package main

import (
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, w io.Writer, content string) {
	t.Helper()
	zw := gzip.NewWriter(w)
	_, err := io.WriteString(zw, content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
