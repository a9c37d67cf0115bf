package main

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/pgnkit/movetree/internal/errors"
)

// openInput opens a PGN source, transparently decompressing .gz and
// .zst files.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "gzip "+path)
		}
		return &wrappedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil

	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "zstd "+path)
		}
		rc := zr.IOReadCloser()
		return &wrappedCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil

	default:
		return f, nil
	}
}

// wrappedCloser closes a decompressor and its underlying file.
type wrappedCloser struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedCloser) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
