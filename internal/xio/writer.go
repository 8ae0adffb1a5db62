package xio

import (
	"io"
)

// NewWriteCloser turns w into an io.WriteCloser. Close only closes w when it is an io.Closer
// and only once, so encoders that close their sink do not close an http.ResponseWriter
// or a file twice.
func NewWriteCloser(w io.Writer) io.WriteCloser {
	return &writeCloser{
		Writer: w,
	}
}

type writeCloser struct {
	io.Writer
	closed bool
}

func (wc *writeCloser) Close() error {
	if wc.closed {
		return nil
	}
	wc.closed = true
	if closer, ok := wc.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
