// Package ioext provides small io helpers shared by the column and file
// writers: offset tracking for row-group/page placement and a
// ReaderAt adapter for sources that only expose io.ReadSeeker.
package ioext

import "io"

// OffsetTrackingWriter wraps an io.Writer and records the number of bytes
// written through it. The file writer uses one of these as its sink so that
// column chunks and page headers can record their starting offsets without
// every caller having to thread a running total through the write path.
type OffsetTrackingWriter struct {
	writer io.Writer
	offset int64
}

func (w *OffsetTrackingWriter) Writer() io.Writer {
	return w.writer
}

func (w *OffsetTrackingWriter) Offset() int64 {
	return w.offset
}

func (w *OffsetTrackingWriter) Reset(writer io.Writer) {
	w.writer = writer
	w.offset = 0
}

func (w *OffsetTrackingWriter) Write(b []byte) (int, error) {
	n, err := w.writer.Write(b)
	w.offset += int64(n)
	return n, err
}

func (w *OffsetTrackingWriter) WriteString(s string) (int, error) {
	n, err := io.WriteString(w.writer, s)
	w.offset += int64(n)
	return n, err
}

func (w *OffsetTrackingWriter) ReadFrom(r io.Reader) (int64, error) {
	// io.Copy will make use of io.ReaderFrom if w.writer implements it.
	n, err := io.Copy(w.writer, r)
	w.offset += n
	return n, err
}

var (
	_ io.ReaderFrom   = (*OffsetTrackingWriter)(nil)
	_ io.StringWriter = (*OffsetTrackingWriter)(nil)
)
