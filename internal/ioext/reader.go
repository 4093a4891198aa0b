package ioext

import (
	"io"
	"sync"
)

// ReaderAt adapts an io.ReadSeeker to io.ReaderAt for sources (such as a
// network-backed file abstraction) that cannot implement ReadAt natively.
// Concurrent calls are serialized behind a mutex since seeking and reading
// are not atomic on the underlying stream; this is strictly a fallback path,
// used only when the configured source does not already satisfy ReaderAt.
type ReaderAt struct {
	mutex sync.Mutex
	rs    io.ReadSeeker
}

func NewReaderAt(rs io.ReadSeeker) *ReaderAt {
	return &ReaderAt{rs: rs}
}

func (r *ReaderAt) ReadAt(b []byte, off int64) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	n := 0
	for n < len(b) {
		c, err := r.rs.Read(b[n:])
		n += c
		if err != nil {
			if err == io.EOF && n == len(b) {
				return n, nil
			}
			return n, err
		}
	}
	return n, nil
}

var _ io.ReaderAt = (*ReaderAt)(nil)
