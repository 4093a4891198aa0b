//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package mmap

import (
	"fmt"
	"os"
)

// Mapping on unsupported platforms reads the whole file into a heap buffer
// instead of mapping it; callers see the same []byte-backed interface
// (use_memory_map degrades to a regular buffered read).
type Mapping struct {
	data []byte
}

func Map(f *os.File) (*Mapping, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: stat: %w", err)
	}
	data := make([]byte, info.Size())
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("mmap: fallback read: %w", err)
	}
	return &Mapping{data: data}, nil
}

func (m *Mapping) Bytes() []byte { return m.data }

func (m *Mapping) Close() error { m.data = nil; return nil }
