//go:build linux || darwin || freebsd || netbsd || openbsd

// Package mmap backs the file reader's use_memory_map option. It exposes the
// mapped bytes as a plain []byte so the reader can read pages from them like
// from any other buffer; the reader copies each page body out of the mapping.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type Mapping struct {
	data []byte
}

// Map maps the full extent of f read-only. The returned Mapping must be
// closed to release the mapping; the caller must not reference Bytes()
// after Close.
func Map(f *os.File) (*Mapping, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: stat: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return &Mapping{data: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &Mapping{data: data}, nil
}

func (m *Mapping) Bytes() []byte { return m.data }

func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return unix.Munmap(data)
}
