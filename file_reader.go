package carquet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/mmap"
	"github.com/segmentio/encoding/thrift"
)

// FileReader opens a parquet file's footer and exposes its row groups.
// Opening a file only reads its magic bytes and footer; column chunk
// and page bytes are read lazily as callers ask for them through RowGroup /
// ColumnReader / BatchReader.
type FileReader struct {
	metadata format.FileMetaData
	schema   *Schema
	reader   sectionReaderAt
	size     int64
	mapping  *mmap.Mapping
}

var footerProtocol = &thrift.CompactProtocol{}

// OpenFile reads the footer of a parquet file served by r (size bytes long)
// and returns a FileReader over it.
func OpenFile(r sectionReaderAt, size int64, opts ...ReaderOption) (*FileReader, error) {
	cfg := NewReaderConfig(opts...)

	header := make([]byte, 4)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, newError("OpenFile", IO, fmt.Errorf("reading magic header: %w", err))
	}
	if !bytes.Equal(header, []byte("PAR1")) {
		return nil, newError("OpenFile", Format, ErrMissingMagicHeader)
	}

	tail := make([]byte, 8)
	if _, err := r.ReadAt(tail, size-8); err != nil {
		return nil, newError("OpenFile", IO, fmt.Errorf("reading magic footer: %w", err))
	}
	if !bytes.Equal(tail[4:8], []byte("PAR1")) {
		return nil, newError("OpenFile", Format, ErrMissingMagicFooter)
	}

	footerSize := int64(binary.LittleEndian.Uint32(tail[:4]))
	if footerSize < 0 || footerSize > size-12 {
		return nil, newError("OpenFile", Format, fmt.Errorf("implausible footer size %d", footerSize))
	}
	footerData := make([]byte, footerSize)
	if _, err := r.ReadAt(footerData, size-(footerSize+8)); err != nil {
		return nil, newError("OpenFile", IO, fmt.Errorf("reading footer: %w", err))
	}

	f := &FileReader{reader: r, size: size}
	if err := thrift.Unmarshal(footerProtocol, footerData, &f.metadata); err != nil {
		return nil, newError("OpenFile", Format, fmt.Errorf("decoding footer metadata: %w", err))
	}
	if len(f.metadata.Schema) == 0 {
		return nil, newError("OpenFile", Format, ErrMissingRootColumn)
	}

	schema, err := schemaFromElements(f.metadata.Schema)
	if err != nil {
		return nil, err
	}
	f.schema = schema

	format.SortKeyValueMetadata(f.metadata.KeyValueMetadata)
	_ = cfg.VerifyPageCRC // CRC verification happens per-page in ColumnReader.readRawPage
	return f, nil
}

// Open opens the parquet file at path. When cfg.UseMemoryMap is set the file
// is memory-mapped and page bytes are read from the mapping instead of
// through read(2). Page bodies are still copied into per-page buffers either
// way: batches always own their values and never borrow the mapped bytes.
func Open(path string, opts ...ReaderOption) (*FileReader, error) {
	cfg := NewReaderConfig(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, newError("Open", Resource, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError("Open", Resource, err)
	}

	if cfg.UseMemoryMap {
		m, err := mmap.Map(f)
		f.Close()
		if err != nil {
			return nil, newError("Open", Resource, err)
		}
		reader, err := OpenFile(bytes.NewReader(m.Bytes()), info.Size(), opts...)
		if err != nil {
			m.Close()
			return nil, err
		}
		reader.mapping = m
		return reader, nil
	}

	reader, err := OpenFile(io.NewSectionReader(f, 0, info.Size()), info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return reader, nil
}

// Close releases resources held by the reader: the memory mapping, when one
// was used to open the file.
func (f *FileReader) Close() error {
	if f.mapping != nil {
		return f.mapping.Close()
	}
	return nil
}

// Schema returns the file's schema tree.
func (f *FileReader) Schema() *Schema { return f.schema }

// NumRows returns the total row count across every row group.
func (f *FileReader) NumRows() int64 { return f.metadata.NumRows }

// NumRowGroups returns the number of row groups in the file.
func (f *FileReader) NumRowGroups() int { return len(f.metadata.RowGroups) }

// RowGroup returns the i'th row group.
func (f *FileReader) RowGroup(i int) (*RowGroup, error) {
	if i < 0 || i >= len(f.metadata.RowGroups) {
		return nil, newError("RowGroup", Lookup, fmt.Errorf("row group index %d out of range", i)).withRowGroup(i)
	}
	rg := &f.metadata.RowGroups[i]
	return &RowGroup{file: f, index: i, numRows: rg.NumRows, columns: rg.Columns}, nil
}

// KeyValueMetadata returns the file's application-defined key/value
// metadata, sorted by key then value.
func (f *FileReader) KeyValueMetadata() []format.KeyValue { return f.metadata.KeyValueMetadata }
