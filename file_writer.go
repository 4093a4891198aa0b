package carquet

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/ioext"
	"github.com/segmentio/encoding/thrift"
)

// FileWriter assembles a parquet file one row group at a time:
// "PAR1" || row-group-0 column chunks || ... || footer (thrift
// FileMetaData) || u32_le(footer length) || "PAR1".
type FileWriter struct {
	sink   *ioext.OffsetTrackingWriter
	config *WriterConfig
	schema *Schema
	leaves []*Schema
	colCfg map[string]*ColumnConfig

	writers []*ColumnWriter
	index   map[string]int

	rowGroups []format.RowGroup
	totalRows int64

	closed bool
}

// ColumnWriterOption assigns per-column writer options, keyed by dotted leaf
// path (the same form Schema.String returns).
type ColumnWriterOption struct {
	Path    string
	Options []ColumnOption
}

// NewFileWriter creates a FileWriter over w for the given schema, writing the
// magic header immediately. colOpts overrides compression/encoding/
// dictionary-mode for individual columns by dotted path.
func NewFileWriter(w io.Writer, schema *Schema, opts []WriterOption, colOpts ...ColumnWriterOption) (*FileWriter, error) {
	cfg := NewWriterConfig(opts...)
	sink := new(ioext.OffsetTrackingWriter)
	sink.Reset(w)

	if _, err := sink.WriteString("PAR1"); err != nil {
		return nil, newError("NewFileWriter", IO, err)
	}

	leaves := schema.Leaves()
	colCfg := make(map[string]*ColumnConfig, len(colOpts))
	for _, co := range colOpts {
		colCfg[co.Path] = NewColumnConfig(co.Options...)
	}

	fw := &FileWriter{
		sink:   sink,
		config: cfg,
		schema: schema,
		leaves: leaves,
		colCfg: colCfg,
		index:  make(map[string]int, len(leaves)),
	}
	if err := fw.resetColumnWriters(); err != nil {
		return nil, err
	}
	return fw, nil
}

func (w *FileWriter) resetColumnWriters() error {
	w.writers = make([]*ColumnWriter, len(w.leaves))
	for i, leaf := range w.leaves {
		cw, err := newColumnWriter(leaf, w.config, w.colCfg[leaf.String()])
		if err != nil {
			return err
		}
		w.writers[i] = cw
		w.index[leaf.String()] = i
	}
	return nil
}

// WriteBatch appends one column-aligned batch of rows to the current row
// group, matching each Batch column to its writer by dotted path. Columns
// not present in the batch are left untouched; callers are expected to
// supply every leaf column once per batch.
func (w *FileWriter) WriteBatch(batch *Batch) error {
	if w.closed {
		return newError("WriteBatch", State, ErrClosed)
	}
	for i, path := range batch.Columns {
		idx, ok := w.index[path]
		if !ok {
			return newError("WriteBatch", Lookup, fmt.Errorf("unknown column %q", path)).withColumn(path)
		}
		if err := w.writers[idx].WriteBatch(batch.Values[i], batch.DefinitionLevels[i], batch.RepetitionLevels[i]); err != nil {
			return err
		}
	}
	if w.currentRowGroupBytes() >= w.config.RowGroupBytes {
		return w.FlushRowGroup()
	}
	return nil
}

// currentRowGroupBytes estimates the buffered (not yet flushed) row group
// size from its accumulated column values, since nothing is written to the
// sink until the row group is flushed.
func (w *FileWriter) currentRowGroupBytes() int64 {
	var n int64
	for _, cw := range w.writers {
		n += int64(valuesLen(cw.values)) * 8
	}
	return n
}

// FlushRowGroup finalizes every column writer's buffered values into pages,
// writes them to the sink and records the resulting format.RowGroup. It is a
// no-op if the current row group has no buffered rows.
func (w *FileWriter) FlushRowGroup() error {
	numRows := 0
	for _, cw := range w.writers {
		if cw.numRows > numRows {
			numRows = cw.numRows
		}
	}
	if numRows == 0 {
		return nil
	}

	groupStart := w.sink.Offset()
	columns := make([]format.ColumnChunk, len(w.writers))
	var totalBytes int64

	for i, cw := range w.writers {
		out, err := cw.Close(w.leaves[i].Path)
		if err != nil {
			return err
		}
		chunkStart := w.sink.Offset()

		var dictOffset *int64
		if out.dictionaryPage != nil {
			off := w.sink.Offset()
			dictOffset = &off
			if err := w.writePage(out.dictionaryPage); err != nil {
				return err
			}
		}
		dataOffset := w.sink.Offset()
		for _, p := range out.dataPages {
			if err := w.writePage(p); err != nil {
				return err
			}
		}

		out.meta.DataPageOffset = dataOffset
		out.meta.DictionaryPageOffset = dictOffset
		columns[i] = format.ColumnChunk{FileOffset: chunkStart, MetaData: out.meta}
		totalBytes += w.sink.Offset() - chunkStart
	}

	w.rowGroups = append(w.rowGroups, format.RowGroup{
		Columns:       columns,
		TotalByteSize: totalBytes,
		NumRows:       int64(numRows),
		FileOffset:    &groupStart,
	})
	w.totalRows += int64(numRows)

	return w.resetColumnWriters()
}

func (w *FileWriter) writePage(p *preparedPage) error {
	headerBytes, err := thrift.Marshal(pageHeaderProtocol, p.header)
	if err != nil {
		return newError("writePage", Format, err)
	}
	if _, err := w.sink.Write(headerBytes); err != nil {
		return newError("writePage", IO, err)
	}
	if _, err := w.sink.Write(p.compressed); err != nil {
		return newError("writePage", IO, err)
	}
	return nil
}

// Close flushes any buffered row group and writes the file footer: thrift
// FileMetaData, its little-endian byte length, then the trailing "PAR1"
// magic.
func (w *FileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.FlushRowGroup(); err != nil {
		return err
	}

	metadata := format.FileMetaData{
		Version:   2,
		Schema:    schemaToElements(w.schema),
		NumRows:   w.totalRows,
		RowGroups: w.rowGroups,
		CreatedBy: stringPtr("carquet"),
	}
	footer, err := thrift.Marshal(footerProtocol, &metadata)
	if err != nil {
		return newError("Close", Format, err)
	}
	if _, err := w.sink.Write(footer); err != nil {
		return newError("Close", IO, err)
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(footer)))
	if _, err := w.sink.Write(lenBuf[:]); err != nil {
		return newError("Close", IO, err)
	}
	if _, err := w.sink.WriteString("PAR1"); err != nil {
		return newError("Close", IO, err)
	}
	return nil
}

func stringPtr(s string) *string { return &s }
