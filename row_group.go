package carquet

import (
	"github.com/Vitruves/carquet-sub000/format"
)

// RowGroup is one horizontal partition of a parquet file: every leaf column
// has exactly one ColumnChunk here, and all chunks span the same NumRows
// rows.
type RowGroup struct {
	file    *FileReader
	index   int
	numRows int64
	columns []format.ColumnChunk
}

func (g *RowGroup) NumRows() int64 { return g.numRows }

func (g *RowGroup) Index() int { return g.index }

// Column opens a ColumnReader for the leaf at the given index in the
// file's schema.Leaves() order.
func (g *RowGroup) Column(i int) (*ColumnReader, error) {
	leaves := g.file.schema.Leaves()
	if i < 0 || i >= len(leaves) {
		return nil, newError("Column", Lookup, errColumnIndexOutOfRange(i))
	}
	chunk := &g.columns[i]
	return newColumnReader(leaves[i], chunk, g.file.reader, g.numRows)
}

// ColumnByPath opens a ColumnReader for the leaf with the given dotted path.
func (g *RowGroup) ColumnByPath(path string) (*ColumnReader, error) {
	leaves := g.file.schema.Leaves()
	for i, leaf := range leaves {
		if leaf.String() == path {
			return g.Column(i)
		}
	}
	return nil, newError("ColumnByPath", Lookup, errUnknownColumn(path)).withColumn(path)
}

func findColumnChunk(columns []format.ColumnChunk, path string) *format.ColumnChunk {
	for i := range columns {
		meta := columns[i].MetaData
		if meta == nil {
			continue
		}
		if joinPath(meta.PathInSchema) == path {
			return &columns[i]
		}
	}
	return nil
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

type errColumnIndexOutOfRange int

func (e errColumnIndexOutOfRange) Error() string {
	return "column index out of range"
}

type errUnknownColumn string

func (e errUnknownColumn) Error() string {
	return "unknown column: " + string(e)
}
