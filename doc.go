/*
Package carquet implements the core of the Parquet file format: byte/bit
primitives, compression codecs, page encodings, page framing, footer
metadata, and the column/row-group/file reader and writer types built on
top of them.

Reading

OpenFile/Open read a file's footer and expose its row groups. RowGroup
opens a ColumnReader per leaf column, and BatchReader reads several
projected columns in lock-step, prefetching their next page concurrently
under a bounded worker limit.

Writing

NewFileWriter accumulates column values per row group, choosing a
dictionary or PLAIN encoding per column chunk on Close, and emits the
thrift-encoded footer when the FileWriter itself is closed.
*/
package carquet
