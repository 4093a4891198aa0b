package carquet

import (
	"encoding/binary"
	"fmt"

	"github.com/Vitruves/carquet-sub000/compress"
	"github.com/Vitruves/carquet-sub000/encoding/dict"
	"github.com/Vitruves/carquet-sub000/encoding/rle"
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

// DecodedPage is one data page's worth of fully materialized values, with
// repetition/definition levels already expanded to one entry per value slot
// (nulls included).
// Values holds the non-null values in on-disk order as a typed
// Go slice (e.g. []int32, []float64, [][]byte) — callers type-assert it
// against the column's physical type.
type DecodedPage struct {
	RepetitionLevels []int32
	DefinitionLevels []int32
	Values           interface{}
	NumNulls         int
}

// ColumnReader decodes the pages of a single column chunk in sequence. It
// is not safe for concurrent use; BatchReader is responsible for the
// bounded page-prefetch concurrency it allows.
type ColumnReader struct {
	schema *Schema
	chunk  *format.ColumnChunk
	reader sectionReaderAt

	codec      compress.Codec
	dictionary *Dictionary

	offset    int64
	rowsRead  int64
	totalRows int64
}

// sectionReaderAt is the minimal random-access surface ColumnReader needs;
// satisfied by *io.SectionReader.
type sectionReaderAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

func newColumnReader(schema *Schema, chunk *format.ColumnChunk, r sectionReaderAt, numRows int64) (*ColumnReader, error) {
	meta := chunk.MetaData
	if meta == nil {
		return nil, newError("newColumnReader", Format, fmt.Errorf("column chunk has no metadata")).withColumn(schema.String())
	}
	codec, err := codecFor(meta.Codec, 0)
	if err != nil {
		return nil, err
	}
	offset := meta.DataPageOffset
	if meta.DictionaryPageOffset != nil && *meta.DictionaryPageOffset < offset {
		offset = *meta.DictionaryPageOffset
	}
	return &ColumnReader{
		schema:    schema,
		chunk:     chunk,
		reader:    r,
		codec:     codec,
		offset:    offset,
		totalRows: numRows,
	}, nil
}

// HasNext reports whether the column chunk has more rows to decode.
func (c *ColumnReader) HasNext() bool { return c.rowsRead < c.totalRows }

// ReadPage decodes and returns the next page in the column chunk. Dictionary
// pages are consumed transparently: a leading dictionary page populates
// c.dictionary and the caller never sees it.
func (c *ColumnReader) ReadPage() (*DecodedPage, error) {
	for {
		header, body, err := c.readRawPage()
		if err != nil {
			return nil, err
		}
		switch header.Type {
		case format.DictionaryPage:
			if err := c.loadDictionary(header, body); err != nil {
				return nil, err
			}
			continue
		case format.DataPage:
			return c.decodeDataPageV1(header, body)
		case format.DataPageV2:
			return c.decodeDataPageV2(header, body)
		default:
			return nil, newError("ReadPage", Format, fmt.Errorf("unsupported page type %s", header.Type)).withColumn(c.schema.String())
		}
	}
}

// readRawPage reads one page header plus its decompressed body from the
// column chunk's byte range, verifying the page's CRC32 when present.
func (c *ColumnReader) readRawPage() (*format.PageHeader, []byte, error) {
	header, headerLen, err := readPageHeader(c.reader, c.offset)
	if err != nil {
		return nil, nil, newError("readRawPage", Format, err).withColumn(c.schema.String()).withOffset(c.offset)
	}
	compressed := make([]byte, header.CompressedPageSize)
	if _, err := c.reader.ReadAt(compressed, c.offset+int64(headerLen)); err != nil {
		return nil, nil, newError("readRawPage", IO, err).withColumn(c.schema.String()).withOffset(c.offset)
	}
	c.offset += int64(headerLen) + int64(header.CompressedPageSize)

	if header.CRC != nil {
		if got := pageCRC(compressed); got != uint32(*header.CRC) {
			return nil, nil, newError("readRawPage", Integrity, ErrCRCMismatch).withColumn(c.schema.String())
		}
	}

	body := make([]byte, header.UncompressedPageSize)
	body, err = c.codec.Decode(body, compressed)
	if err != nil {
		return nil, nil, newError("readRawPage", Compression, err).withColumn(c.schema.String())
	}
	return header, body, nil
}

func (c *ColumnReader) loadDictionary(header *format.PageHeader, body []byte) error {
	if header.DictionaryPageHeader == nil {
		return newError("loadDictionary", Format, fmt.Errorf("dictionary page missing its header")).withColumn(c.schema.String())
	}
	n := int(header.DictionaryPageHeader.NumValues)
	d := NewDictionary(c.schema.Type, int(c.schema.TypeLength))
	values, err := decodePlainValues(c.schema.Type, int(c.schema.TypeLength), body, n)
	if err != nil {
		return newError("loadDictionary", Encoding, err).withColumn(c.schema.String())
	}
	for i := 0; i < valuesLen(values); i++ {
		d.Insert(plainValueBytes(c.schema.Type, int(c.schema.TypeLength), values, i))
	}
	c.dictionary = d
	return nil
}

func (c *ColumnReader) decodeDataPageV1(header *format.PageHeader, body []byte) (*DecodedPage, error) {
	h := header.DataPageHeader
	if h == nil {
		return nil, newError("decodeDataPageV1", Format, fmt.Errorf("data page missing its header")).withColumn(c.schema.String())
	}
	numValues := int(h.NumValues)

	var repLevels, defLevels []int32
	rest := body
	var err error

	if c.schema.MaxRepetitionLevel > 0 {
		repLevels, rest, err = readV1LevelSection(rest, numValues, c.schema.MaxRepetitionLevel)
		if err != nil {
			return nil, newError("decodeDataPageV1", Format, err).withColumn(c.schema.String())
		}
	} else {
		repLevels = make([]int32, numValues)
	}

	if c.schema.MaxDefinitionLevel > 0 {
		defLevels, rest, err = readV1LevelSection(rest, numValues, c.schema.MaxDefinitionLevel)
		if err != nil {
			return nil, newError("decodeDataPageV1", Format, err).withColumn(c.schema.String())
		}
	} else {
		defLevels = make([]int32, numValues)
		for i := range defLevels {
			defLevels[i] = int32(c.schema.MaxDefinitionLevel)
		}
	}

	numNonNull := countNonNull(defLevels, c.schema.MaxDefinitionLevel)
	values, err := c.decodeValues(h.Encoding, rest, numNonNull)
	if err != nil {
		return nil, newError("decodeDataPageV1", Encoding, err).withColumn(c.schema.String())
	}

	c.rowsRead += int64(countRows(repLevels))
	return &DecodedPage{
		RepetitionLevels: repLevels,
		DefinitionLevels: defLevels,
		Values:           values,
		NumNulls:         numValues - numNonNull,
	}, nil
}

func (c *ColumnReader) decodeDataPageV2(header *format.PageHeader, body []byte) (*DecodedPage, error) {
	h := header.DataPageHeaderV2
	if h == nil {
		return nil, newError("decodeDataPageV2", Format, fmt.Errorf("data page v2 missing its header")).withColumn(c.schema.String())
	}
	numValues := int(h.NumValues)
	repLen := int(h.RepetitionLevelsByteLength)
	defLen := int(h.DefinitionLevelsByteLength)
	if repLen+defLen > len(body) {
		return nil, newError("decodeDataPageV2", Format, fmt.Errorf("level sections overflow page body")).withColumn(c.schema.String())
	}

	var repLevels, defLevels []int32
	var err error
	if c.schema.MaxRepetitionLevel > 0 {
		width := uint(bits.MaxLen32([]int32{int32(c.schema.MaxRepetitionLevel)}))
		repLevels, err = rle.Decode(nil, body[:repLen], numValues, width)
		if err != nil {
			return nil, newError("decodeDataPageV2", Format, err).withColumn(c.schema.String())
		}
	} else {
		repLevels = make([]int32, numValues)
	}
	if c.schema.MaxDefinitionLevel > 0 {
		width := uint(bits.MaxLen32([]int32{int32(c.schema.MaxDefinitionLevel)}))
		defLevels, err = rle.Decode(nil, body[repLen:repLen+defLen], numValues, width)
		if err != nil {
			return nil, newError("decodeDataPageV2", Format, err).withColumn(c.schema.String())
		}
	} else {
		defLevels = make([]int32, numValues)
		for i := range defLevels {
			defLevels[i] = int32(c.schema.MaxDefinitionLevel)
		}
	}

	rest := body[repLen+defLen:]
	numNonNull := int(h.NumValues) - int(h.NumNulls)
	values, err := c.decodeValues(h.Encoding, rest, numNonNull)
	if err != nil {
		return nil, newError("decodeDataPageV2", Encoding, err).withColumn(c.schema.String())
	}

	c.rowsRead += int64(countRows(repLevels))
	return &DecodedPage{
		RepetitionLevels: repLevels,
		DefinitionLevels: defLevels,
		Values:           values,
		NumNulls:         int(h.NumNulls),
	}, nil
}

// decodeValues decodes numValues non-null values of the column's physical
// type from src, using the encoding the page declares.
func (c *ColumnReader) decodeValues(enc format.Encoding, src []byte, numValues int) (interface{}, error) {
	switch enc {
	case format.Plain:
		return decodePlainValues(c.schema.Type, int(c.schema.TypeLength), src, numValues)
	case format.PlainDictionary, format.RLEDictionary:
		if c.dictionary == nil {
			return nil, fmt.Errorf("dictionary-encoded page with no preceding dictionary page")
		}
		indexes, err := dict.Decode(nil, src, numValues)
		if err != nil {
			return nil, err
		}
		return gatherDictionary(c.dictionary, indexes), nil
	default:
		return decodeTypedValues(c.schema.Type, int(c.schema.TypeLength), enc, src, numValues)
	}
}

func countNonNull(defLevels []int32, maxDef int) int {
	n := 0
	for _, d := range defLevels {
		if int(d) == maxDef {
			n++
		}
	}
	return n
}

func countRows(repLevels []int32) int {
	if len(repLevels) == 0 {
		return 0
	}
	n := 0
	for _, r := range repLevels {
		if r == 0 {
			n++
		}
	}
	return n
}

// readV1LevelSection reads one length-prefixed RLE-encoded level section
// from a V1 data page body: the repetition and definition level sections in
// DataPageHeader pages are each preceded by a 4-byte little-endian length.
func readV1LevelSection(body []byte, numValues int, maxLevel int) ([]int32, []byte, error) {
	if len(body) < 4 {
		return nil, nil, fmt.Errorf("truncated level section length prefix")
	}
	n := binary.LittleEndian.Uint32(body)
	if int(n) > len(body)-4 {
		return nil, nil, fmt.Errorf("level section length %d exceeds remaining page body", n)
	}
	width := uint(bits.MaxLen32([]int32{int32(maxLevel)}))
	levels, err := rle.Decode(nil, body[4:4+n], numValues, width)
	if err != nil {
		return nil, nil, err
	}
	return levels, body[4+n:], nil
}

func gatherDictionary(d *Dictionary, indexes []int32) interface{} {
	switch d.Type() {
	case format.ByteArray, format.FixedLenByteArray:
		out := make([][]byte, len(indexes))
		for i, idx := range indexes {
			out[i] = d.Index(idx)
		}
		return out
	default:
		plain, _ := decodePlainValues(d.Type(), d.fixedLen, flattenDictionary(d, indexes), len(indexes))
		return plain
	}
}

// flattenDictionary concatenates the PLAIN bytes of the referenced
// dictionary entries so the generic decodePlainValues path can be reused for
// fixed-width types. Variable-width BYTE_ARRAY values bypass this (see
// gatherDictionary) since their entries carry no length prefix, so
// concatenation would be ambiguous.
func flattenDictionary(d *Dictionary, indexes []int32) []byte {
	var out []byte
	for _, idx := range indexes {
		out = append(out, d.Index(idx)...)
	}
	return out
}
