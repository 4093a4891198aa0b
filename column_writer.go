package carquet

import (
	"fmt"

	"github.com/Vitruves/carquet-sub000/compress"
	"github.com/Vitruves/carquet-sub000/encoding/dict"
	"github.com/Vitruves/carquet-sub000/encoding/rle"
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

// ColumnWriter buffers the values of one column chunk within a row group
// and, on Close, decides its dictionary strategy and splits the buffered
// values into pages. Building the dictionary requires
// having seen every value in the chunk, so — unlike ColumnReader, which
// decodes strictly page by page — ColumnWriter buffers an entire row
// group's worth of one column before it writes anything to disk.
type ColumnWriter struct {
	schema    *Schema
	config    *WriterConfig
	colConfig *ColumnConfig
	codec     compress.Codec
	codecCode format.CompressionCodec

	values     interface{} // accumulated typed slice
	defLevels  []int32
	repLevels  []int32
	numRows    int
	nullCount  int64

	encodingsUsed map[format.Encoding]bool
}

func newColumnWriter(schema *Schema, cfg *WriterConfig, colCfg *ColumnConfig) (*ColumnWriter, error) {
	codecCode := cfg.CompressionCodec
	if colCfg != nil && colCfg.Compression != nil {
		codecCode = *colCfg.Compression
	}
	codec, err := codecFor(codecCode, cfg.CompressionLevel)
	if err != nil {
		return nil, err
	}
	return &ColumnWriter{
		schema:        schema,
		config:        cfg,
		colConfig:     colCfg,
		codec:         codec,
		codecCode:     codecCode,
		encodingsUsed: make(map[format.Encoding]bool),
	}, nil
}

// WriteBatch appends one batch of already-decoded values to the column's
// row-group buffer. values holds only the non-null values, in order;
// defLevels has one entry per value slot (nulls included) and marks which
// slots are null, and repLevels, when given, has one entry per slot too.
func (w *ColumnWriter) WriteBatch(values interface{}, defLevels, repLevels []int32) error {
	w.defLevels = append(w.defLevels, defLevels...)
	if len(repLevels) > 0 {
		w.repLevels = append(w.repLevels, repLevels...)
	}
	for _, d := range defLevels {
		if int(d) != w.schema.MaxDefinitionLevel {
			w.nullCount++
		}
	}
	for _, r := range repLevels {
		if r == 0 {
			w.numRows++
		}
	}
	if len(repLevels) == 0 {
		w.numRows += len(defLevels)
	}
	if w.schema.LogicalType.Kind == UUIDType {
		normalized, err := normalizeUUIDValues(values)
		if err != nil {
			return newError("WriteBatch", Argument, err).withColumn(w.schema.String())
		}
		values = normalized
	}
	var err error
	w.values, err = appendValues(w.values, values)
	return err
}

func (w *ColumnWriter) dictionaryMode() DictionaryMode {
	if w.colConfig != nil && w.colConfig.DictionaryMode != nil {
		return *w.colConfig.DictionaryMode
	}
	return w.config.DictionaryMode
}

// columnChunkOutput is what Close produces: the pages to write (dictionary
// page first, if any) plus the metadata describing them.
type columnChunkOutput struct {
	dictionaryPage *preparedPage
	dataPages      []*preparedPage
	meta           *format.ColumnMetaData
}

type preparedPage struct {
	header               *format.PageHeader
	compressed           []byte
	uncompressedSize     int
}

// Close finalizes the column chunk: chooses PLAIN or a dictionary encoding,
// splits the buffered values into ~PageBytes pages, and returns the fully
// prepared pages plus the ColumnMetaData to record in the row group.
func (w *ColumnWriter) Close(path []string) (*columnChunkOutput, error) {
	n := valuesLen(w.values)
	typeLength := int(w.schema.TypeLength)

	// An all-null chunk has no values to index and is written as PLAIN.
	useDict := w.dictionaryMode() != DictionaryNever && n > 0
	var dictionary *Dictionary
	var indexes []int32
	if useDict && n > 0 {
		dictionary = NewDictionary(w.schema.Type, typeLength)
		indexes = make([]int32, n)
		for i := 0; i < n; i++ {
			indexes[i] = dictionary.Insert(plainValueBytes(w.schema.Type, typeLength, w.values, i))
		}
		if w.dictionaryMode() == DictionaryAuto && dictionary.EstimatedSize() > w.config.DictionaryPageBytes {
			useDict = false
			dictionary = nil
			indexes = nil
		}
	}

	out := &columnChunkOutput{}

	if useDict && dictionary != nil {
		dictBody, err := encodePlainValuesFromDictionary(w.schema.Type, typeLength, dictionary)
		if err != nil {
			return nil, newError("Close", Encoding, err).withColumn(w.schema.String())
		}
		page, err := w.preparePage(dictBody, &format.PageHeader{
			Type:                 format.DictionaryPage,
			DictionaryPageHeader: &format.DictionaryPageHeader{NumValues: int32(dictionary.Len()), Encoding: format.Plain},
		})
		if err != nil {
			return nil, err
		}
		out.dictionaryPage = page
		w.encodingsUsed[format.Plain] = true
	}

	enc := w.colConfig.encodingOrDefault(useDict)
	w.encodingsUsed[enc] = true

	pages, err := w.splitIntoPages(indexes, enc)
	if err != nil {
		return nil, err
	}
	out.dataPages = pages

	out.meta = w.buildMetaData(path, enc, useDict, out)
	return out, nil
}

func (c *ColumnConfig) encodingOrDefault(useDict bool) format.Encoding {
	if c != nil && c.Encoding != 0 {
		return c.Encoding
	}
	if useDict {
		return format.RLEDictionary
	}
	return format.Plain
}

// splitIntoPages groups the buffered rows into pages of roughly PageBytes
// each. indexes is non-nil when the chunk is dictionary-encoded.
func (w *ColumnWriter) splitIntoPages(indexes []int32, enc format.Encoding) ([]*preparedPage, error) {
	n := len(w.defLevels)
	if n == 0 {
		return nil, nil
	}
	hasRep := len(w.repLevels) == len(w.defLevels)

	var pages []*preparedPage
	start := 0
	nonNullBefore := 0
	for start < n {
		end := start
		approxBytes := 0
		nonNull := 0
		// Past PageBytes the page still takes values while the next one
		// continues a repeated group: never split in the middle of one.
		for end < n && (approxBytes < w.config.PageBytes || (hasRep && w.repLevels[end] != 0)) {
			if int(w.defLevels[end]) == w.schema.MaxDefinitionLevel {
				nonNull++
			}
			approxBytes += 8
			end++
		}

		defSlice := w.defLevels[start:end]
		// repSlice always has one entry per value, zero-filled when the
		// column carries no repetition levels of its own (MaxRepetitionLevel
		// == 0), matching the convention ColumnReader produces on decode so
		// countRows/NumRows agree between the two sides.
		var repSlice []int32
		if hasRep {
			repSlice = w.repLevels[start:end]
		} else {
			repSlice = make([]int32, end-start)
		}

		var body []byte
		var err error
		if indexes != nil {
			idxSlice := indexes[nonNullBefore : nonNullBefore+nonNull]
			body, err = dict.Encode(nil, idxSlice, maxInt(1, dictLen(indexes)))
		} else {
			body, err = encodeValues(w.schema.Type, int(w.schema.TypeLength), enc, nil,
				sliceValues(w.values, nonNullBefore, nonNullBefore+nonNull))
		}
		if err != nil {
			return nil, newError("splitIntoPages", Encoding, err).withColumn(w.schema.String())
		}

		repBytes, defBytes, pageBody, err := w.encodeV2Body(repSlice, defSlice, body)
		if err != nil {
			return nil, err
		}

		header := &format.PageHeader{
			Type: format.DataPageV2,
			DataPageHeaderV2: &format.DataPageHeaderV2{
				NumValues:                  int32(len(defSlice)),
				NumNulls:                   int32(len(defSlice) - nonNull),
				NumRows:                    int32(countRows(repSlice)),
				Encoding:                   enc,
				DefinitionLevelsByteLength: int32(defBytes),
				RepetitionLevelsByteLength: int32(repBytes),
			},
		}
		prepared, err := w.preparePage(pageBody, header)
		if err != nil {
			return nil, err
		}
		pages = append(pages, prepared)

		nonNullBefore += nonNull
		start = end
	}
	return pages, nil
}

// encodeV2Body assembles a DataPageV2 body: RLE-encoded repetition levels,
// RLE-encoded definition levels, then the already-encoded values. V2 level
// sections carry no length prefix of their own, since DataPageHeaderV2
// records each section's byte length directly.
func (w *ColumnWriter) encodeV2Body(repLevels, defLevels []int32, values []byte) (repBytes, defBytes int, out []byte, err error) {
	if w.schema.MaxRepetitionLevel > 0 {
		width := uint(bits.MaxLen32([]int32{int32(w.schema.MaxRepetitionLevel)}))
		enc, err := rle.Encode(nil, repLevels, width)
		if err != nil {
			return 0, 0, nil, newError("encodeV2Body", Format, err).withColumn(w.schema.String())
		}
		out = append(out, enc...)
		repBytes = len(enc)
	}
	if w.schema.MaxDefinitionLevel > 0 {
		width := uint(bits.MaxLen32([]int32{int32(w.schema.MaxDefinitionLevel)}))
		enc, err := rle.Encode(nil, defLevels, width)
		if err != nil {
			return 0, 0, nil, newError("encodeV2Body", Format, err).withColumn(w.schema.String())
		}
		out = append(out, enc...)
		defBytes = len(enc)
	}
	out = append(out, values...)
	return repBytes, defBytes, out, nil
}

func (w *ColumnWriter) preparePage(body []byte, header *format.PageHeader) (*preparedPage, error) {
	compressed, err := w.codec.Encode(nil, body)
	if err != nil {
		return nil, newError("preparePage", Compression, err).withColumn(w.schema.String())
	}
	header.UncompressedPageSize = int32(len(body))
	header.CompressedPageSize = int32(len(compressed))
	crc := int32(pageCRC(compressed))
	header.CRC = &crc
	return &preparedPage{header: header, compressed: compressed, uncompressedSize: len(body)}, nil
}

func (w *ColumnWriter) buildMetaData(path []string, enc format.Encoding, useDict bool, out *columnChunkOutput) *format.ColumnMetaData {
	var totalUncompressed, totalCompressed int64
	if out.dictionaryPage != nil {
		totalUncompressed += int64(out.dictionaryPage.header.UncompressedPageSize)
		totalCompressed += int64(out.dictionaryPage.header.CompressedPageSize)
	}
	for _, p := range out.dataPages {
		totalUncompressed += int64(p.header.UncompressedPageSize)
		totalCompressed += int64(p.header.CompressedPageSize)
	}

	encodings := []format.Encoding{enc}
	if useDict {
		encodings = append(encodings, format.Plain)
	}

	var stats *format.Statistics
	if w.config.WriteStatistics {
		min, max := w.bounds()
		nullCount := w.nullCount
		stats = &format.Statistics{MinValue: min, MaxValue: max, NullCount: &nullCount}
	}

	return &format.ColumnMetaData{
		Type:                  w.schema.Type,
		Encodings:             encodings,
		PathInSchema:          path,
		Codec:                 w.codecCode,
		NumValues:             int64(len(w.defLevels)),
		TotalUncompressedSize: totalUncompressed,
		TotalCompressedSize:   totalCompressed,
		Statistics:            stats,
	}
}

func (w *ColumnWriter) bounds() (min, max []byte) {
	n := valuesLen(w.values)
	if n == 0 {
		return nil, nil
	}
	typ, typeLength := w.schema.Type, int(w.schema.TypeLength)
	min = plainValueBytes(typ, typeLength, w.values, 0)
	max = min
	for i := 1; i < n; i++ {
		v := plainValueBytes(typ, typeLength, w.values, i)
		if compareValues(typ, v, min) < 0 {
			min = v
		}
		if compareValues(typ, v, max) > 0 {
			max = v
		}
	}
	return min, max
}

func dictLen(indexes []int32) int {
	max := int32(-1)
	for _, i := range indexes {
		if i > max {
			max = i
		}
	}
	return int(max) + 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// appendValues appends src's elements onto dst, both typed value slices of
// the same element kind as produced by decodePlainValues.
func appendValues(dst, src interface{}) (interface{}, error) {
	if dst == nil {
		return cloneValues(src), nil
	}
	switch s := src.(type) {
	case []bool:
		return append(dst.([]bool), s...), nil
	case []int32:
		return append(dst.([]int32), s...), nil
	case []int64:
		return append(dst.([]int64), s...), nil
	case [][12]byte:
		return append(dst.([][12]byte), s...), nil
	case []float32:
		return append(dst.([]float32), s...), nil
	case []float64:
		return append(dst.([]float64), s...), nil
	case [][]byte:
		return append(dst.([][]byte), s...), nil
	default:
		return dst, fmt.Errorf("unsupported value type %T", src)
	}
}

func cloneValues(src interface{}) interface{} {
	switch s := src.(type) {
	case []bool:
		return append([]bool(nil), s...)
	case []int32:
		return append([]int32(nil), s...)
	case []int64:
		return append([]int64(nil), s...)
	case [][12]byte:
		return append([][12]byte(nil), s...)
	case []float32:
		return append([]float32(nil), s...)
	case []float64:
		return append([]float64(nil), s...)
	case [][]byte:
		return append([][]byte(nil), s...)
	default:
		return src
	}
}

func sliceValues(values interface{}, lo, hi int) interface{} {
	switch v := values.(type) {
	case []bool:
		return v[lo:hi]
	case []int32:
		return v[lo:hi]
	case []int64:
		return v[lo:hi]
	case [][12]byte:
		return v[lo:hi]
	case []float32:
		return v[lo:hi]
	case []float64:
		return v[lo:hi]
	case [][]byte:
		return v[lo:hi]
	default:
		return values
	}
}

func encodePlainValuesFromDictionary(typ PhysicalType, typeLength int, d *Dictionary) ([]byte, error) {
	var out []byte
	for i := 0; i < d.Len(); i++ {
		if typ == ByteArray {
			// BYTE_ARRAY entries are stored without their length prefix.
			out, _ = encodePlainValues(typ, typeLength, out, [][]byte{d.Index(int32(i))})
			continue
		}
		out = append(out, d.Index(int32(i))...)
	}
	return out, nil
}
