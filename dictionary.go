package carquet

import (
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

// Dictionary deduplicates the values written to a dictionary-encoded column
// chunk. Unlike a general parquet implementation keyed by a
// generic Value type, values here are always the PLAIN-encoded
// representation of a single element (fixed width for numeric types, the raw
// bytes without their u32 length prefix for BYTE_ARRAY) — this lets one Dictionary
// implementation serve every physical type using the byte-slice codecs in
// the encoding subpackages, instead of one generic-Value type per
// implementation as in a row-oriented engine.
type Dictionary struct {
	typ     format.Type
	values  [][]byte
	index   map[string]int32
	fixedLen int // 0 for variable-length (BYTE_ARRAY), else element width
}

// NewDictionary creates an empty dictionary for values of the given physical
// type. fixedLen must be the element width for fixed-width types (4 for
// INT32/FLOAT, 8 for INT64/DOUBLE, 12 for INT96, N for FIXED_LEN_BYTE_ARRAY)
// and 0 for BYTE_ARRAY, whose entries vary in length.
func NewDictionary(typ format.Type, fixedLen int) *Dictionary {
	return &Dictionary{typ: typ, index: make(map[string]int32), fixedLen: fixedLen}
}

func (d *Dictionary) Type() format.Type { return d.typ }

func (d *Dictionary) Len() int { return len(d.values) }

// Insert records value (its own copy) if not already present, returning its
// dictionary index either way.
func (d *Dictionary) Insert(value []byte) int32 {
	if i, ok := d.index[string(value)]; ok {
		return i
	}
	cp := append([]byte(nil), value...)
	i := int32(len(d.values))
	d.values = append(d.values, cp)
	d.index[string(cp)] = i
	return i
}

// Index returns the value recorded at i. The caller must not retain the
// returned slice beyond the dictionary's own lifetime.
func (d *Dictionary) Index(i int32) []byte {
	return d.values[i]
}

// Lookup gathers d.Index(indexes[k]) into dst, growing it if necessary.
func (d *Dictionary) Lookup(indexes []int32, dst [][]byte) [][]byte {
	for _, i := range indexes {
		dst = append(dst, d.Index(i))
	}
	return dst
}

// Bounds returns the minimum and maximum of the values referenced by
// indexes, ordered the way the logical-type ordering rules require.
// For BYTE_ARRAY dictionaries that is lexicographic byte order, which is
// also the correct order for UTF8 strings.
func (d *Dictionary) Bounds(indexes []int32) (min, max []byte) {
	if len(indexes) == 0 {
		return nil, nil
	}
	values := make([][]byte, len(indexes))
	for k, i := range indexes {
		values[k] = d.Index(i)
	}
	min, max = bits.MinMaxByteArray(values)
	return min, max
}

// Reset empties the dictionary, ready to receive a new column chunk.
func (d *Dictionary) Reset() {
	d.values = d.values[:0]
	for k := range d.index {
		delete(d.index, k)
	}
}

// EstimatedSize approximates the dictionary's encoded PLAIN page size, used
// to decide when DictionaryAuto should fall back to PLAIN.
func (d *Dictionary) EstimatedSize() int {
	n := 0
	for _, v := range d.values {
		if d.fixedLen > 0 {
			n += d.fixedLen
		} else {
			n += 4 + len(v)
		}
	}
	return n
}
