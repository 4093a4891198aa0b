package carquet

import (
	"encoding/binary"
	"math"

	"github.com/Vitruves/carquet-sub000/internal/bits"
)

// compareValues orders two PLAIN-encoded scalar values of the given physical
// type, returning -1, 0 or 1. BYTE_ARRAY and FIXED_LEN_BYTE_ARRAY compare as
// raw bytes (correct for UTF8 and unsigned fixed-width decimals alike; true
// two's-complement decimal ordering is out of scope).
func compareValues(typ PhysicalType, a, b []byte) int {
	switch typ {
	case Boolean:
		av, bv := a[0] != 0, b[0] != 0
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case Int32:
		av := int32(binary.LittleEndian.Uint32(a))
		bv := int32(binary.LittleEndian.Uint32(b))
		return compareOrdered(av, bv)
	case Int64:
		av := int64(binary.LittleEndian.Uint64(a))
		bv := int64(binary.LittleEndian.Uint64(b))
		return compareOrdered(av, bv)
	case Int96:
		var av, bv [12]byte
		copy(av[:], a)
		copy(bv[:], b)
		return bits.CompareInt96(av, bv)
	case Float:
		av := math.Float32frombits(binary.LittleEndian.Uint32(a))
		bv := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return compareOrdered(av, bv)
	case Double:
		av := math.Float64frombits(binary.LittleEndian.Uint64(a))
		bv := math.Float64frombits(binary.LittleEndian.Uint64(b))
		return compareOrdered(av, bv)
	default: // ByteArray, FixedLenByteArray
		return compareBytes(a, b)
	}
}

func compareOrdered[T int32 | int64 | float32 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return compareOrdered(int64(len(a)), int64(len(b)))
}

// RowGroupPredicate decides, from a column's statistics alone, whether a row
// group can be skipped entirely via predicate pushdown using row-group
// min/max statistics. CanSkip must return true only when every row in the
// group is provably excluded; returning false is always safe.
type RowGroupPredicate struct {
	Column string
	// CanSkip receives the physical type and the column's [min, max] bounds
	// for one row group, both PLAIN-encoded, and reports whether the whole
	// group can be skipped.
	CanSkip func(typ PhysicalType, min, max []byte) bool
}

// FilterRowGroups returns the indexes of the row groups in f that cannot be
// proven excluded by every predicate in preds. A row group missing
// statistics for a predicate's column is always kept (pushdown degrades to
// "don't know" rather than silently dropping data).
func (f *FileReader) FilterRowGroups(preds ...RowGroupPredicate) []int {
	kept := make([]int, 0, len(f.metadata.RowGroups))
rowgroups:
	for i, rg := range f.metadata.RowGroups {
		for _, pred := range preds {
			col := findColumnChunk(rg.Columns, pred.Column)
			if col == nil || col.MetaData == nil || col.MetaData.Statistics == nil {
				continue
			}
			st := col.MetaData.Statistics
			min, max := st.MinValue, st.MaxValue
			if min == nil {
				min = st.Min
			}
			if max == nil {
				max = st.Max
			}
			if min == nil || max == nil {
				continue
			}
			if pred.CanSkip(col.MetaData.Type, min, max) {
				continue rowgroups
			}
		}
		kept = append(kept, i)
	}
	return kept
}
