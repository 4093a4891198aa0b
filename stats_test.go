package carquet

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Vitruves/carquet-sub000/format"
)

func le32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func le64(v int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

func leFloat(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func TestCompareValuesInt32(t *testing.T) {
	if compareValues(Int32, le32(1), le32(2)) >= 0 {
		t.Error("expected 1 < 2")
	}
	if compareValues(Int32, le32(-5), le32(2)) >= 0 {
		t.Error("expected -5 < 2 (signed comparison)")
	}
	if compareValues(Int32, le32(3), le32(3)) != 0 {
		t.Error("expected equal values to compare as 0")
	}
}

func TestCompareValuesInt64(t *testing.T) {
	if compareValues(Int64, le64(10), le64(20)) >= 0 {
		t.Error("expected 10 < 20")
	}
}

func TestCompareValuesFloat(t *testing.T) {
	if compareValues(Float, leFloat(1.5), leFloat(2.5)) >= 0 {
		t.Error("expected 1.5 < 2.5")
	}
}

func TestCompareValuesByteArray(t *testing.T) {
	if compareValues(ByteArray, []byte("apple"), []byte("banana")) >= 0 {
		t.Error("expected apple < banana")
	}
	if compareValues(ByteArray, []byte("ab"), []byte("a")) <= 0 {
		t.Error("expected \"ab\" > \"a\" (prefix is smaller)")
	}
}

func TestCompareValuesBoolean(t *testing.T) {
	if compareValues(Boolean, []byte{0}, []byte{1}) >= 0 {
		t.Error("expected false < true")
	}
	if compareValues(Boolean, []byte{1}, []byte{1}) != 0 {
		t.Error("expected equal booleans to compare as 0")
	}
}

func TestFilterRowGroupsSkipsProvenExcluded(t *testing.T) {
	mkChunk := func(min, max int32) format.ColumnChunk {
		return format.ColumnChunk{
			MetaData: &format.ColumnMetaData{
				Type:         format.Int32,
				PathInSchema: []string{"id"},
				Statistics:   &format.Statistics{MinValue: le32(min), MaxValue: le32(max)},
			},
		}
	}

	f := &FileReader{}
	f.metadata.RowGroups = []format.RowGroup{
		{Columns: []format.ColumnChunk{mkChunk(0, 10)}},
		{Columns: []format.ColumnChunk{mkChunk(100, 200)}},
		{Columns: []format.ColumnChunk{mkChunk(5, 150)}},
	}

	pred := RowGroupPredicate{
		Column: "id",
		// Skip any row group whose minimum value exceeds 50.
		CanSkip: func(typ PhysicalType, min, max []byte) bool {
			lo := int32(binary.LittleEndian.Uint32(min))
			return lo > 50
		},
	}

	kept := f.FilterRowGroups(pred)
	want := []int{0, 2}
	if len(kept) != len(want) {
		t.Fatalf("kept = %v, want %v", kept, want)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Fatalf("kept = %v, want %v", kept, want)
		}
	}
}
