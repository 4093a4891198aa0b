package carquet

import (
	"bytes"
	"reflect"
	"testing"
)

// TestBatchReaderProjection verifies that a BatchReader opened over a subset
// of columns (here the single column "name") returns only that column, with
// its values.
func TestBatchReaderProjection(t *testing.T) {
	schema := testFileSchema()

	var buf bytes.Buffer
	fw, err := NewFileWriter(&buf, schema, nil)
	if err != nil {
		t.Fatal(err)
	}
	batch := &Batch{
		Columns:          []string{"id", "name"},
		Values:           []interface{}{[]int32{10, 20}, [][]byte{[]byte("x"), []byte("y")}},
		DefinitionLevels: [][]int32{{0, 0}, {1, 1}},
		RepetitionLevels: [][]int32{{}, {}},
	}
	if err := fw.WriteBatch(batch); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	fr, err := OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	defer fr.Close()

	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatal(err)
	}

	br, err := NewBatchReader(rg, []string{"name"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := br.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Columns) != 1 || got.Columns[0] != "name" {
		t.Fatalf("expected a single projected column \"name\", got %v", got.Columns)
	}
	want := [][]byte{[]byte("x"), []byte("y")}
	if !reflect.DeepEqual(got.Values[0], want) {
		t.Errorf("name values = %v, want %v", got.Values[0], want)
	}
}

func TestBatchReaderUnknownColumn(t *testing.T) {
	schema := testFileSchema()
	var buf bytes.Buffer
	fw, err := NewFileWriter(&buf, schema, nil)
	if err != nil {
		t.Fatal(err)
	}
	batch := &Batch{
		Columns:          []string{"id", "name"},
		Values:           []interface{}{[]int32{1}, [][]byte{[]byte("a")}},
		DefinitionLevels: [][]int32{{0}, {1}},
		RepetitionLevels: [][]int32{{}, {}},
	}
	if err := fw.WriteBatch(batch); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	fr, err := OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	defer fr.Close()
	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewBatchReader(rg, []string{"nonexistent"}, 1); err == nil {
		t.Fatal("expected an error opening a BatchReader over an unknown column")
	}
}
