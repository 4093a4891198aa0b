package carquet

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/format"
)

func testFileSchema() *Schema {
	root := &Schema{Name: "root"}
	id := &Schema{Name: "id", Type: Int32, Repetition: format.Required}
	name := &Schema{Name: "name", Type: ByteArray, Repetition: format.Optional, LogicalType: LogicalType{Kind: StringType}}
	root.Add(id)
	root.Add(name)
	root.Compute()
	return root
}

func TestFileWriterReaderRoundTrip(t *testing.T) {
	schema := testFileSchema()

	var buf bytes.Buffer
	fw, err := NewFileWriter(&buf, schema, nil)
	if err != nil {
		t.Fatal(err)
	}

	batch := &Batch{
		Columns: []string{"id", "name"},
		Values: []interface{}{
			[]int32{1, 2, 3, 4, 5},
			[][]byte{[]byte("alice"), []byte("carol"), []byte("dave")},
		},
		DefinitionLevels: [][]int32{
			{0, 0, 0, 0, 0},
			{1, 0, 1, 1, 0},
		},
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
		t.Fatalf("OpenFile: %v", err)
	}
	defer fr.Close()

	if fr.NumRows() != 5 {
		t.Fatalf("NumRows = %d, want 5", fr.NumRows())
	}
	if fr.NumRowGroups() != 1 {
		t.Fatalf("NumRowGroups = %d, want 1", fr.NumRowGroups())
	}

	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatal(err)
	}

	br, err := NewBatchReader(rg, []string{"id", "name"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !br.HasNext() {
		t.Fatal("expected at least one batch")
	}
	got, err := br.Next()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got.Values[0], []int32{1, 2, 3, 4, 5}) {
		t.Errorf("id values = %v, want [1 2 3 4 5]", got.Values[0])
	}
	wantNames := [][]byte{[]byte("alice"), []byte("carol"), []byte("dave")}
	if !reflect.DeepEqual(got.Values[1], wantNames) {
		t.Errorf("name values = %v, want %v", got.Values[1], wantNames)
	}
	if !reflect.DeepEqual(got.DefinitionLevels[1], []int32{1, 0, 1, 1, 0}) {
		t.Errorf("name definition levels = %v, want [1 0 1 1 0]", got.DefinitionLevels[1])
	}
	if got.NumNulls[1] != 2 {
		t.Errorf("name NumNulls = %d, want 2", got.NumNulls[1])
	}
	if br.HasNext() {
		t.Error("expected no more batches after consuming every row")
	}
}

func TestFileWriterMultipleRowGroups(t *testing.T) {
	schema := testFileSchema()

	var buf bytes.Buffer
	fw, err := NewFileWriter(&buf, schema, []WriterOption{RowGroupBytes(1)})
	if err != nil {
		t.Fatal(err)
	}

	writeOne := func(id int32, name []byte) {
		def := []int32{1}
		if name == nil {
			def[0] = 0
		}
		values := [][]byte{}
		if name != nil {
			values = append(values, name)
		}
		batch := &Batch{
			Columns:          []string{"id", "name"},
			Values:           []interface{}{[]int32{id}, values},
			DefinitionLevels: [][]int32{{0}, def},
			RepetitionLevels: [][]int32{{}, {}},
		}
		if err := fw.WriteBatch(batch); err != nil {
			t.Fatal(err)
		}
	}
	writeOne(1, []byte("a"))
	writeOne(2, []byte("b"))
	writeOne(3, nil)

	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	fr, err := OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	defer fr.Close()

	if fr.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", fr.NumRows())
	}
	if fr.NumRowGroups() < 2 {
		t.Fatalf("expected RowGroupBytes(1) to force multiple row groups, got %d", fr.NumRowGroups())
	}

	var allIDs []int32
	for i := 0; i < fr.NumRowGroups(); i++ {
		rg, err := fr.RowGroup(i)
		if err != nil {
			t.Fatal(err)
		}
		br, err := NewBatchReader(rg, []string{"id"}, 1)
		if err != nil {
			t.Fatal(err)
		}
		for br.HasNext() {
			b, err := br.Next()
			if err != nil {
				t.Fatal(err)
			}
			allIDs = append(allIDs, b.Values[0].([]int32)...)
		}
	}
	if !reflect.DeepEqual(allIDs, []int32{1, 2, 3}) {
		t.Errorf("ids across row groups = %v, want [1 2 3]", allIDs)
	}
}
