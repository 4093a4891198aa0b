package format_test

import (
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/format"
	"github.com/segmentio/encoding/thrift"
)

func TestMarshalUnmarshalFileMetaData(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	metadata := &format.FileMetaData{
		Version: 1,
		Schema: []format.SchemaElement{
			{
				Name: "hello",
			},
		},
		RowGroups: []format.RowGroup{},
	}

	b, err := thrift.Marshal(protocol, metadata)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.FileMetaData{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(metadata, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", metadata)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestSortKeyValueMetadata(t *testing.T) {
	b := "b"
	a := "a"
	kv := []format.KeyValue{
		{Key: "z", Value: &b},
		{Key: "a", Value: &a},
	}
	format.SortKeyValueMetadata(kv)
	if kv[0].Key != "a" || kv[1].Key != "z" {
		t.Fatalf("not sorted: %+v", kv)
	}
}
