package delta_test

import (
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/encoding/delta"
)

func TestLengthByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte("world"),
		[]byte("a longer value than the others"),
	}
	enc := delta.EncodeByteArray(nil, values)
	dec, err := delta.DecodeByteArray(nil, enc, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if !reflect.DeepEqual(values[i], dec[i]) {
			t.Fatalf("value %d: got %q want %q", i, dec[i], values[i])
		}
	}
}

func TestDeltaByteArraySharedPrefixRoundTrip(t *testing.T) {
	values := [][]byte{
		[]byte("apple"),
		[]byte("application"),
		[]byte("apply"),
		[]byte("banana"),
		[]byte(""),
		[]byte("band"),
	}
	enc := delta.EncodeSharedPrefixByteArray(nil, values)
	dec, err := delta.DecodeSharedPrefixByteArray(nil, enc, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if !reflect.DeepEqual(values[i], dec[i]) {
			t.Fatalf("value %d: got %q want %q", i, dec[i], values[i])
		}
	}
}
