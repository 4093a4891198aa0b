package dict_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/encoding/dict"
)

func TestBitWidth(t *testing.T) {
	cases := []struct {
		size int
		want uint
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {256, 8}, {257, 9},
	}
	for _, c := range cases {
		if got := dict.BitWidth(c.size); got != c.want {
			t.Errorf("BitWidth(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	dictSize := 200
	indexes := make([]int32, 500)
	for i := range indexes {
		indexes[i] = r.Int31n(int32(dictSize))
	}

	enc, err := dict.Encode(nil, indexes, dictSize)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := dict.Decode(nil, enc, len(indexes))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(indexes, dec) {
		t.Fatalf("mismatch:\ngot  %v\nwant %v", dec, indexes)
	}
}

func TestSingleValueDictionaryZeroWidth(t *testing.T) {
	indexes := []int32{0, 0, 0, 0}
	enc, err := dict.Encode(nil, indexes, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 1 {
		t.Fatalf("expected a single bit-width byte, got %d bytes", len(enc))
	}
	dec, err := dict.Decode(nil, enc, len(indexes))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(indexes, dec) {
		t.Fatalf("mismatch: %v", dec)
	}
}
