package rle_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/encoding/rle"
)

func TestRoundTripMixed(t *testing.T) {
	for _, width := range []uint{1, 2, 3, 5, 8, 13} {
		width := width
		t.Run("", func(t *testing.T) {
			r := rand.New(rand.NewSource(int64(width)))
			mask := int32(1)<<width - 1

			var values []int32
			// runs of repeats (triggers RLE mode)
			for i := 0; i < 5; i++ {
				v := r.Int31() & mask
				for j := 0; j < 20; j++ {
					values = append(values, v)
				}
			}
			// scattered values (triggers bit-packed literal mode)
			for i := 0; i < 50; i++ {
				values = append(values, r.Int31()&mask)
			}

			enc, err := rle.Encode(nil, values, width)
			if err != nil {
				t.Fatal(err)
			}
			dec, err := rle.Decode(nil, enc, len(values), width)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(values, dec) {
				t.Fatalf("mismatch at width %d:\ngot  %v\nwant %v", width, dec, values)
			}
		})
	}
}

func TestDecodePartialCount(t *testing.T) {
	values := []int32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	enc, err := rle.Encode(nil, values, 2)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := rle.Decode(nil, enc, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(dec) != 3 {
		t.Fatalf("got %d values, want 3", len(dec))
	}
}

func TestTruncatedInput(t *testing.T) {
	values := []int32{0, 1, 2, 3, 0, 1, 2, 3}
	enc, err := rle.Encode(nil, values, 3)
	if err != nil {
		t.Fatal(err)
	}
	_, err = rle.Decode(nil, enc[:len(enc)-1], len(values), 3)
	if err == nil {
		t.Fatal("expected an error decoding a truncated run")
	}
}
