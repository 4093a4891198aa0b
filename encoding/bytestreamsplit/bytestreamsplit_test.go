package bytestreamsplit_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/encoding/bytestreamsplit"
	"github.com/Vitruves/carquet-sub000/internal/quick"
)

func TestFloatRoundTrip(t *testing.T) {
	err := quick.Check(func(values []float32) bool {
		enc := bytestreamsplit.EncodeFloat(nil, values)
		dec, err := bytestreamsplit.DecodeFloat(nil, enc, len(values))
		if err != nil {
			t.Error(err)
			return false
		}
		return reflect.DeepEqual(values, dec) || (len(values) == 0 && len(dec) == 0)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	err := quick.Check(func(values []float64) bool {
		enc := bytestreamsplit.EncodeDouble(nil, values)
		dec, err := bytestreamsplit.DecodeDouble(nil, enc, len(values))
		if err != nil {
			t.Error(err)
			return false
		}
		return reflect.DeepEqual(values, dec) || (len(values) == 0 && len(dec) == 0)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlaneLayout(t *testing.T) {
	values := []float32{1, 2, 3, 4}
	enc := bytestreamsplit.EncodeFloat(nil, values)
	if len(enc) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(enc))
	}
	n := len(values)
	for i, v := range values {
		bits := math.Float32bits(v)
		for k := 0; k < 4; k++ {
			if enc[i+k*n] != byte(bits>>(8*k)) {
				t.Fatalf("value %d plane %d: byte mismatch", i, k)
			}
		}
	}
}
