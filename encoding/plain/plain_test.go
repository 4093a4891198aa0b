package plain_test

import (
	"reflect"
	"testing"

	"github.com/Vitruves/carquet-sub000/encoding/plain"
	"github.com/Vitruves/carquet-sub000/internal/quick"
)

func TestInt32RoundTrip(t *testing.T) {
	err := quick.Check(func(values []int32) bool {
		enc := plain.EncodeInt32(nil, values)
		dec, err := plain.DecodeInt32(nil, enc, len(values))
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

func TestInt64RoundTrip(t *testing.T) {
	err := quick.Check(func(values []int64) bool {
		enc := plain.EncodeInt64(nil, values)
		dec, err := plain.DecodeInt64(nil, enc, len(values))
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
		enc := plain.EncodeDouble(nil, values)
		dec, err := plain.DecodeDouble(nil, enc, len(values))
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

func TestByteArrayRoundTrip(t *testing.T) {
	err := quick.Check(func(values [][]byte) bool {
		enc := plain.EncodeByteArray(nil, values)
		dec, err := plain.DecodeByteArray(nil, enc, len(values))
		if err != nil {
			t.Error(err)
			return false
		}
		if len(dec) != len(values) {
			return false
		}
		for i := range values {
			if !reflect.DeepEqual(values[i], dec[i]) && !(len(values[i]) == 0 && len(dec[i]) == 0) {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestByteArrayTruncated(t *testing.T) {
	enc := plain.EncodeByteArray(nil, [][]byte{[]byte("hello")})
	_, err := plain.DecodeByteArray(nil, enc[:len(enc)-1], 1)
	if err == nil {
		t.Fatal("expected an error decoding a truncated byte array page")
	}
}

func TestBooleanRoundTrip(t *testing.T) {
	values := []bool{true, false, false, true, true, true, false, false, true}
	enc := plain.EncodeBoolean(nil, values)
	dec, err := plain.DecodeBoolean(nil, enc, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(values, dec) {
		t.Fatalf("got %v want %v", dec, values)
	}
}
