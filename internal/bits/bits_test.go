package bits_test

import (
	"math/rand"
	"testing"

	"github.com/Vitruves/carquet-sub000/internal/bits"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, width := range []uint{1, 2, 3, 5, 7, 8, 12, 16, 21, 32} {
		width := width
		t.Run("", func(t *testing.T) {
			n := 37
			src := make([]uint32, n)
			r := rand.New(rand.NewSource(int64(width)))
			mask := uint32(1)<<width - 1
			if width == 32 {
				mask = 0xFFFFFFFF
			}
			for i := range src {
				src[i] = r.Uint32() & mask
			}

			packed := make([]byte, bits.ByteCount(width)*n+8)
			srcBytes := make([]byte, 4*n)
			for i, v := range src {
				srcBytes[4*i] = byte(v)
				srcBytes[4*i+1] = byte(v >> 8)
				srcBytes[4*i+2] = byte(v >> 16)
				srcBytes[4*i+3] = byte(v >> 24)
			}

			words := bits.Pack(packed, width, srcBytes, 32)
			if words != n {
				t.Fatalf("packed %d words, want %d", words, n)
			}

			unpacked := make([]byte, 4*n)
			words = bits.Unpack(unpacked, 32, packed, width)
			if words != n {
				t.Fatalf("unpacked %d words, want %d", words, n)
			}

			for i := range src {
				got := uint32(unpacked[4*i]) | uint32(unpacked[4*i+1])<<8 |
					uint32(unpacked[4*i+2])<<16 | uint32(unpacked[4*i+3])<<24
				if got != src[i] {
					t.Fatalf("value %d: got %d want %d", i, got, src[i])
				}
			}
		})
	}
}

func TestBitReaderWriterRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	values := make([]uint32, 200)
	widths := make([]uint, 200)
	for i := range values {
		w := uint(1 + r.Intn(24))
		widths[i] = w
		values[i] = r.Uint32() & (1<<w - 1)
	}

	w := bits.NewWriter(nil)
	for i, v := range values {
		w.WriteBits(v, widths[i])
	}
	w.Flush()

	br := bits.NewReader(w.Bytes())
	for i, want := range values {
		got, err := br.ReadBits(widths[i])
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("value %d: got %d want %d", i, got, want)
		}
	}
}

func TestMinMaxInt32(t *testing.T) {
	min, max := bits.MinMaxInt32([]int32{3, -1, 9, 4})
	if min != -1 || max != 9 {
		t.Fatalf("got min=%d max=%d", min, max)
	}
}

func TestCompareInt96(t *testing.T) {
	var a, b [12]byte
	a[0] = 1
	b[0] = 2
	if bits.CompareInt96(a, b) >= 0 {
		t.Fatal("expected a < b")
	}
	if bits.CompareInt96(a, a) != 0 {
		t.Fatal("expected equal")
	}
}
