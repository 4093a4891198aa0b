package delta

import (
	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
)

type ByteArrayEncoding struct{}

func (ByteArrayEncoding) Encoding() format.Encoding { return format.DeltaByteArray }
func (ByteArrayEncoding) String() string            { return "DELTA_BYTE_ARRAY" }

// EncodeSharedPrefixByteArray writes, for a run of values that often share a
// leading substring with their predecessor (sorted string columns being the
// common case), the delta-binary-packed shared-prefix lengths, the
// delta-binary-packed suffix lengths, and the concatenated suffix bytes.
func EncodeSharedPrefixByteArray(dst []byte, src [][]byte) []byte {
	prefixes := make([]int32, len(src))
	suffixes := make([]int32, len(src))
	var prev []byte

	for i, v := range src {
		p := commonPrefixLen(prev, v)
		prefixes[i] = int32(p)
		suffixes[i] = int32(len(v) - p)
		prev = v
	}

	dst = EncodeInt32(dst, prefixes)
	dst = EncodeInt32(dst, suffixes)
	for i, v := range src {
		dst = append(dst, v[prefixes[i]:]...)
	}
	return dst
}

func DecodeSharedPrefixByteArray(dst [][]byte, src []byte, count int) ([][]byte, error) {
	prefixes, n, err := DecodeInt32N(nil, src)
	if err != nil {
		return dst, err
	}
	src = src[n:]
	suffixes, n, err := DecodeInt32N(nil, src)
	if err != nil {
		return dst, err
	}
	src = src[n:]

	if len(prefixes) < count || len(suffixes) < count {
		return dst, encoding.ErrTooShort
	}

	off := 0
	var prev []byte
	for i := 0; i < count; i++ {
		p := int(prefixes[i])
		s := int(suffixes[i])
		if p < 0 || s < 0 || p > len(prev) || off+s > len(src) {
			return dst, encoding.ErrTooLarge
		}
		v := make([]byte, p+s)
		copy(v, prev[:p])
		copy(v[p:], src[off:off+s])
		off += s
		dst = append(dst, v)
		prev = v
	}
	return dst, nil
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
