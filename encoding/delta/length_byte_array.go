package delta

import (
	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
)

type LengthByteArrayEncoding struct{}

func (LengthByteArrayEncoding) Encoding() format.Encoding { return format.DeltaLengthByteArray }
func (LengthByteArrayEncoding) String() string            { return "DELTA_LENGTH_BYTE_ARRAY" }

// EncodeByteArray writes the DELTA_BINARY_PACKED-encoded lengths of every
// value, followed by the concatenated raw value bytes.
func EncodeByteArray(dst []byte, src [][]byte) []byte {
	lengths := make([]int32, len(src))
	for i, v := range src {
		lengths[i] = int32(len(v))
	}
	dst = EncodeInt32(dst, lengths)
	for _, v := range src {
		dst = append(dst, v...)
	}
	return dst
}

func DecodeByteArray(dst [][]byte, src []byte, count int) ([][]byte, error) {
	lengths, n, err := DecodeInt32N(nil, src)
	if err != nil {
		return dst, err
	}
	if len(lengths) < count {
		return dst, encoding.ErrTooShort
	}
	lengths = lengths[:count]
	src = src[n:]

	off := 0
	for _, l := range lengths {
		if l < 0 || off+int(l) > len(src) {
			return dst, encoding.ErrTooLarge
		}
		v := make([]byte, l)
		copy(v, src[off:off+int(l)])
		dst = append(dst, v)
		off += int(l)
	}
	return dst, nil
}
