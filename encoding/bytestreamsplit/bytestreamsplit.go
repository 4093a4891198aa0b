// Package bytestreamsplit implements the BYTE_STREAM_SPLIT encoding: each
// value's N bytes are scattered across N planes of length count, byte i of
// every value landing in plane i. Floating point columns
// compress better this way since the planes holding the low-order mantissa
// bytes look like noise but the high-order exponent/sign bytes are highly
// repetitive.
package bytestreamsplit

import (
	"encoding/binary"
	"math"

	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
)

type Encoding struct{}

func (Encoding) Encoding() format.Encoding { return format.ByteStreamSplit }
func (Encoding) String() string            { return "BYTE_STREAM_SPLIT" }

func EncodeFloat(dst []byte, src []float32) []byte {
	n := len(src)
	start := len(dst)
	dst = append(dst, make([]byte, 4*n)...)
	buf := dst[start:]
	for i, v := range src {
		bits := math.Float32bits(v)
		buf[i] = byte(bits)
		buf[i+n] = byte(bits >> 8)
		buf[i+2*n] = byte(bits >> 16)
		buf[i+3*n] = byte(bits >> 24)
	}
	return dst
}

func DecodeFloat(dst []float32, src []byte, count int) ([]float32, error) {
	if 4*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		bits := uint32(src[i]) | uint32(src[i+count])<<8 |
			uint32(src[i+2*count])<<16 | uint32(src[i+3*count])<<24
		dst = append(dst, math.Float32frombits(bits))
	}
	return dst, nil
}

func EncodeDouble(dst []byte, src []float64) []byte {
	n := len(src)
	start := len(dst)
	dst = append(dst, make([]byte, 8*n)...)
	buf := dst[start:]
	for i, v := range src {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		for k := 0; k < 8; k++ {
			buf[i+k*n] = b[k]
		}
	}
	return dst
}

func DecodeDouble(dst []float64, src []byte, count int) ([]float64, error) {
	if 8*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		var b [8]byte
		for k := 0; k < 8; k++ {
			b[k] = src[i+k*count]
		}
		dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(b[:])))
	}
	return dst, nil
}
