// Package plain implements the PLAIN page encoding: values are serialized
// back-to-back in their natural binary layout, with no framing beyond a
// length prefix for variable-length byte arrays.
package plain

import (
	"encoding/binary"
	"math"

	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
)

type Encoding struct{}

func (Encoding) Encoding() format.Encoding { return format.Plain }
func (Encoding) String() string            { return "PLAIN" }

// Boolean packs one bit per value, LSB-first within each byte, padding the
// final byte with zero bits.
func EncodeBoolean(dst []byte, src []bool) []byte {
	n := (len(src) + 7) / 8
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	for i, v := range src {
		if v {
			dst[start+i/8] |= 1 << uint(i%8)
		}
	}
	return dst
}

func DecodeBoolean(dst []bool, src []byte, count int) ([]bool, error) {
	if (count+7)/8 > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		dst = append(dst, src[i/8]&(1<<uint(i%8)) != 0)
	}
	return dst, nil
}

func EncodeInt32(dst []byte, src []int32) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[start+4*i:], uint32(v))
	}
	return dst
}

func DecodeInt32(dst []int32, src []byte, count int) ([]int32, error) {
	if 4*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		dst = append(dst, int32(binary.LittleEndian.Uint32(src[4*i:])))
	}
	return dst, nil
}

func EncodeInt64(dst []byte, src []int64) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[start+8*i:], uint64(v))
	}
	return dst
}

func DecodeInt64(dst []int64, src []byte, count int) ([]int64, error) {
	if 8*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		dst = append(dst, int64(binary.LittleEndian.Uint64(src[8*i:])))
	}
	return dst, nil
}

// Int96 values are stored as 12 raw little-endian bytes: 3 u32 words, low
// 64 bits followed by the high 32 bits.
func EncodeInt96(dst []byte, src [][12]byte) []byte {
	for _, v := range src {
		dst = append(dst, v[:]...)
	}
	return dst
}

func DecodeInt96(dst [][12]byte, src []byte, count int) ([][12]byte, error) {
	if 12*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		var v [12]byte
		copy(v[:], src[12*i:12*i+12])
		dst = append(dst, v)
	}
	return dst, nil
}

func EncodeFloat(dst []byte, src []float32) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[start+4*i:], math.Float32bits(v))
	}
	return dst
}

func DecodeFloat(dst []float32, src []byte, count int) ([]float32, error) {
	if 4*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		dst = append(dst, math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:])))
	}
	return dst, nil
}

func EncodeDouble(dst []byte, src []float64) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[start+8*i:], math.Float64bits(v))
	}
	return dst
}

func DecodeDouble(dst []float64, src []byte, count int) ([]float64, error) {
	if 8*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:])))
	}
	return dst, nil
}

// ByteArray values are each framed as a little-endian u32 length followed by
// that many raw bytes.
func EncodeByteArray(dst []byte, src [][]byte) []byte {
	for _, v := range src {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
		dst = append(dst, lenBuf[:]...)
		dst = append(dst, v...)
	}
	return dst
}

func DecodeByteArray(dst [][]byte, src []byte, count int) ([][]byte, error) {
	off := 0
	for i := 0; i < count; i++ {
		if off+4 > len(src) {
			return dst, encoding.ErrTooShort
		}
		n := int(binary.LittleEndian.Uint32(src[off:]))
		off += 4
		if n < 0 || off+n > len(src) {
			return dst, encoding.ErrTooLarge
		}
		// Copy so the returned values don't alias the caller's page buffer.
		v := make([]byte, n)
		copy(v, src[off:off+n])
		dst = append(dst, v)
		off += n
	}
	return dst, nil
}

// FixedLenByteArray values have no length prefix; width comes from the
// schema's type_length.
func EncodeFixedLenByteArray(dst []byte, src [][]byte, width int) []byte {
	for _, v := range src {
		dst = append(dst, v[:width]...)
	}
	return dst
}

func DecodeFixedLenByteArray(dst [][]byte, src []byte, count, width int) ([][]byte, error) {
	if width*count > len(src) {
		return dst, encoding.ErrTooShort
	}
	for i := 0; i < count; i++ {
		v := make([]byte, width)
		copy(v, src[i*width:(i+1)*width])
		dst = append(dst, v)
	}
	return dst, nil
}
