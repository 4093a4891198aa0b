// Package rle implements the RLE / bit-packed hybrid encoding used for
// definition levels, repetition levels, and (wrapped by the dict package)
// dictionary indexes.
//
// The wire format is a sequence of runs. Each run starts with a ULEB128
// header (count<<1)|mode:
//
//   - mode 0 (RLE): count is the number of repetitions of a single value,
//     stored in the body as ceil(bitWidth/8) little-endian bytes.
//   - mode 1 (bit-packed): count is the number of groups of 8 values; the
//     body holds count*8 values packed at the configured bit width.
package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

type Encoding struct{ BitWidth uint }

func (Encoding) Encoding() format.Encoding { return format.RLE }
func (Encoding) String() string            { return "RLE" }

// Encode serializes src (values within [0, 2^bitWidth)) as an RLE/bit-pack
// hybrid stream, appending to dst.
func Encode(dst []byte, src []int32, bitWidth uint) ([]byte, error) {
	if bitWidth == 0 || bitWidth > 32 {
		return dst, fmt.Errorf("rle: %w: bit width %d out of range", encoding.ErrInvalidArgument, bitWidth)
	}
	byteWidth := bits.ByteCount(bitWidth)

	i := 0
	for i < len(src) {
		runStart := i
		for i+1 < len(src) && src[i+1] == src[runStart] {
			i++
		}
		runLen := i - runStart + 1

		if runLen >= 8 {
			// RLE run.
			dst = bits.AppendUvarint(dst, uint64(runLen)<<1)
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(src[runStart]))
			dst = append(dst, buf[:byteWidth]...)
			i++
			continue
		}

		// Accumulate a bit-packed literal run until a long enough repeat is
		// found or the input ends; group size must be a multiple of 8.
		litStart := runStart
		j := runStart
		for j < len(src) {
			k := j
			for k+1 < len(src) && src[k+1] == src[j] {
				k++
			}
			if k-j+1 >= 8 {
				break
			}
			j = k + 1
		}
		// The decoder returns every slot of a bit-packed group, so a literal
		// that does not end the input is extended over the following values
		// up to a multiple of 8 instead of being zero-padded.
		if rem := (j - litStart) % 8; rem != 0 && j < len(src) {
			j += 8 - rem
			if j > len(src) {
				j = len(src)
			}
		}
		lit := src[litStart:j]
		groups := (len(lit) + 7) / 8
		padded := make([]int32, groups*8)
		copy(padded, lit)

		dst = bits.AppendUvarint(dst, uint64(groups)<<1|1)
		w := bits.NewWriter(nil)
		for _, v := range padded {
			w.WriteBits(uint32(v), bitWidth)
		}
		w.Flush()
		dst = append(dst, w.Bytes()...)
		i = j
	}
	return dst, nil
}

// Decode reads count values from an RLE/bit-pack hybrid stream at the given
// bit width, appending them to dst.
func Decode(dst []int32, src []byte, count int, bitWidth uint) ([]int32, error) {
	if bitWidth == 0 {
		for i := 0; i < count; i++ {
			dst = append(dst, 0)
		}
		return dst, nil
	}
	if bitWidth > 32 {
		return dst, fmt.Errorf("rle: %w: bit width %d out of range", encoding.ErrInvalidArgument, bitWidth)
	}
	byteWidth := bits.ByteCount(bitWidth)

	remaining := count
	for remaining > 0 {
		header, n := binary.Uvarint(src)
		if n <= 0 {
			return dst, encoding.ErrTooShort
		}
		src = src[n:]

		mode := header & 1
		runLen := int(header >> 1)

		if mode == 0 {
			if byteWidth > len(src) {
				return dst, encoding.ErrTooShort
			}
			var buf [4]byte
			copy(buf[:], src[:byteWidth])
			v := int32(binary.LittleEndian.Uint32(buf[:]))
			src = src[byteWidth:]
			for i := 0; i < runLen && remaining > 0; i++ {
				dst = append(dst, v)
				remaining--
			}
			continue
		}

		values := runLen * 8
		need := bits.ByteCount(uint(values) * bitWidth)
		if need > len(src) {
			return dst, encoding.ErrTooShort
		}
		r := bits.NewReader(src[:need])
		for i := 0; i < values; i++ {
			v, err := r.ReadBits(bitWidth)
			if err != nil {
				return dst, encoding.ErrTooShort
			}
			if remaining > 0 {
				dst = append(dst, int32(v))
				remaining--
			}
		}
		src = src[need:]
	}
	return dst, nil
}
