// Package delta implements the DELTA_BINARY_PACKED, DELTA_LENGTH_BYTE_ARRAY
// and DELTA_BYTE_ARRAY page encodings.
//
// DELTA_BINARY_PACKED splits a run of values into fixed-size blocks, each
// further split into mini-blocks. Every block stores the minimum delta
// within it and, for each mini-block, the bit width needed to pack
// (delta - minDelta) for every value in that mini-block. This lets runs of
// nearly-monotonic integers (the common case for INT32/INT64 columns) pack
// down to a few bits per value.
package delta

import (
	"fmt"

	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

const (
	blockSize             = 128
	numMiniBlocks         = 4
	miniBlockSize         = blockSize / numMiniBlocks
	maxSupportedBlockSize = 1 << 16
)

type BinaryPackedEncoding struct{}

func (BinaryPackedEncoding) Encoding() format.Encoding { return format.DeltaBinaryPacked }
func (BinaryPackedEncoding) String() string            { return "DELTA_BINARY_PACKED" }

func EncodeInt32(dst []byte, src []int32) []byte {
	v64 := make([]int64, len(src))
	for i, v := range src {
		v64[i] = int64(v)
	}
	return encodeBinaryPacked(dst, v64)
}

func DecodeInt32(dst []int32, src []byte) ([]int32, error) {
	v64, _, err := decodeBinaryPackedN(nil, src)
	if err != nil {
		return dst, err
	}
	for _, v := range v64 {
		dst = append(dst, int32(v))
	}
	return dst, nil
}

func EncodeInt64(dst []byte, src []int64) []byte {
	return encodeBinaryPacked(dst, src)
}

func DecodeInt64(dst []int64, src []byte) ([]int64, error) {
	return decodeBinaryPacked(dst, src)
}

// DecodeInt32N behaves like DecodeInt32 but also reports how many bytes of
// src were consumed, so callers that pack additional data after the
// DELTA_BINARY_PACKED block (DELTA_LENGTH_BYTE_ARRAY's raw value bytes, for
// instance) know where the block ends.
func DecodeInt32N(dst []int32, src []byte) ([]int32, int, error) {
	v64, n, err := decodeBinaryPackedN(nil, src)
	if err != nil {
		return dst, n, err
	}
	for _, v := range v64 {
		dst = append(dst, int32(v))
	}
	return dst, n, nil
}

func encodeBinaryPacked(dst []byte, src []int64) []byte {
	dst = bits.AppendUvarint(dst, blockSize)
	dst = bits.AppendUvarint(dst, numMiniBlocks)
	dst = bits.AppendUvarint(dst, uint64(len(src)))
	if len(src) == 0 {
		dst = bits.AppendVarint(dst, 0)
		return dst
	}
	dst = bits.AppendVarint(dst, src[0])

	deltas := make([]int64, 0, blockSize)
	for i := 1; i < len(src); i++ {
		deltas = append(deltas, src[i]-src[i-1])
		if len(deltas) == blockSize || i == len(src)-1 {
			dst = encodeBlock(dst, deltas)
			deltas = deltas[:0]
		}
	}
	return dst
}

func encodeBlock(dst []byte, deltas []int64) []byte {
	padded := make([]int64, blockSize)
	copy(padded, deltas)

	minDelta := padded[0]
	for _, d := range padded[1:len(deltas)] {
		if d < minDelta {
			minDelta = d
		}
	}
	for i := range padded {
		padded[i] -= minDelta
	}

	dst = bits.AppendVarint(dst, minDelta)

	// Mini-blocks past the last delta keep bit width 0 and get no body, since
	// the decoder stops reading once it has produced the final value.
	used := (len(deltas) + miniBlockSize - 1) / miniBlockSize
	bitWidths := make([]byte, numMiniBlocks)
	for m := 0; m < used; m++ {
		block := padded[m*miniBlockSize : (m+1)*miniBlockSize]
		max := int64(0)
		for _, v := range block {
			if v > max {
				max = v
			}
		}
		bitWidths[m] = byte(bits.MaxLen64([]int64{max}))
	}
	dst = append(dst, bitWidths...)

	for m := 0; m < numMiniBlocks; m++ {
		width := uint(bitWidths[m])
		if width == 0 {
			continue
		}
		block := padded[m*miniBlockSize : (m+1)*miniBlockSize]
		w := bits.NewWriter(nil)
		for _, v := range block {
			w.WriteBits(uint32(v), width)
		}
		w.Flush()
		dst = append(dst, w.Bytes()...)
	}
	return dst
}

func decodeBinaryPacked(dst []int64, src []byte) ([]int64, error) {
	dst, _, err := decodeBinaryPackedN(dst, src)
	return dst, err
}

// decodeBinaryPackedN decodes a DELTA_BINARY_PACKED block and reports the
// number of leading bytes of src it consumed.
func decodeBinaryPackedN(dst []int64, src []byte) ([]int64, int, error) {
	total := len(src)
	blk, miniBlocks, totalValues, firstValue, n, err := decodeHeader(src)
	if err != nil {
		return dst, 0, err
	}
	src = src[n:]
	consumed := n

	if blk <= 0 || blk%int64(miniBlocks) != 0 || blk > maxSupportedBlockSize {
		return dst, consumed, fmt.Errorf("delta: %w: invalid block size %d", encoding.ErrInvalidArgument, blk)
	}
	if totalValues < 0 {
		return dst, consumed, fmt.Errorf("delta: %w: negative total value count", encoding.ErrInvalidArgument)
	}
	miniSize := int(blk) / miniBlocks

	if totalValues == 0 {
		return dst, consumed, nil
	}
	dst = append(dst, firstValue)

	remaining := int(totalValues) - 1
	prev := firstValue

	for remaining > 0 {
		minDelta, n, err := decodeVarint(src)
		if err != nil {
			return dst, consumed, err
		}
		src = src[n:]
		consumed += n

		if miniBlocks > len(src) {
			return dst, consumed, encoding.ErrTooShort
		}
		widths := make([]int, miniBlocks)
		for i := 0; i < miniBlocks; i++ {
			widths[i] = int(src[i])
		}
		src = src[miniBlocks:]
		consumed += miniBlocks

		for m := 0; m < miniBlocks && remaining > 0; m++ {
			width := uint(widths[m])
			count := miniSize
			if width == 0 {
				for i := 0; i < count && remaining > 0; i++ {
					prev = prev + minDelta
					dst = append(dst, prev)
					remaining--
				}
				continue
			}
			need := bits.ByteCount(uint(count) * width)
			if need > len(src) {
				return dst, consumed, encoding.ErrTooShort
			}
			r := bits.NewReader(src[:need])
			for i := 0; i < count; i++ {
				v, rerr := r.ReadBits(width)
				if rerr != nil {
					return dst, consumed, encoding.ErrTooShort
				}
				if remaining > 0 {
					prev = prev + minDelta + int64(v)
					dst = append(dst, prev)
					remaining--
				}
			}
			src = src[need:]
			consumed += need
		}
	}
	_ = total
	return dst, consumed, nil
}

func decodeHeader(src []byte) (blockSize int64, numMiniBlocks int, totalValues int64, firstValue int64, n int, err error) {
	bs, n1 := decodeUvarint(src)
	if n1 <= 0 {
		return 0, 0, 0, 0, 0, encoding.ErrTooShort
	}
	nb, n2 := decodeUvarint(src[n1:])
	if n2 <= 0 {
		return 0, 0, 0, 0, 0, encoding.ErrTooShort
	}
	tv, n3 := decodeUvarint(src[n1+n2:])
	if n3 <= 0 {
		return 0, 0, 0, 0, 0, encoding.ErrTooShort
	}
	fv, n4, ferr := decodeVarint(src[n1+n2+n3:])
	if ferr != nil {
		return 0, 0, 0, 0, 0, ferr
	}
	if nb == 0 {
		return 0, 0, 0, 0, 0, fmt.Errorf("delta: %w: zero mini-blocks per block", encoding.ErrInvalidArgument)
	}
	return int64(bs), int(nb), int64(tv), fv, n1 + n2 + n3 + n4, nil
}

func decodeUvarint(src []byte) (uint64, int) {
	v, n := uvarint(src)
	return v, n
}

func decodeVarint(src []byte) (int64, int, error) {
	v, n := varint(src)
	if n <= 0 {
		return 0, 0, encoding.ErrTooShort
	}
	return v, n, nil
}

// uvarint/varint mirror encoding/binary's decoders but are kept local so the
// header-parsing error paths stay consistent with encoding.ErrTooShort
// rather than encoding/binary's own sentinel errors.
func uvarint(buf []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, b := range buf {
		if i == 10 {
			return 0, -(i + 1)
		}
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, -(i + 1)
			}
			return x | uint64(b)<<s, i + 1
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0
}

func varint(buf []byte) (int64, int) {
	ux, n := uvarint(buf)
	if n <= 0 {
		return 0, n
	}
	x := int64(ux >> 1)
	if ux&1 != 0 {
		x = ^x
	}
	return x, n
}
