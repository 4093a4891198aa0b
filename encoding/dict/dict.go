// Package dict implements the dictionary index encoding: PLAIN_DICTIONARY
// and RLE_DICTIONARY both serialize a column's dictionary indexes as a
// single leading byte holding the bit width, followed by an RLE/bit-pack
// hybrid body — PLAIN_DICTIONARY and RLE_DICTIONARY differ only in the
// format.Encoding code recorded in the page header, the wire body is
// identical.
package dict

import (
	"fmt"

	"github.com/Vitruves/carquet-sub000/encoding"
	"github.com/Vitruves/carquet-sub000/encoding/rle"
	"github.com/Vitruves/carquet-sub000/format"
	"github.com/Vitruves/carquet-sub000/internal/bits"
)

type Encoding struct {
	// RLEDictionary selects the format.RLEDictionary code instead of the
	// legacy format.PlainDictionary code; the wire body is unaffected.
	RLEDictionary bool
}

func (e Encoding) Encoding() format.Encoding {
	if e.RLEDictionary {
		return format.RLEDictionary
	}
	return format.PlainDictionary
}

func (e Encoding) String() string {
	if e.RLEDictionary {
		return "RLE_DICTIONARY"
	}
	return "PLAIN_DICTIONARY"
}

// BitWidth returns the smallest bit width that can represent every value in
// [0, dictionarySize).
func BitWidth(dictionarySize int) uint {
	if dictionarySize <= 1 {
		return 0
	}
	return uint(bits.MaxLen32([]int32{int32(dictionarySize - 1)}))
}

// Encode writes the leading bit-width byte followed by the RLE-encoded
// indexes.
func Encode(dst []byte, indexes []int32, dictionarySize int) ([]byte, error) {
	width := BitWidth(dictionarySize)
	if width > 32 {
		return dst, fmt.Errorf("dict: %w: bit width %d out of range", encoding.ErrInvalidArgument, width)
	}
	dst = append(dst, byte(width))
	if width == 0 {
		return dst, nil
	}
	return rle.Encode(dst, indexes, width)
}

// Decode reads the leading bit-width byte and count RLE-encoded indexes.
func Decode(dst []int32, src []byte, count int) ([]int32, error) {
	if len(src) < 1 {
		return dst, encoding.ErrTooShort
	}
	width := uint(src[0])
	if width > 32 {
		return dst, fmt.Errorf("dict: %w: bit width %d out of range", encoding.ErrInvalidArgument, width)
	}
	if width == 0 {
		for i := 0; i < count; i++ {
			dst = append(dst, 0)
		}
		return dst, nil
	}
	return rle.Decode(dst, src[1:], count, width)
}
