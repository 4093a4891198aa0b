// Package encoding defines the generic APIs implemented by parquet page
// encodings and the errors they share.
//
// Every encoding in a subpackage works directly against byte slices: given a
// decoded/encoded value buffer, Encode appends the page-encoded bytes to dst
// and Decode appends the decoded values to dst, both returning the grown
// slice the way append does. None of them retain the input after returning.
package encoding

import (
	"errors"
	"fmt"

	"github.com/Vitruves/carquet-sub000/format"
)

// ErrTooShort is returned when a page body ends before the expected number
// of values has been decoded.
var ErrTooShort = errors.New("encoding: input buffer is too short")

// ErrTooLarge is returned when a length-prefixed value claims a size beyond
// the remaining bytes in the page body.
var ErrTooLarge = errors.New("encoding: length prefix exceeds buffer size")

// ErrInvalidArgument is returned for malformed configuration such as a
// negative or nonsensical bit width, count, or length.
var ErrInvalidArgument = errors.New("encoding: invalid argument")

// Encoding identifies the wire encoding implemented by a subpackage and maps
// it back to the format.Encoding enum stored in page/column metadata.
type Encoding interface {
	// Encoding returns the format.Encoding code this encoding serializes to.
	Encoding() format.Encoding
	// String returns a human-readable encoding name.
	String() string
}

// Error wraps an error encountered decoding or encoding a specific physical
// type with context about which encoding and type were involved.
type Error struct {
	Encoding format.Encoding
	Type     format.Type
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Encoding, e.Type, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(enc format.Encoding, typ format.Type, err error) error {
	return &Error{Encoding: enc, Type: typ, Err: err}
}
