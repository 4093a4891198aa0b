package carquet

import (
	"fmt"

	"github.com/Vitruves/carquet-sub000/encoding/bytestreamsplit"
	"github.com/Vitruves/carquet-sub000/encoding/delta"
	"github.com/Vitruves/carquet-sub000/encoding/plain"
	"github.com/Vitruves/carquet-sub000/format"
)

// decodePlainValues decodes count PLAIN-encoded values of the given physical
// type from src into the matching typed Go slice.
func decodePlainValues(typ PhysicalType, typeLength int, src []byte, count int) (interface{}, error) {
	switch typ {
	case Boolean:
		return plain.DecodeBoolean(nil, src, count)
	case Int32:
		return plain.DecodeInt32(nil, src, count)
	case Int64:
		return plain.DecodeInt64(nil, src, count)
	case Int96:
		return plain.DecodeInt96(nil, src, count)
	case Float:
		return plain.DecodeFloat(nil, src, count)
	case Double:
		return plain.DecodeDouble(nil, src, count)
	case ByteArray:
		return plain.DecodeByteArray(nil, src, count)
	case FixedLenByteArray:
		return plain.DecodeFixedLenByteArray(nil, src, count, typeLength)
	default:
		return nil, fmt.Errorf("unsupported physical type %s", typ)
	}
}

// decodeTypedValues decodes count values encoded with one of the
// non-PLAIN, non-dictionary page encodings.
func decodeTypedValues(typ PhysicalType, typeLength int, enc format.Encoding, src []byte, count int) (interface{}, error) {
	switch enc {
	case format.DeltaBinaryPacked:
		switch typ {
		case Int32:
			return delta.DecodeInt32(nil, src)
		case Int64:
			return delta.DecodeInt64(nil, src)
		default:
			return nil, fmt.Errorf("DELTA_BINARY_PACKED does not support physical type %s", typ)
		}
	case format.DeltaLengthByteArray:
		if typ != ByteArray {
			return nil, fmt.Errorf("DELTA_LENGTH_BYTE_ARRAY does not support physical type %s", typ)
		}
		return delta.DecodeByteArray(nil, src, count)
	case format.DeltaByteArray:
		if typ != ByteArray && typ != FixedLenByteArray {
			return nil, fmt.Errorf("DELTA_BYTE_ARRAY does not support physical type %s", typ)
		}
		return delta.DecodeSharedPrefixByteArray(nil, src, count)
	case format.ByteStreamSplit:
		switch typ {
		case Float:
			return bytestreamsplit.DecodeFloat(nil, src, count)
		case Double:
			return bytestreamsplit.DecodeDouble(nil, src, count)
		default:
			return nil, fmt.Errorf("BYTE_STREAM_SPLIT does not support physical type %s", typ)
		}
	default:
		return nil, fmt.Errorf("unsupported page encoding %s", enc)
	}
}

// encodeValues encodes count values of the column's physical type with a
// non-dictionary encoding, appending to dst.
func encodeValues(typ PhysicalType, typeLength int, enc format.Encoding, dst []byte, values interface{}) ([]byte, error) {
	switch enc {
	case format.Plain:
		return encodePlainValues(typ, typeLength, dst, values)
	case format.DeltaBinaryPacked:
		switch v := values.(type) {
		case []int32:
			return delta.EncodeInt32(dst, v), nil
		case []int64:
			return delta.EncodeInt64(dst, v), nil
		default:
			return dst, fmt.Errorf("DELTA_BINARY_PACKED does not support %T", values)
		}
	case format.DeltaLengthByteArray:
		v, ok := values.([][]byte)
		if !ok {
			return dst, fmt.Errorf("DELTA_LENGTH_BYTE_ARRAY does not support %T", values)
		}
		return delta.EncodeByteArray(dst, v), nil
	case format.DeltaByteArray:
		v, ok := values.([][]byte)
		if !ok {
			return dst, fmt.Errorf("DELTA_BYTE_ARRAY does not support %T", values)
		}
		return delta.EncodeSharedPrefixByteArray(dst, v), nil
	case format.ByteStreamSplit:
		switch v := values.(type) {
		case []float32:
			return bytestreamsplit.EncodeFloat(dst, v), nil
		case []float64:
			return bytestreamsplit.EncodeDouble(dst, v), nil
		default:
			return dst, fmt.Errorf("BYTE_STREAM_SPLIT does not support %T", values)
		}
	default:
		return dst, fmt.Errorf("unsupported page encoding %s", enc)
	}
}

func encodePlainValues(typ PhysicalType, typeLength int, dst []byte, values interface{}) ([]byte, error) {
	switch v := values.(type) {
	case []bool:
		return plain.EncodeBoolean(dst, v), nil
	case []int32:
		return plain.EncodeInt32(dst, v), nil
	case []int64:
		return plain.EncodeInt64(dst, v), nil
	case [][12]byte:
		return plain.EncodeInt96(dst, v), nil
	case []float32:
		return plain.EncodeFloat(dst, v), nil
	case []float64:
		return plain.EncodeDouble(dst, v), nil
	case [][]byte:
		if typ == FixedLenByteArray {
			return plain.EncodeFixedLenByteArray(dst, v, typeLength), nil
		}
		return plain.EncodeByteArray(dst, v), nil
	default:
		return dst, fmt.Errorf("unsupported value type %T for PLAIN encoding", values)
	}
}

// plainValueBytes returns the single-value PLAIN encoding of values[i], used
// to build dictionary entries and statistics bounds. BYTE_ARRAY values are
// returned as their raw bytes, without the PLAIN length prefix.
func plainValueBytes(typ PhysicalType, typeLength int, values interface{}, i int) []byte {
	switch v := values.(type) {
	case []bool:
		return plain.EncodeBoolean(nil, v[i:i+1])
	case []int32:
		return plain.EncodeInt32(nil, v[i:i+1])
	case []int64:
		return plain.EncodeInt64(nil, v[i:i+1])
	case [][12]byte:
		return plain.EncodeInt96(nil, v[i:i+1])
	case []float32:
		return plain.EncodeFloat(nil, v[i:i+1])
	case []float64:
		return plain.EncodeDouble(nil, v[i:i+1])
	case [][]byte:
		if typ == FixedLenByteArray {
			return append([]byte(nil), v[i][:typeLength]...)
		}
		return append([]byte(nil), v[i]...)
	default:
		return nil
	}
}

// valuesLen returns the number of elements in a typed value slice produced
// by decodePlainValues/decodeTypedValues.
func valuesLen(values interface{}) int {
	switch v := values.(type) {
	case []bool:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case [][12]byte:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	case [][]byte:
		return len(v)
	default:
		return 0
	}
}
