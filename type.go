package carquet

import "github.com/Vitruves/carquet-sub000/format"

// PhysicalType is one of the eight on-disk value representations parquet
// supports.
type PhysicalType = format.Type

const (
	Boolean           = format.Boolean
	Int32             = format.Int32
	Int64             = format.Int64
	Int96             = format.Int96
	Float             = format.Float
	Double            = format.Double
	ByteArray         = format.ByteArray
	FixedLenByteArray = format.FixedLenByteArray
)

// LogicalKind names the logical type annotations a schema node can carry. The zero
// value, NoLogicalType, means the column carries no annotation and is
// interpreted purely by its physical type.
type LogicalKind int

const (
	NoLogicalType LogicalKind = iota
	StringType
	DateType
	TimeType
	TimestampType
	DecimalType
	IntegerType
	UUIDType
	JSONType
	BSONType
	EnumType
	Float16Type
	ListType
	MapType
)

// TimeUnit is the precision a TIME or TIMESTAMP logical type is stored at.
type TimeUnit int

const (
	Millis TimeUnit = iota
	Micros
	Nanos
)

// LogicalType carries the logical-type annotation for a schema node.
// Only the fields relevant to Kind are meaningful; nested LIST/MAP
// annotations are recorded but not unwrapped into a 3-level group structure
// (deeply nested list/map decoding is out of scope).
type LogicalType struct {
	Kind LogicalKind

	// DecimalType
	Precision int
	Scale     int

	// IntegerType
	BitWidth int
	Signed   bool

	// TimeType / TimestampType
	Unit        TimeUnit
	IsAdjustedUTC bool
}

// convertedType maps a LogicalType to the legacy format.ConvertedType enum
// still written to the footer for readers that predate the LogicalType
// union, so schema trees remain readable by older tooling.
func (l LogicalType) convertedType() (format.ConvertedType, bool) {
	switch l.Kind {
	case StringType:
		return format.UTF8, true
	case DateType:
		return format.Date, true
	case TimeType:
		if l.Unit == Micros {
			return format.TimeMicros, true
		}
		return format.TimeMillis, true
	case TimestampType:
		if l.Unit == Micros {
			return format.TimestampMicros, true
		}
		return format.TimestampMillis, true
	case DecimalType:
		return format.Decimal, true
	case EnumType:
		return format.Enum, true
	case JSONType:
		return format.Json, true
	case BSONType:
		return format.Bson, true
	case ListType:
		return format.List, true
	case MapType:
		return format.Map, true
	case IntegerType:
		return integerConvertedType(l.BitWidth, l.Signed), true
	default:
		return 0, false
	}
}

func integerConvertedType(bitWidth int, signed bool) format.ConvertedType {
	switch {
	case signed && bitWidth == 8:
		return format.Int8
	case signed && bitWidth == 16:
		return format.Int16
	case signed && bitWidth == 32:
		return format.Int32Converted
	case signed && bitWidth == 64:
		return format.Int64Converted
	case !signed && bitWidth == 8:
		return format.Uint8
	case !signed && bitWidth == 16:
		return format.Uint16
	case !signed && bitWidth == 32:
		return format.Uint32
	default:
		return format.Uint64
	}
}
