package carquet

import (
	"fmt"
	"strings"

	"github.com/Vitruves/carquet-sub000/format"
)

// Schema is a node in the schema tree of a parquet file. Leaf
// nodes (no Children) map to a physical column; group nodes exist purely to
// namespace their descendants. Computed fields (MaxRepetitionLevel,
// MaxDefinitionLevel, Path) are filled in by Compute once the tree is fully
// built.
//
// Unlike a general parquet implementation, Schema does not unwrap the
// 3-level LIST/MAP group convention into element/key_value wrapper nodes:
// a column annotated ListType or MapType is exposed as an ordinary group
// whose children are read positionally, matching the reduced scope of this
// package (deeply nested list/map decoding is out of scope).
type Schema struct {
	Name          string
	Type          format.Type
	Repetition    format.FieldRepetitionType
	LogicalType   LogicalType
	TypeLength    int32

	MaxRepetitionLevel int
	MaxDefinitionLevel int
	Path               []string

	parent   *Schema
	Children []*Schema
}

func (s *Schema) Parent() *Schema { return s.parent }

func (s *Schema) isRoot() bool { return s.parent == nil }

func (s *Schema) isLeaf() bool { return len(s.Children) == 0 }

// Add appends node as a direct child of s.
func (s *Schema) Add(node *Schema) {
	s.Children = append(s.Children, node)
	node.parent = s
}

// At walks the tree following a dotted path of child names, returning nil if
// no such node exists.
func (s *Schema) At(path ...string) *Schema {
	if len(path) == 0 {
		return s
	}
	for _, c := range s.Children {
		if c.Name == path[0] {
			return c.At(path[1:]...)
		}
	}
	return nil
}

// Leaves returns every column (leaf) node in depth-first, on-disk order.
func (s *Schema) Leaves() []*Schema {
	return s.appendLeaves(nil)
}

func (s *Schema) appendLeaves(leaves []*Schema) []*Schema {
	if s.isLeaf() {
		return append(leaves, s)
	}
	for _, c := range s.Children {
		leaves = c.appendLeaves(leaves)
	}
	return leaves
}

// Compute derives MaxRepetitionLevel, MaxDefinitionLevel and Path for s and
// every descendant. Definition/repetition levels are assigned by a single
// top-down pass over the tree.
func (s *Schema) Compute() {
	if s.parent != nil {
		s.MaxRepetitionLevel = s.parent.MaxRepetitionLevel
		s.MaxDefinitionLevel = s.parent.MaxDefinitionLevel
		s.Path = append(append([]string{}, s.parent.Path...), s.Name)
	}
	if s.Repetition == format.Repeated {
		s.MaxRepetitionLevel++
	}
	if s.Repetition != format.Required {
		s.MaxDefinitionLevel++
	}
	for _, c := range s.Children {
		c.Compute()
	}
}

// schemaFromElements rebuilds a Schema tree from the flat, depth-first
// SchemaElement list stored in a file's footer.
func schemaFromElements(elements []format.SchemaElement) (*Schema, error) {
	if len(elements) == 0 {
		return nil, newError("schemaFromElements", Format, fmt.Errorf("empty schema"))
	}
	root := &Schema{}
	consumed, err := buildSchemaTree(root, elements)
	if err != nil {
		return nil, newError("schemaFromElements", Format, err)
	}
	if consumed != len(elements) {
		return nil, newError("schemaFromElements", Format,
			fmt.Errorf("expected to consume %d schema elements, consumed %d", len(elements), consumed))
	}
	root.Compute()
	return root, nil
}

func buildSchemaTree(current *Schema, remaining []format.SchemaElement) (int, error) {
	if len(remaining) == 0 {
		return 0, fmt.Errorf("truncated schema")
	}
	el := remaining[0]
	current.Name = el.Name
	if el.Type != nil {
		current.Type = *el.Type
	}
	if el.RepetitionType != nil {
		current.Repetition = *el.RepetitionType
	}
	if el.TypeLength != nil {
		current.TypeLength = *el.TypeLength
	}
	current.LogicalType = logicalTypeFromElement(el)

	numChildren := 0
	if el.NumChildren != nil {
		numChildren = int(*el.NumChildren)
	}

	offset := 1
	for i := 0; i < numChildren; i++ {
		child := &Schema{parent: current}
		current.Children = append(current.Children, child)
		n, err := buildSchemaTree(child, remaining[offset:])
		if err != nil {
			return 0, err
		}
		offset += n
	}
	return offset, nil
}

func logicalTypeFromElement(el format.SchemaElement) LogicalType {
	if el.ConvertedType == nil {
		return LogicalType{}
	}
	switch *el.ConvertedType {
	case format.UTF8:
		return LogicalType{Kind: StringType}
	case format.Date:
		return LogicalType{Kind: DateType}
	case format.TimeMillis:
		return LogicalType{Kind: TimeType, Unit: Millis}
	case format.TimeMicros:
		return LogicalType{Kind: TimeType, Unit: Micros}
	case format.TimestampMillis:
		return LogicalType{Kind: TimestampType, Unit: Millis}
	case format.TimestampMicros:
		return LogicalType{Kind: TimestampType, Unit: Micros}
	case format.Decimal:
		scale, precision := 0, 0
		if el.Scale != nil {
			scale = int(*el.Scale)
		}
		if el.Precision != nil {
			precision = int(*el.Precision)
		}
		return LogicalType{Kind: DecimalType, Scale: scale, Precision: precision}
	case format.Enum:
		return LogicalType{Kind: EnumType}
	case format.Json:
		return LogicalType{Kind: JSONType}
	case format.Bson:
		return LogicalType{Kind: BSONType}
	case format.List:
		return LogicalType{Kind: ListType}
	case format.Map, format.MapKeyValue:
		return LogicalType{Kind: MapType}
	case format.Int8:
		return LogicalType{Kind: IntegerType, BitWidth: 8, Signed: true}
	case format.Int16:
		return LogicalType{Kind: IntegerType, BitWidth: 16, Signed: true}
	case format.Int32Converted:
		return LogicalType{Kind: IntegerType, BitWidth: 32, Signed: true}
	case format.Int64Converted:
		return LogicalType{Kind: IntegerType, BitWidth: 64, Signed: true}
	case format.Uint8:
		return LogicalType{Kind: IntegerType, BitWidth: 8}
	case format.Uint16:
		return LogicalType{Kind: IntegerType, BitWidth: 16}
	case format.Uint32:
		return LogicalType{Kind: IntegerType, BitWidth: 32}
	case format.Uint64:
		return LogicalType{Kind: IntegerType, BitWidth: 64}
	default:
		return LogicalType{}
	}
}

// schemaToElements flattens a Schema tree back into the depth-first
// SchemaElement list the footer expects, the inverse of schemaFromElements.
func schemaToElements(root *Schema) []format.SchemaElement {
	var out []format.SchemaElement
	appendSchemaElement(&out, root, true)
	return out
}

func appendSchemaElement(out *[]format.SchemaElement, s *Schema, isRoot bool) {
	el := format.SchemaElement{Name: s.Name}
	if !isRoot {
		t := s.Type
		rep := s.Repetition
		el.Type = &t
		el.RepetitionType = &rep
		if s.TypeLength > 0 {
			tl := s.TypeLength
			el.TypeLength = &tl
		}
		if ct, ok := s.LogicalType.convertedType(); ok {
			el.ConvertedType = &ct
		}
		if s.LogicalType.Kind == DecimalType {
			scale, precision := int32(s.LogicalType.Scale), int32(s.LogicalType.Precision)
			el.Scale = &scale
			el.Precision = &precision
		}
	}
	n := int32(len(s.Children))
	el.NumChildren = &n
	*out = append(*out, el)
	for _, c := range s.Children {
		appendSchemaElement(out, c, false)
	}
}

func (s *Schema) String() string {
	return strings.Join(s.Path, ".")
}
