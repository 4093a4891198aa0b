package carquet

import (
	"fmt"

	"github.com/Vitruves/carquet-sub000/format"
)

// PageHeader is the common interface satisfied by every on-disk page header
// kind.
type PageHeader interface {
	fmt.Stringer
	NumValues() int
	Encoding() format.Encoding
}

// DataPageHeader is the interface satisfied by data page headers (both V1
// and V2).
type DataPageHeader interface {
	PageHeader
	RepetitionLevelEncoding() format.Encoding
	DefinitionLevelEncoding() format.Encoding
	NullCount() int
	MinValue() []byte
	MaxValue() []byte
}

type dictionaryPageHeader struct {
	header *format.DictionaryPageHeader
}

func (h dictionaryPageHeader) NumValues() int             { return int(h.header.NumValues) }
func (h dictionaryPageHeader) Encoding() format.Encoding   { return h.header.Encoding }
func (h dictionaryPageHeader) IsSorted() bool {
	return h.header.IsSorted != nil && *h.header.IsSorted
}
func (h dictionaryPageHeader) String() string {
	return fmt.Sprintf("DICTIONARY_PAGE_HEADER{NumValues=%d,Encoding=%s}", h.header.NumValues, h.header.Encoding)
}

type dataPageHeaderV1 struct {
	header *format.DataPageHeader
}

func (h dataPageHeaderV1) NumValues() int                        { return int(h.header.NumValues) }
func (h dataPageHeaderV1) Encoding() format.Encoding              { return h.header.Encoding }
func (h dataPageHeaderV1) RepetitionLevelEncoding() format.Encoding { return h.header.RepetitionLevelEncoding }
func (h dataPageHeaderV1) DefinitionLevelEncoding() format.Encoding { return h.header.DefinitionLevelEncoding }
func (h dataPageHeaderV1) NullCount() int {
	if h.header.Statistics == nil || h.header.Statistics.NullCount == nil {
		return 0
	}
	return int(*h.header.Statistics.NullCount)
}
func (h dataPageHeaderV1) MinValue() []byte {
	if h.header.Statistics == nil {
		return nil
	}
	return h.header.Statistics.MinValue
}
func (h dataPageHeaderV1) MaxValue() []byte {
	if h.header.Statistics == nil {
		return nil
	}
	return h.header.Statistics.MaxValue
}
func (h dataPageHeaderV1) String() string {
	return fmt.Sprintf("DATA_PAGE_HEADER{NumValues=%d,Encoding=%s}", h.header.NumValues, h.header.Encoding)
}

type dataPageHeaderV2 struct {
	header *format.DataPageHeaderV2
}

func (h dataPageHeaderV2) NumValues() int                        { return int(h.header.NumValues) }
func (h dataPageHeaderV2) NumNulls() int                         { return int(h.header.NumNulls) }
func (h dataPageHeaderV2) NumRows() int                          { return int(h.header.NumRows) }
func (h dataPageHeaderV2) Encoding() format.Encoding              { return h.header.Encoding }
func (h dataPageHeaderV2) RepetitionLevelEncoding() format.Encoding { return format.RLE }
func (h dataPageHeaderV2) DefinitionLevelEncoding() format.Encoding { return format.RLE }
func (h dataPageHeaderV2) NullCount() int {
	if h.header.Statistics == nil || h.header.Statistics.NullCount == nil {
		return 0
	}
	return int(*h.header.Statistics.NullCount)
}
func (h dataPageHeaderV2) MinValue() []byte {
	if h.header.Statistics == nil {
		return nil
	}
	return h.header.Statistics.MinValue
}
func (h dataPageHeaderV2) MaxValue() []byte {
	if h.header.Statistics == nil {
		return nil
	}
	return h.header.Statistics.MaxValue
}
func (h dataPageHeaderV2) String() string {
	return fmt.Sprintf("DATA_PAGE_HEADER_V2{NumValues=%d,NumNulls=%d,NumRows=%d,Encoding=%s}",
		h.header.NumValues, h.header.NumNulls, h.header.NumRows, h.header.Encoding)
}

var (
	_ PageHeader     = dictionaryPageHeader{}
	_ DataPageHeader = dataPageHeaderV1{}
	_ DataPageHeader = dataPageHeaderV2{}
)

// pageHeaderOf wraps a raw format.PageHeader in the typed interface matching
// its Type tag.
func pageHeaderOf(h *format.PageHeader) (PageHeader, error) {
	switch h.Type {
	case format.DictionaryPage:
		if h.DictionaryPageHeader == nil {
			return nil, fmt.Errorf("dictionary page header missing its payload")
		}
		return dictionaryPageHeader{h.DictionaryPageHeader}, nil
	case format.DataPage:
		if h.DataPageHeader == nil {
			return nil, fmt.Errorf("data page header missing its payload")
		}
		return dataPageHeaderV1{h.DataPageHeader}, nil
	case format.DataPageV2:
		if h.DataPageHeaderV2 == nil {
			return nil, fmt.Errorf("data page header v2 missing its payload")
		}
		return dataPageHeaderV2{h.DataPageHeaderV2}, nil
	default:
		return nil, fmt.Errorf("unsupported page type %s", h.Type)
	}
}

// page is an in-memory decoded or pending-to-write page: the thrift header
// plus its (possibly still compressed) body. Page framing on disk is
// header || body, with an optional CRC32 (IEEE) of the compressed body when
// PageHeader.CRC is set.
type page struct {
	header   format.PageHeader
	body     []byte // compressed bytes as read from, or about to be written to, disk
}

// verifyCRC reports whether the page's declared CRC32 (if any) matches its
// compressed body. A missing CRC is not itself an error; when one is present
// it is always checked, and ReaderConfig.VerifyPageCRC is not consulted.
func (p *page) verifyCRC() error {
	if p.header.CRC == nil {
		return nil
	}
	if got := pageCRC(p.body); got != uint32(*p.header.CRC) {
		return ErrCRCMismatch
	}
	return nil
}
