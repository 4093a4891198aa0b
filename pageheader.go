package carquet

import (
	"io"

	"github.com/Vitruves/carquet-sub000/format"
	"github.com/segmentio/encoding/thrift"
)

// countingReader tracks how many bytes have been read through it, so a
// single self-delimiting thrift struct can be decoded directly off a
// random-access column chunk without first knowing its encoded length.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

var pageHeaderProtocol = &thrift.CompactProtocol{}

// readPageHeader decodes one format.PageHeader from the column chunk byte
// range served by r, starting at offset, and reports how many bytes the
// encoded header occupied. Page headers are thrift compact-protocol structs
// with no external length prefix.
func readPageHeader(r sectionReaderAt, offset int64) (*format.PageHeader, int, error) {
	section := io.NewSectionReader(r, offset, 1<<62-offset)
	counter := &countingReader{r: section}
	decoder := thrift.NewDecoder(pageHeaderProtocol.NewReader(counter))

	header := new(format.PageHeader)
	if err := decoder.Decode(header); err != nil {
		return nil, 0, err
	}
	return header, counter.n, nil
}
