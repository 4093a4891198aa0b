package carquet

import "github.com/Vitruves/carquet-sub000/format"

// DictionaryMode controls when a column writer falls back from dictionary
// encoding to PLAIN.
type DictionaryMode int

const (
	// DictionaryAuto builds a dictionary over the whole column chunk and,
	// if it exceeds DictionaryPageBytes, writes the whole chunk as PLAIN
	// instead.
	DictionaryAuto DictionaryMode = iota
	// DictionaryAlways keeps using the dictionary regardless of its size.
	DictionaryAlways
	// DictionaryNever always uses PLAIN.
	DictionaryNever
)

// ReaderConfig holds file-reader options.
type ReaderConfig struct {
	UseMemoryMap  bool
	VerifyPageCRC bool
}

// ReaderOption configures a ReaderConfig.
type ReaderOption func(*ReaderConfig)

func UseMemoryMap(enabled bool) ReaderOption {
	return func(c *ReaderConfig) { c.UseMemoryMap = enabled }
}

// VerifyPageCRC sets ReaderConfig.VerifyPageCRC. The column reader does not
// consult it: a page's CRC32 is checked whenever its header carries one.
func VerifyPageCRC(enabled bool) ReaderOption {
	return func(c *ReaderConfig) { c.VerifyPageCRC = enabled }
}

func NewReaderConfig(options ...ReaderOption) *ReaderConfig {
	c := &ReaderConfig{}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WriterConfig holds file-writer options.
type WriterConfig struct {
	RowGroupBytes      int64
	PageBytes          int
	CompressionCodec   format.CompressionCodec
	CompressionLevel   int
	WriteStatistics    bool
	DictionaryPageBytes int
	DictionaryMode     DictionaryMode
}

// WriterOption configures a WriterConfig.
type WriterOption func(*WriterConfig)

func RowGroupBytes(n int64) WriterOption {
	return func(c *WriterConfig) { c.RowGroupBytes = n }
}

func PageBytes(n int) WriterOption {
	return func(c *WriterConfig) { c.PageBytes = n }
}

func Compression(codec format.CompressionCodec) WriterOption {
	return func(c *WriterConfig) { c.CompressionCodec = codec }
}

func CompressionLevel(level int) WriterOption {
	return func(c *WriterConfig) { c.CompressionLevel = level }
}

func WriteStatistics(enabled bool) WriterOption {
	return func(c *WriterConfig) { c.WriteStatistics = enabled }
}

func DictionaryPageBytes(n int) WriterOption {
	return func(c *WriterConfig) { c.DictionaryPageBytes = n }
}

func DictionaryModeOption(mode DictionaryMode) WriterOption {
	return func(c *WriterConfig) { c.DictionaryMode = mode }
}

func NewWriterConfig(options ...WriterOption) *WriterConfig {
	c := &WriterConfig{
		RowGroupBytes:       128 * 1024 * 1024,
		PageBytes:           1024 * 1024,
		CompressionCodec:    format.Uncompressed,
		WriteStatistics:     true,
		DictionaryPageBytes: 1024 * 1024,
		DictionaryMode:      DictionaryAuto,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ColumnOption configures per-column writer behavior, such as overriding
// the file-level compression codec or dictionary mode for one column.
type ColumnOption func(*ColumnConfig)

type ColumnConfig struct {
	Compression    *format.CompressionCodec
	DictionaryMode *DictionaryMode
	Encoding       format.Encoding
}

func ColumnCompression(codec format.CompressionCodec) ColumnOption {
	return func(c *ColumnConfig) { c.Compression = &codec }
}

func ColumnDictionaryMode(mode DictionaryMode) ColumnOption {
	return func(c *ColumnConfig) { c.DictionaryMode = &mode }
}

func ColumnEncoding(enc format.Encoding) ColumnOption {
	return func(c *ColumnConfig) { c.Encoding = enc }
}

func NewColumnConfig(options ...ColumnOption) *ColumnConfig {
	c := &ColumnConfig{}
	for _, opt := range options {
		opt(c)
	}
	return c
}
