package carquet

import (
	"github.com/Vitruves/carquet-sub000/compress"
	"github.com/Vitruves/carquet-sub000/compress/brotli"
	"github.com/Vitruves/carquet-sub000/compress/gzip"
	"github.com/Vitruves/carquet-sub000/compress/lz4"
	"github.com/Vitruves/carquet-sub000/compress/snappy"
	"github.com/Vitruves/carquet-sub000/compress/uncompressed"
	"github.com/Vitruves/carquet-sub000/compress/zstd"
	"github.com/Vitruves/carquet-sub000/format"
)

// codecFor resolves the compress.Codec implementation for a page's declared
// compression codec. level is only meaningful for codecs that expose a
// quality knob (GZIP, LZ4, BROTLI); it is ignored otherwise.
func codecFor(c format.CompressionCodec, level int) (compress.Codec, error) {
	switch c {
	case format.Uncompressed:
		return &uncompressed.Codec{}, nil
	case format.Snappy:
		return &snappy.Codec{}, nil
	case format.Gzip:
		return &gzip.Codec{Level: level}, nil
	case format.Lz4Raw:
		return &lz4.Codec{Level: lz4.Level(level)}, nil
	case format.Zstd:
		return &zstd.Codec{}, nil
	case format.Brotli:
		return &brotli.Codec{Quality: level}, nil
	default:
		return nil, newError("codecFor", Compression, errUnsupportedCodec(c))
	}
}

type errUnsupportedCodec format.CompressionCodec

func (e errUnsupportedCodec) Error() string {
	return "unsupported compression codec: " + format.CompressionCodec(e).String()
}
