package compress_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/Vitruves/carquet-sub000/compress"
	"github.com/Vitruves/carquet-sub000/compress/brotli"
	"github.com/Vitruves/carquet-sub000/compress/gzip"
	"github.com/Vitruves/carquet-sub000/compress/lz4"
	"github.com/Vitruves/carquet-sub000/compress/snappy"
	"github.com/Vitruves/carquet-sub000/compress/uncompressed"
	"github.com/Vitruves/carquet-sub000/compress/zstd"
)

// streamingCodec is a compress.Codec that also exposes the streaming
// Reader/Writer adapters every codec sub-package provides.
type streamingCodec interface {
	compress.Codec
	NewReader(io.Reader) (compress.Reader, error)
	NewWriter(io.Writer) (compress.Writer, error)
}

func codecs() []struct {
	scenario string
	codec    streamingCodec
} {
	return []struct {
		scenario string
		codec    streamingCodec
	}{
		{scenario: "uncompressed", codec: new(uncompressed.Codec)},
		{scenario: "snappy", codec: new(snappy.Codec)},
		{scenario: "gzip", codec: new(gzip.Codec)},
		{scenario: "brotli", codec: new(brotli.Codec)},
		{scenario: "zstd", codec: new(zstd.Codec)},
		{scenario: "lz4", codec: new(lz4.Codec)},
	}
}

func TestCompressionCodec(t *testing.T) {
	buffer := new(bytes.Buffer)
	output := new(bytes.Buffer)
	random := bytes.Repeat([]byte("1234567890qwertyuiopasdfghjklzxcvbnm"), 1000)

	for _, test := range codecs() {
		t.Run(test.scenario, func(t *testing.T) {
			w, err := test.codec.NewWriter(nil)
			if err != nil {
				t.Fatal(err)
			}
			defer w.Close()

			r, err := test.codec.NewReader(nil)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()

			for i := 0; i < 10; i++ {
				buffer.Reset()
				output.Reset()

				if err := w.Reset(buffer); err != nil {
					t.Fatal(err)
				}
				if _, err := io.Copy(w, iotest.OneByteReader(bytes.NewReader(random))); err != nil {
					t.Fatal(err)
				}
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}

				if err := r.Reset(buffer); err != nil {
					t.Fatal(err)
				}
				if _, err := io.Copy(output, iotest.OneByteReader(r)); err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(random, output.Bytes()) {
					t.Errorf("content mismatch after compressing and decompressing:\n%q\n%q", random, output.Bytes())
				}

				if err := w.Reset(nil); err != nil {
					t.Fatal(err)
				}
				if err := r.Reset(nil); err != nil {
					t.Fatal(err)
				}
			}
		})
	}
}

// TestCodecEncodeDecode covers the byte-slice contract directly,
// independent of the streaming Reader/Writer adapters above.
func TestCodecEncodeDecode(t *testing.T) {
	random := bytes.Repeat([]byte("1234567890qwertyuiopasdfghjklzxcvbnm"), 1000)

	for _, test := range codecs() {
		t.Run(test.scenario, func(t *testing.T) {
			encoded, err := test.codec.Encode(nil, random)
			if err != nil {
				t.Fatal(err)
			}
			decoded, err := test.codec.Decode(nil, encoded)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(random, decoded) {
				t.Errorf("content mismatch after Encode/Decode round trip")
			}

			// Encoding into a pre-populated destination buffer must not leak
			// into the returned slice.
			reused, err := test.codec.Encode(make([]byte, 0, 4), random)
			if err != nil {
				t.Fatal(err)
			}
			redecoded, err := test.codec.Decode(make([]byte, 0, 4), reused)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(random, redecoded) {
				t.Errorf("content mismatch when reusing destination buffers")
			}
		})
	}
}
