package options

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType names a request body encoding. Built-in values double as
// the Content-Encoding header value.
type CompressionType string

const (
	CompressionNone    CompressionType = ""
	CompressionGzip    CompressionType = "gzip"
	CompressionDeflate CompressionType = "deflate"
	CompressionBrotli  CompressionType = "br"
	CompressionSnappy  CompressionType = "snappy"
	CompressionLZ4     CompressionType = "lz4"
	CompressionCustom  CompressionType = "custom"
)

// SetCompression selects how the request body is compressed.
func (opt *Option) SetCompression(compressionType CompressionType) {
	opt.Compression = compressionType
}

// GetCompressor wraps w with the configured compressor. Closing the returned
// writer flushes it but leaves w open.
func (opt *Option) GetCompressor(w *io.PipeWriter) (io.WriteCloser, error) {
	switch opt.Compression {
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionDeflate:
		return zlib.NewWriter(w), nil
	case CompressionBrotli:
		return brotli.NewWriter(w), nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionCustom:
		if opt.CustomCompressor == nil {
			return nil, fmt.Errorf("custom compressor function is not defined")
		}
		return opt.CustomCompressor(w)
	}
	return nil, fmt.Errorf("unsupported compression type: %s", opt.Compression)
}

// ContentEncoding returns the Content-Encoding header value announced for the
// configured compression, or an empty string when the body is sent as-is.
func (opt *Option) ContentEncoding() string {
	switch opt.Compression {
	case CompressionNone:
		return ""
	case CompressionCustom:
		if opt.CustomCompressionType != "" {
			return string(opt.CustomCompressionType)
		}
		return "application/octet-stream"
	}
	return string(opt.Compression)
}
