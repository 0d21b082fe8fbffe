package variantatlas

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

// ErrUnsupportedCompression is returned for streams that are recognized but
// cannot be decoded. Unix compress (.Z) is the only such format.
var ErrUnsupportedCompression = errors.New("unsupported compression format")

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
	DataTypeZstd
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "plain"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "Z"
	case DataTypeBZip2:
		return "bzip2"
	case DataTypeZstd:
		return "zstd"
	}

	return "invalid"
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
	DataTypeZstd:  {0x28, 0xb5, 0x2f, 0xfd},
}

// DetectDataType peeks at the head of the stream and matches it against the
// known compression signatures. Nothing is consumed from r. Byte code
// signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}
	if len(buff) == 0 {
		return DataTypeInvalid, io.ErrUnexpectedEOF
	}

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser wraps rc with whatever decompressor its leading
// bytes call for. Closing the result closes rc. For zip archives, the first
// entry is returned.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, DataType, error) {
	br := bufio.NewReader(rc)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, dt, err
	}

	var out io.Reader

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, dt, err
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rc}}, dt, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, dt, fmt.Errorf("zip archive has no readable entry: %w", err)
		}
		out = zr
	case DataTypeBZip2:
		out = bzip2.NewReader(br)
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, err
		}
		out = reader
	case DataTypeZ:
		return nil, dt, fmt.Errorf("%s: %w; recompress with gzip", dt, ErrUnsupportedCompression)
	case DataTypeZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, dt, err
		}
		zrc := dec.IOReadCloser()
		return &stackedCloser{Reader: zrc, closers: []io.Closer{zrc, rc}}, dt, nil
	default:
		// No data type detected. For now, we assume this is uncompressed.
		out = br
	}

	return &stackedCloser{Reader: out, closers: []io.Closer{rc}}, dt, nil
}

// stackedCloser closes every layer of a decompression stack, innermost first,
// and reports the first error.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
