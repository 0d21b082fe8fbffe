package variantatlas

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const sampleTable = "rsid,Name,GeneSymbol\n113993960,NM_000492.4(CFTR):c.1521_1523del,CFTR\n"

func gzipped(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, name, s string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectDataType(t *testing.T) {
	cases := map[DataType][]byte{
		DataTypeNoCompression: []byte(sampleTable),
		DataTypeGzip:          gzipped(t, sampleTable),
		DataTypeZip:           zipped(t, "final_variant_data.csv", sampleTable),
		DataTypeZstd:          zstded(t, sampleTable),
	}

	for want, data := range cases {
		br := bufio.NewReader(bytes.NewReader(data))
		got, err := DetectDataType(br)
		require.NoError(t, err)
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}

		// Detection must not consume the stream
		rest, err := io.ReadAll(br)
		require.NoError(t, err)
		require.Equal(t, data, rest)
	}
}

func TestDetectDataTypeShortInput(t *testing.T) {
	got, err := DetectDataType(bufio.NewReader(strings.NewReader("a\n")))
	require.NoError(t, err)
	require.Equal(t, DataTypeNoCompression, got)

	_, err = DetectDataType(bufio.NewReader(strings.NewReader("")))
	require.Error(t, err)
}

func TestMaybeDecompressReadCloser(t *testing.T) {
	inputs := [][]byte{
		[]byte(sampleTable),
		gzipped(t, sampleTable),
		zipped(t, "final_variant_data.csv", sampleTable),
		zstded(t, sampleTable),
	}

	for _, data := range inputs {
		rc, dt, err := MaybeDecompressReadCloser(io.NopCloser(bytes.NewReader(data)))
		require.NoError(t, err, dt.String())

		out, err := io.ReadAll(rc)
		require.NoError(t, err, dt.String())
		require.NoError(t, rc.Close())

		if string(out) != sampleTable {
			t.Errorf("%s: got %q", dt, out)
		}
	}
}

func TestMaybeDecompressReadCloserUnixCompress(t *testing.T) {
	// Header of `compress` output: magic, then block mode with 16 bit codes.
	data := append([]byte{0x1f, 0x9d, 0x90}, []byte(sampleTable)...)

	br := bufio.NewReader(bytes.NewReader(data))
	dt, err := DetectDataType(br)
	require.NoError(t, err)
	require.Equal(t, DataTypeZ, dt)

	rc, dt, err := MaybeDecompressReadCloser(io.NopCloser(bytes.NewReader(data)))
	require.Nil(t, rc)
	require.Equal(t, DataTypeZ, dt)
	require.True(t, errors.Is(err, ErrUnsupportedCompression))
}
