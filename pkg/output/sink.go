package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPFM Format = "pfm"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatPPM:
		return FormatPPM, nil
	case FormatPFM:
		return FormatPFM, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want ppm, pfm or png)", name)
	}
}

// Encode writes the buffer in the requested format
func Encode(w io.Writer, buf *Buffer, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, buf)
	case FormatPFM:
		return WritePFM(w, buf)
	case FormatPNG:
		return WritePNG(w, buf)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// compressedSink closes the compressor before the underlying file
type compressedSink struct {
	io.WriteCloser
	file *os.File
}

func (s *compressedSink) Close() error {
	if err := s.WriteCloser.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// Create opens path for writing, compressing the stream when the name ends
// in .zst, .gz or .sz. Parent directories are created as needed.
func Create(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		enc, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return &compressedSink{WriteCloser: enc, file: file}, nil
	case ".gz":
		return &compressedSink{WriteCloser: gzip.NewWriter(file), file: file}, nil
	case ".sz":
		return &compressedSink{WriteCloser: snappy.NewBufferedWriter(file), file: file}, nil
	default:
		return file, nil
	}
}

// Open opens a file written by Create, transparently decompressing it
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return &decompressedSource{Reader: dec, close: func() error { dec.Close(); return file.Close() }}, nil
	case ".gz":
		dec, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &decompressedSource{Reader: dec, close: func() error { dec.Close(); return file.Close() }}, nil
	case ".sz":
		return &decompressedSource{Reader: snappy.NewReader(file), close: file.Close}, nil
	default:
		return file, nil
	}
}

type decompressedSource struct {
	io.Reader
	close func() error
}

func (s *decompressedSource) Close() error { return s.close() }

// FormatFromPath infers the image format from a file name, ignoring any
// compression suffix
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(path)
	for _, suffix := range []string{".zst", ".gz", ".sz"} {
		name = strings.TrimSuffix(name, suffix)
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer output format from %q", path)
	}
	return ParseFormat(ext)
}
