package fsops

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// binaryThreshold is the fraction of control bytes beyond which content
// is classified as binary.
const binaryThreshold = 0.3

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Read returns the text content of a validated regular file. Files over
// the configured ceiling refuse with TooLarge rather than truncating;
// content with a high density of control bytes is classified as binary
// and replaced by a descriptive placeholder.
func (o *Ops) Read(path string) (ReadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ReadResult{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return ReadResult{}, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return ReadResult{}, fmt.Errorf("%s is not a regular file: %w", path, ErrWrongType)
	}

	if info.Size() > o.opts.MaxFileSize {
		o.logger.Warn("File too large to read", "path", path, "size", info.Size())
		return ReadResult{
			TooLarge: true,
			Content:  fmt.Sprintf("[File too large: %s]", FormatSize(info.Size())),
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if utf8.Valid(data) {
		return ReadResult{Content: string(data), Encoding: "utf-8"}, nil
	}

	// UTF-16 text is full of NUL bytes, so the BOM check has to run
	// before the control-byte heuristic.
	if hasUTF16BOM(data) {
		return decodeFallback(data)
	}

	if isBinary(data) {
		return ReadResult{
			Binary:  true,
			Content: fmt.Sprintf("[Binary file: %s]", FormatSize(int64(len(data)))),
		}, nil
	}

	return decodeFallback(data)
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM)
}

// isBinary reports whether more than binaryThreshold of the bytes fall
// in the control ranges, excluding common whitespace (tab through CR).
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	control := 0
	for _, b := range data {
		if b < 9 || (b > 13 && b < 32) {
			control++
		}
	}
	return float64(control) > float64(len(data))*binaryThreshold
}

// decodeFallback handles non-UTF-8 text: UTF-16 when a BOM is present,
// otherwise Windows-1252 (a superset of Latin-1 for printable bytes).
func decodeFallback(data []byte) (ReadResult, error) {
	if hasUTF16BOM(data) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err == nil {
			return ReadResult{Content: string(out), Encoding: "utf-16"}, nil
		}
	}

	dec := charmap.Windows1252.NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		// Windows-1252 decoding is total; this is unreachable in
		// practice but fail safe anyway.
		return ReadResult{}, fmt.Errorf("cannot decode file content: %w", err)
	}
	return ReadResult{Content: string(out), Encoding: "windows-1252"}, nil
}
