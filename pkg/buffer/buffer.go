// Package buffer implements the Source Buffer: loading a file's bytes,
// stripping a leading UTF-8 BOM, and exposing byte-offset slicing that
// preserves UTF-8 code points for downstream tree-sitter byte ranges.
package buffer

import (
	"bytes"
	"os"
)

// utf8BOM is the three-byte UTF-8 byte order mark some editors prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Buffer holds one file's normalized source bytes.
type Buffer struct {
	Path string
	Src  []byte
}

// Load reads filePath and strips a leading UTF-8 BOM if present.
func Load(filePath string) (*Buffer, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return New(filePath, raw), nil
}

// New wraps already-read bytes, stripping a leading BOM.
func New(filePath string, raw []byte) *Buffer {
	return &Buffer{Path: filePath, Src: StripBOM(raw)}
}

// StripBOM removes a leading EF BB BF sequence, if present.
func StripBOM(raw []byte) []byte {
	if bytes.HasPrefix(raw, utf8BOM) {
		return raw[len(utf8BOM):]
	}
	return raw
}

// Slice returns the text between two byte offsets. Offsets are clamped to
// the buffer bounds so a malformed range never panics; callers that need to
// detect out-of-range offsets should check against len(b.Src) themselves.
func (b *Buffer) Slice(startByte, endByte uint32) string {
	n := uint32(len(b.Src))
	if startByte > n {
		startByte = n
	}
	if endByte > n {
		endByte = n
	}
	if endByte < startByte {
		endByte = startByte
	}
	return string(b.Src[startByte:endByte])
}

// Len returns the number of bytes in the normalized buffer.
func (b *Buffer) Len() int {
	return len(b.Src)
}
