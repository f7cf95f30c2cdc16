package source

import (
	"slices"

	"fortio.org/safecast"
)

// File captures the content of one open document together with a line index
// used for offset <-> line/column mapping.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n' in Content
}

// LineCol is a zero-based position in a file, measured in bytes from the
// start of the line.
type LineCol struct {
	Line uint32
	Col  uint32
}

// NewFile builds a File from raw content, normalizing CRLF line endings so
// the line index stays byte-accurate across platforms.
func NewFile(path string, content []byte) *File {
	content = normalizeCRLF(content)
	return &File{
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// SetContent replaces the file content and rebuilds the line index.
func (f *File) SetContent(content []byte) {
	f.Content = normalizeCRLF(content)
	f.LineIdx = buildLineIndex(f.Content)
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	return clampUint32(len(f.Content))
}

// LineColFor maps a byte offset into a zero-based line/column pair.
// Offsets past the end of the file are clamped to the last position.
func (f *File) LineColFor(off uint32) LineCol {
	if off > f.Len() {
		off = f.Len()
	}
	if len(f.LineIdx) == 0 {
		return LineCol{Line: 0, Col: off}
	}
	// Binary search: greatest i with LineIdx[i] < off.
	lo, hi := 0, len(f.LineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if f.LineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := lo
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: clampUint32(line), Col: off - lineStart}
}

// OffsetFor maps a zero-based line/column pair back to a byte offset,
// clamping to valid positions.
func (f *File) OffsetFor(lc LineCol) uint32 {
	lineCount := len(f.LineIdx) + 1
	if int(lc.Line) >= lineCount {
		return f.Len()
	}
	var lineStart uint32
	if lc.Line > 0 {
		lineStart = f.LineIdx[lc.Line-1] + 1
	}
	lineEnd := f.Len()
	if int(lc.Line) < len(f.LineIdx) {
		lineEnd = f.LineIdx[lc.Line]
	}
	off := lineStart + lc.Col
	if off > lineEnd {
		off = lineEnd
	}
	return off
}

// LineText returns the text of a zero-based line without its newline.
func (f *File) LineText(line uint32) string {
	lineCount := len(f.LineIdx) + 1
	if int(line) >= lineCount {
		return ""
	}
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	end := f.Len()
	if int(line) < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	return string(f.Content[start:end])
}

func normalizeCRLF(content []byte) []byte {
	if !slices.Contains(content, '\r') {
		return content
	}
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		out = append(out, content[i])
	}
	return out
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, clampUint32(i))
		}
	}
	return out
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}
