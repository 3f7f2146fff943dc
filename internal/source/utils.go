package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the new slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	// binary search: count newlines strictly before off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := lo // 0-based

	var start uint32
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	// Columns count runes, not bytes, so positions stay stable across
	// multibyte source text.
	if off > uint32(len(content)) {
		off = uint32(len(content))
	}
	col := uint32(utf8.RuneCount(content[start:off])) + 1
	return LineCol{Line: uint32(line + 1), Col: col}
}

func normalizePath(p string) string {
	// one canonical shape for cross-platform diffs
	return filepath.ToSlash(filepath.Clean(p))
}
