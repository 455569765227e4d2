package formats

import "strings"

// lineDocument is the shared representation for the line-oriented grammars
// (INI, key=value, mirrorlist, sources.list, bare URL). It keeps every
// original line verbatim and only ever replaces, inserts or drops whole
// lines, which is what makes the round-trip guarantee cheap to uphold.
type lineDocument struct {
	lines []string
	// trailingNewline records whether the original file ended with a
	// newline so serialization is byte-identical for untouched files.
	trailingNewline bool
}

func parseLineDocument(data []byte) *lineDocument {
	text := string(data)
	if text == "" {
		return &lineDocument{}
	}

	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = strings.TrimSuffix(text, "\n")
	}

	return &lineDocument{
		lines:           strings.Split(text, "\n"),
		trailingNewline: trailing,
	}
}

// Serialize renders the document back to its native byte form.
func (d *lineDocument) Serialize() []byte {
	if len(d.lines) == 0 {
		return []byte{}
	}

	text := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		text += "\n"
	}

	return []byte(text)
}

// clone returns an independent copy so ApplyMirror stays a pure transform.
func (d *lineDocument) clone() *lineDocument {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)

	return &lineDocument{lines: lines, trailingNewline: d.trailingNewline}
}

// insertAt places line at index i, shifting the rest down.
func (d *lineDocument) insertAt(i int, line string) {
	if i < 0 || i > len(d.lines) {
		i = len(d.lines)
	}

	d.lines = append(d.lines, "")
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line
	d.trailingNewline = true
}

// append adds a line at the end of the document.
func (d *lineDocument) append(line string) {
	d.lines = append(d.lines, line)
	d.trailingNewline = true
}

// removeAt drops the line at index i.
func (d *lineDocument) removeAt(i int) {
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
}

// isBlankOrComment reports whether a line carries no configuration.
func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)

	return trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";")
}

// splitKeyValue splits a `key = value` line, preserving nothing; callers
// that rewrite lines should use replaceValue instead to keep spacing.
func splitKeyValue(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}

	return strings.TrimSpace(line[:eq]), strings.TrimSpace(line[eq+1:]), true
}

// replaceValue swaps the value of a `key = value` line while keeping the
// key, the equals sign and the surrounding whitespace exactly as written.
func replaceValue(line, newValue string) string {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return line
	}

	rest := line[eq+1:]
	leading := rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))]

	return line[:eq+1] + leading + newValue
}
