package formats

import (
	"strings"

	m "remirror.dev/pkg/remirror/internal/model"
)

// sectionName extracts the inner name of an INI section header line, e.g.
// `[global]` -> "global" and `[remote "origin"]` -> `remote "origin"`.
func sectionName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", false
	}

	return strings.TrimSpace(trimmed[1 : len(trimmed)-1]), true
}

// parseINI validates that every meaningful line is either a section header
// or a key=value pair. It does not interpret the content beyond that; the
// document keeps the original lines verbatim.
func parseINI(path m.Path, data []byte) (*lineDocument, error) {
	doc := parseLineDocument(data)

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if _, ok := sectionName(line); ok {
			continue
		}

		if _, _, ok := splitKeyValue(line); ok {
			continue
		}

		return nil, &ParseError{Path: path, Line: i + 1, Reason: "expected section header or key = value"}
	}

	return doc, nil
}

// findSection returns the index of the named section header line.
func findSection(doc *lineDocument, name string) (int, bool) {
	for i, line := range doc.lines {
		if got, ok := sectionName(line); ok && got == name {
			return i, true
		}
	}

	return 0, false
}

// findKey returns the index and value of key inside the section starting
// at header index start. The search stops at the next section header.
func findKey(doc *lineDocument, start int, key string) (int, string, bool) {
	for i := start + 1; i < len(doc.lines); i++ {
		line := doc.lines[i]
		if _, ok := sectionName(line); ok {
			break
		}

		if isBlankOrComment(line) {
			continue
		}

		if k, v, ok := splitKeyValue(line); ok && k == key {
			return i, v, true
		}
	}

	return 0, "", false
}

// setSectionKey points key inside section at value, creating the section
// and the key as needed. The document is modified in place; callers clone
// first. indent is prefixed to a newly created key line (git config files
// indent with a tab, pip.conf does not).
func setSectionKey(doc *lineDocument, section, key, value, indent string) {
	header, ok := findSection(doc, section)
	if !ok {
		if len(doc.lines) > 0 {
			doc.append("")
		}

		doc.append("[" + section + "]")
		doc.append(indent + key + " = " + value)

		return
	}

	if i, _, ok := findKey(doc, header, key); ok {
		doc.lines[i] = replaceValue(doc.lines[i], value)
		return
	}

	doc.insertAt(header+1, indent+key+" = "+value)
}
