package formats

import (
	"strings"

	m "remirror.dev/pkg/remirror/internal/model"
)

// ctanAdapter manages the CTAN mirror preference file: a single URL on the
// first meaningful line, with optional comment lines around it.
type ctanAdapter struct{}

// NewCTAN returns the adapter for the CTAN mirror preference.
func NewCTAN() Adapter {
	return &ctanAdapter{}
}

func (a *ctanAdapter) Kind() string {
	return "url"
}

func (a *ctanAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	doc := parseLineDocument(data)

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if !strings.Contains(strings.TrimSpace(line), "://") {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: "expected a mirror URL"}
		}
	}

	return doc, nil
}

func (a *ctanAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *ctanAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)

	for _, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		return strings.TrimSpace(line), true
	}

	return "", false
}

func (a *ctanAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		doc.lines[i] = target

		return doc
	}

	doc.append(target)

	return doc
}
