package formats

import (
	m "remirror.dev/pkg/remirror/internal/model"
)

const tlmgrRepositoryKey = "repository"

// tlmgrAdapter rewrites the repository entry in TeX Live's tlmgr config,
// a flat `key = value` file without sections.
type tlmgrAdapter struct{}

// NewTlmgr returns the adapter for TeX Live's tlmgr.
func NewTlmgr() Adapter {
	return &tlmgrAdapter{}
}

func (a *tlmgrAdapter) Kind() string {
	return "key-value"
}

func (a *tlmgrAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	doc := parseLineDocument(data)

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if _, _, ok := splitKeyValue(line); !ok {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: "expected key = value"}
		}
	}

	return doc, nil
}

func (a *tlmgrAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *tlmgrAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)

	for _, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if k, v, ok := splitKeyValue(line); ok && k == tlmgrRepositoryKey && v != "" {
			return v, true
		}
	}

	return "", false
}

func (a *tlmgrAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if k, _, ok := splitKeyValue(line); ok && k == tlmgrRepositoryKey {
			doc.lines[i] = replaceValue(line, target)
			return doc
		}
	}

	doc.append(tlmgrRepositoryKey + " = " + target)

	return doc
}
