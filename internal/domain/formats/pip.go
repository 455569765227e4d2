package formats

import (
	m "remirror.dev/pkg/remirror/internal/model"
)

const (
	pipSection  = "global"
	pipIndexKey = "index-url"
)

// pipAdapter rewrites the index-url entry in pip.conf ([global] section,
// INI grammar). Unrelated sections and keys round-trip untouched.
type pipAdapter struct{}

// NewPip returns the adapter for PyPI's pip.
func NewPip() Adapter {
	return &pipAdapter{}
}

func (a *pipAdapter) Kind() string {
	return "ini"
}

func (a *pipAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	return parseINI(path, data)
}

func (a *pipAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *pipAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)

	header, ok := findSection(doc, pipSection)
	if !ok {
		return "", false
	}

	_, value, ok := findKey(doc, header, pipIndexKey)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

func (a *pipAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()
	setSectionKey(doc, pipSection, pipIndexKey, target, "")

	return doc
}
