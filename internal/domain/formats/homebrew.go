package formats

import (
	m "remirror.dev/pkg/remirror/internal/model"
)

const (
	brewRemoteSection = `remote "origin"`
	brewURLKey        = "url"
)

// homebrewAdapter rewrites the origin remote URL in the Homebrew
// repository's .git/config. The file is plain git-config INI; keys inside
// a section are indented with a tab, which new lines reproduce.
type homebrewAdapter struct{}

// NewHomebrew returns the adapter for Homebrew.
func NewHomebrew() Adapter {
	return &homebrewAdapter{}
}

func (a *homebrewAdapter) Kind() string {
	return "git-config"
}

func (a *homebrewAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	return parseINI(path, data)
}

func (a *homebrewAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *homebrewAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)

	header, ok := findSection(doc, brewRemoteSection)
	if !ok {
		return "", false
	}

	_, value, ok := findKey(doc, header, brewURLKey)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

func (a *homebrewAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()
	setSectionKey(doc, brewRemoteSection, brewURLKey, target, "\t")

	return doc
}
