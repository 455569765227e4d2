package formats

import (
	m "remirror.dev/pkg/remirror/internal/model"
)

const pacmanServerKey = "Server"

// pacmanAdapter rewrites /etc/pacman.d/mirrorlist. The file is a
// prioritized list of `Server = URL` lines; pacman tries them top to
// bottom, so the target mirror is inserted above every other active
// server. Commented-out servers and other comments are preserved.
type pacmanAdapter struct{}

// NewPacman returns the adapter for Arch Linux's pacman.
func NewPacman() Adapter {
	return &pacmanAdapter{}
}

func (a *pacmanAdapter) Kind() string {
	return "mirrorlist"
}

func (a *pacmanAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	doc := parseLineDocument(data)

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if _, _, ok := splitKeyValue(line); !ok {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: "expected Server = URL"}
		}
	}

	return doc, nil
}

func (a *pacmanAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *pacmanAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)

	for _, line := range doc.lines {
		if url, ok := pacmanServer(line); ok {
			return url, true
		}
	}

	return "", false
}

func (a *pacmanAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()

	// Drop existing occurrences of the target so it ends up listed once.
	for i := len(doc.lines) - 1; i >= 0; i-- {
		if url, ok := pacmanServer(doc.lines[i]); ok && url == target {
			doc.removeAt(i)
		}
	}

	insert := len(doc.lines)

	for i, line := range doc.lines {
		if _, ok := pacmanServer(line); ok {
			insert = i
			break
		}
	}

	doc.insertAt(insert, pacmanServerKey+" = "+target)

	return doc
}

// pacmanServer extracts the URL of an active (uncommented) Server line.
func pacmanServer(line string) (string, bool) {
	if isBlankOrComment(line) {
		return "", false
	}

	k, v, ok := splitKeyValue(line)
	if !ok || k != pacmanServerKey || v == "" {
		return "", false
	}

	return v, true
}
