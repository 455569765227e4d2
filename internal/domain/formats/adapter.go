// Package formats contains the per-manager configuration adapters. Each
// adapter knows one manager's native file grammar and can read, patch and
// render it while preserving unrelated content verbatim.
package formats

import (
	"fmt"

	m "remirror.dev/pkg/remirror/internal/model"
)

// ParsedConfig is the structured, round-trip-safe representation of one
// configuration file. Implementations are owned by a single adapter and
// must only ever be handed back to the adapter that produced them.
type ParsedConfig interface {
	Serialize() []byte
}

// Adapter translates between a manager's native configuration text and a
// ParsedConfig.
//
// Invariant: Serialize(ApplyMirror(Parse(original), target)) may differ
// from original only in the mirror field(s). Comments, ordering and
// unrecognized keys round-trip untouched.
type Adapter interface {
	// Kind names the file grammar (for logs and the list command).
	Kind() string

	// Parse builds a ParsedConfig from the raw file contents. It returns
	// a *ParseError when the data is not in the expected grammar.
	Parse(path m.Path, data []byte) (ParsedConfig, error)

	// Empty returns the default ParsedConfig used when the file does not
	// exist yet.
	Empty() ParsedConfig

	// CurrentMirror extracts the presently configured mirror URL, if any.
	CurrentMirror(cfg ParsedConfig) (string, bool)

	// ApplyMirror returns a new representation with the mirror set to
	// target. Prior occurrences of target are removed so the highest
	// priority slot holds it exactly once. It never fails.
	ApplyMirror(cfg ParsedConfig, target string) ParsedConfig
}

// ParseError reports a configuration file that exists but could not be
// understood. Callers must leave the file untouched when they see it.
type ParseError struct {
	Path   m.Path
	Line   int // 1-based, 0 when not line-specific
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}
