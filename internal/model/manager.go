// Package model defines the data structures for mirror rewriting.
package model

// Path represents a file system path.
type Path string

// Scope defines whether a configuration change applies to the invoking
// user or to the whole machine.
type Scope string

const (
	// ScopeUser targets configuration files under the user's home.
	ScopeUser Scope = "user"
	// ScopeSystem targets machine-wide configuration files.
	ScopeSystem Scope = "system"
)

// Valid reports whether the scope is one of the supported values.
func (s Scope) Valid() bool {
	return s == ScopeUser || s == ScopeSystem
}

// DetectionResult describes whether a package manager is present on the
// host and which configuration file a run should operate on. It is
// produced fresh for every run and discarded afterwards.
type DetectionResult struct {
	Manager    string
	Installed  bool
	ConfigPath Path // empty when the manager has no config at this scope
	Scope      Scope
}

// MirrorStatus is a read-only snapshot of one manager's mirror
// configuration, used by the status command.
type MirrorStatus struct {
	Manager   string
	Installed bool
	Path      Path
	Mirror    string // empty when no mirror is configured
	Detail    string
}

// ReachabilityResult holds the advisory outcome of probing one mirror URL.
type ReachabilityResult struct {
	Manager string
	URL     string
	OK      bool
	Detail  string
}
