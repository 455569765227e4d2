package model

// Status represents the result class of patching one manager's
// configuration.
type Status int

const (
	// Changed indicates the mirror was rewritten and the file saved.
	Changed Status = iota
	// AlreadyMirrored indicates the target mirror was already configured.
	AlreadyMirrored
	// NotInstalled indicates the manager is not present on this host.
	NotInstalled
	// NotWritable indicates the configuration file could not be written
	// (permissions, missing scope support, or a failed write).
	NotWritable
	// ParseError indicates the configuration file exists but is not in
	// the expected grammar. The file is left untouched.
	ParseError
	// Skipped indicates the user declined the change interactively.
	Skipped
)

// String returns the human-readable status label.
func (s Status) String() string {
	switch s {
	case Changed:
		return "changed"
	case AlreadyMirrored:
		return "already-mirrored"
	case NotInstalled:
		return "not-installed"
	case NotWritable:
		return "not-writable"
	case ParseError:
		return "parse-error"
	case Skipped:
		return "skipped"
	}

	return "unknown"
}

// IsError reports whether the status is one of the error classes that
// count towards a fatal run.
func (s Status) IsError() bool {
	return s == NotWritable || s == ParseError
}

// PatchOutcome records what happened to one manager during a run.
// Exactly one outcome is produced per supported manager per run; the
// collection is append-only and never mutated after creation.
type PatchOutcome struct {
	Manager string
	Status  Status
	Path    Path
	Detail  string
	Diff    string // unified diff of the pending or applied change
}
