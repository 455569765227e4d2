package domain

import (
	"log/slog"

	"remirror.dev/pkg/remirror/internal/adapter"
	m "remirror.dev/pkg/remirror/internal/model"
)

// Detector determines whether a package manager is installed and which
// configuration file a run should operate on for the requested scope.
// Detection is read-only: filesystem probes and PATH lookups only.
type Detector interface {
	Detect(desc ManagerDescriptor, scope m.Scope) m.DetectionResult
}

type detector struct {
	probe adapter.SystemProbe
	fs    adapter.ConfigFS
}

// NewDetector constructs a Detector backed by the provided probe and
// filesystem adapters.
func NewDetector(probe adapter.SystemProbe, fs adapter.ConfigFS) Detector {
	return &detector{probe: probe, fs: fs}
}

func (d *detector) Detect(desc ManagerDescriptor, scope m.Scope) m.DetectionResult {
	result := m.DetectionResult{Manager: desc.Name, Scope: scope}

	result.Installed = d.installed(desc)
	if !result.Installed {
		slog.Debug("manager not detected", "manager", desc.Name)
		return result
	}

	result.ConfigPath = d.resolvePath(desc, scope)
	slog.Debug("manager detected", "manager", desc.Name, "path", result.ConfigPath, "scope", scope)

	return result
}

func (d *detector) installed(desc ManagerDescriptor) bool {
	for _, exe := range desc.Executables {
		if d.probe.LookPath(exe) {
			return true
		}
	}

	for _, dir := range desc.ProbeDirs {
		if d.probe.DirExists(dir) {
			return true
		}
	}

	return false
}

// resolvePath prefers an existing file among the scope's candidates and
// falls back to the canonical (first) candidate for creation. An empty
// result means the manager has no configuration at this scope.
func (d *detector) resolvePath(desc ManagerDescriptor, scope m.Scope) m.Path {
	candidates := desc.UserPaths
	if scope == m.ScopeSystem {
		candidates = desc.SystemPaths
	}

	if len(candidates) == 0 {
		return ""
	}

	for _, candidate := range candidates {
		if ok, err := d.fs.Exists(candidate); err == nil && ok {
			return candidate
		}
	}

	return candidates[0]
}
