package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"remirror.dev/pkg/remirror/internal/adapter"
	"remirror.dev/pkg/remirror/internal/controller"
	"remirror.dev/pkg/remirror/internal/domain/formats"
	m "remirror.dev/pkg/remirror/internal/model"
)

const configFileMode = os.FileMode(0o644)

// RunArgs carries the per-run parameters of the rewrite engine. The
// mirror root is an explicit value, never ambient state, so the engine is
// testable with arbitrary targets.
type RunArgs struct {
	Scope      m.Scope
	MirrorRoot string
	Only       []string // manager name filter; empty means all
	DryRun     bool
	AssumeYes  bool
}

// Rewriter orchestrates a run: detection, format-aware patching, atomic
// writes, and one PatchOutcome per manager. A failure on one manager
// never aborts the remaining managers.
type Rewriter interface {
	// Run applies the target mirror to every supported (or selected)
	// manager and returns one outcome per manager processed.
	Run(ctx context.Context, args RunArgs) ([]m.PatchOutcome, error)

	// Inspect reports the currently configured mirror per manager
	// without writing anything.
	Inspect(ctx context.Context, args RunArgs) ([]m.MirrorStatus, error)
}

type rewriter struct {
	managers []ManagerDescriptor
	detector Detector
	fs       adapter.ConfigFS
	ui       controller.UI
}

// NewRewriter constructs a Rewriter over the given descriptor set.
func NewRewriter(managers []ManagerDescriptor, detector Detector, fs adapter.ConfigFS, ui controller.UI) Rewriter {
	return &rewriter{
		managers: managers,
		detector: detector,
		fs:       fs,
		ui:       ui,
	}
}

func (r *rewriter) Run(ctx context.Context, args RunArgs) ([]m.PatchOutcome, error) {
	selected, err := r.selectManagers(args.Only)
	if err != nil {
		return nil, err
	}

	outcomes := make([]m.PatchOutcome, 0, len(selected))

	for _, desc := range selected {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome, err := r.patchOne(ctx, desc, args)
		if err != nil {
			return outcomes, err
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// patchOne runs the full read-compare-apply-write cycle for one manager.
// Only a context/UI interruption is returned as an error; everything that
// can go wrong with the manager itself lands in the outcome.
func (r *rewriter) patchOne(ctx context.Context, desc ManagerDescriptor, args RunArgs) (m.PatchOutcome, error) {
	outcome := m.PatchOutcome{Manager: desc.Name}

	detection := r.detector.Detect(desc, args.Scope)
	if !detection.Installed {
		outcome.Status = m.NotInstalled
		outcome.Detail = "not detected on this host"

		return outcome, nil
	}

	if detection.ConfigPath == "" {
		outcome.Status = m.NotWritable
		outcome.Detail = fmt.Sprintf("no %s-scope configuration for this manager", args.Scope)

		return outcome, nil
	}

	outcome.Path = detection.ConfigPath
	target := desc.MirrorURL(args.MirrorRoot)

	original, err := r.fs.ReadFile(detection.ConfigPath)
	if err != nil && !os.IsNotExist(err) {
		outcome.Status = m.NotWritable
		outcome.Detail = readDetail(err)

		return outcome, nil
	}

	existed := err == nil

	var cfg formats.ParsedConfig

	if existed {
		cfg, err = desc.Format.Parse(detection.ConfigPath, original)
		if err != nil {
			var parseErr *formats.ParseError
			if errors.As(err, &parseErr) {
				outcome.Status = m.ParseError
				outcome.Detail = parseErr.Reason

				if parseErr.Line > 0 {
					outcome.Detail = fmt.Sprintf("line %d: %s", parseErr.Line, parseErr.Reason)
				}

				return outcome, nil
			}

			outcome.Status = m.ParseError
			outcome.Detail = err.Error()

			return outcome, nil
		}
	} else {
		cfg = desc.Format.Empty()
	}

	if current, ok := desc.Format.CurrentMirror(cfg); ok && current == target {
		outcome.Status = m.AlreadyMirrored
		outcome.Detail = "target mirror already configured"

		return outcome, nil
	}

	next := desc.Format.ApplyMirror(cfg, target).Serialize()

	// The byte comparison backstops CurrentMirror: if the transform is a
	// no-op the run is idempotent regardless of what the file contains.
	if existed && bytes.Equal(next, original) {
		outcome.Status = m.AlreadyMirrored
		outcome.Detail = "no upstream entries to rewrite"

		return outcome, nil
	}

	outcome.Diff = unifiedDiff(detection.ConfigPath, original, next)

	if args.DryRun {
		r.ui.DisplayDiff(desc.DisplayName, detection.ConfigPath, outcome.Diff)

		outcome.Status = m.Changed
		outcome.Detail = "dry run, nothing written"

		return outcome, nil
	}

	if !args.AssumeYes {
		apply, err := r.ui.ConfirmChange(ctx, desc.DisplayName, detection.ConfigPath, outcome.Diff)
		if err != nil {
			return outcome, err
		}

		if !apply {
			outcome.Status = m.Skipped
			outcome.Detail = "declined"

			return outcome, nil
		}
	}

	if err := r.fs.WriteFileAtomic(detection.ConfigPath, next, configFileMode); err != nil {
		outcome.Status = m.NotWritable
		outcome.Detail = writeDetail(err, args.Scope)
		slog.Warn("write failed", "manager", desc.Name, "path", detection.ConfigPath, "error", err)

		return outcome, nil
	}

	slog.Info("mirror configured", "manager", desc.Name, "path", detection.ConfigPath, "mirror", target)

	outcome.Status = m.Changed
	outcome.Detail = target

	return outcome, nil
}

func (r *rewriter) Inspect(ctx context.Context, args RunArgs) ([]m.MirrorStatus, error) {
	selected, err := r.selectManagers(args.Only)
	if err != nil {
		return nil, err
	}

	statuses := make([]m.MirrorStatus, 0, len(selected))

	for _, desc := range selected {
		if err := ctx.Err(); err != nil {
			return statuses, err
		}

		statuses = append(statuses, r.inspectOne(desc, args))
	}

	return statuses, nil
}

func (r *rewriter) inspectOne(desc ManagerDescriptor, args RunArgs) m.MirrorStatus {
	status := m.MirrorStatus{Manager: desc.Name}

	detection := r.detector.Detect(desc, args.Scope)
	if !detection.Installed {
		return status
	}

	status.Installed = true

	if detection.ConfigPath == "" {
		status.Detail = fmt.Sprintf("no %s-scope configuration", args.Scope)
		return status
	}

	status.Path = detection.ConfigPath

	data, err := r.fs.ReadFile(detection.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "no config file yet"
		} else {
			status.Detail = err.Error()
		}

		return status
	}

	cfg, err := desc.Format.Parse(detection.ConfigPath, data)
	if err != nil {
		status.Detail = "unparseable: " + err.Error()
		return status
	}

	if mirror, ok := desc.Format.CurrentMirror(cfg); ok {
		status.Mirror = mirror
	} else {
		status.Detail = "no mirror configured"
	}

	return status
}

// selectManagers applies the --only filter, rejecting unknown names so a
// typo does not silently process nothing.
func (r *rewriter) selectManagers(only []string) ([]ManagerDescriptor, error) {
	if len(only) == 0 {
		return r.managers, nil
	}

	byName := make(map[string]ManagerDescriptor, len(r.managers))
	for _, desc := range r.managers {
		byName[desc.Name] = desc
	}

	selected := make([]ManagerDescriptor, 0, len(only))

	for _, name := range only {
		desc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown manager %q", name)
		}

		selected = append(selected, desc)
	}

	return selected, nil
}

// Fatal reports whether a run should exit nonzero: every processed
// manager ended in an error class and nothing was configured.
func Fatal(outcomes []m.PatchOutcome) bool {
	failures, successes := 0, 0

	for _, outcome := range outcomes {
		switch {
		case outcome.Status.IsError():
			failures++
		case outcome.Status == m.Changed || outcome.Status == m.AlreadyMirrored || outcome.Status == m.Skipped:
			successes++
		}
	}

	return failures > 0 && successes == 0
}

func unifiedDiff(path m.Path, before, after []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: string(path),
		ToFile:   string(path) + " (new)",
		Context:  3,
	})
	if err != nil {
		return ""
	}

	return diff
}

func readDetail(err error) string {
	if os.IsPermission(err) {
		return "permission denied reading config"
	}

	return err.Error()
}

func writeDetail(err error, scope m.Scope) string {
	if os.IsPermission(err) {
		if scope == m.ScopeSystem {
			return "permission denied (system scope needs elevated privilege)"
		}

		return "permission denied"
	}

	return err.Error()
}
