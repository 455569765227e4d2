package domain

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	m "remirror.dev/pkg/remirror/internal/model"
)

// DefaultReachabilityTimeout bounds the advisory mirror probe. The check
// never blocks the write path; a slow or absent network only costs this
// much wall time.
const DefaultReachabilityTimeout = 3 * time.Second

// MirrorTarget names one manager's resolved mirror URL for probing.
type MirrorTarget struct {
	Manager string
	URL     string
}

// ReachabilityChecker probes mirror URLs. Results are advisory: any HTTP
// response counts as reachable, only transport failures do not.
type ReachabilityChecker interface {
	Check(ctx context.Context, targets []MirrorTarget) []m.ReachabilityResult
}

type httpReachabilityChecker struct {
	client  *http.Client
	timeout time.Duration
}

// NewReachabilityChecker constructs a checker with the given per-run
// timeout (zero means DefaultReachabilityTimeout).
func NewReachabilityChecker(timeout time.Duration) ReachabilityChecker {
	if timeout <= 0 {
		timeout = DefaultReachabilityTimeout
	}

	return &httpReachabilityChecker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (c *httpReachabilityChecker) Check(ctx context.Context, targets []MirrorTarget) []m.ReachabilityResult {
	results := make([]m.ReachabilityResult, len(targets))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var group errgroup.Group

	for i, target := range targets {
		i, target := i, target
		group.Go(func() error {
			results[i] = c.probe(ctx, target)
			return nil
		})
	}

	_ = group.Wait()

	return results
}

func (c *httpReachabilityChecker) probe(ctx context.Context, target MirrorTarget) m.ReachabilityResult {
	result := m.ReachabilityResult{Manager: target.Manager, URL: probeURL(target.URL)}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, result.URL, nil)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	resp, err := c.client.Do(req)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	_ = resp.Body.Close()

	result.OK = true
	result.Detail = resp.Status

	return result
}

// probeURL strips manager-side variables (pacman's $repo/$arch) so the
// probe hits a plain path on the mirror host.
func probeURL(raw string) string {
	if i := strings.Index(raw, "$"); i >= 0 {
		return strings.TrimSuffix(raw[:i], "/")
	}

	return raw
}

// MirrorTargets resolves the probe targets for a descriptor set.
func MirrorTargets(managers []ManagerDescriptor, root string) []MirrorTarget {
	targets := make([]MirrorTarget, 0, len(managers))

	for _, desc := range managers {
		targets = append(targets, MirrorTarget{Manager: desc.Name, URL: desc.MirrorURL(root)})
	}

	return targets
}
