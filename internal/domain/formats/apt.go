package formats

import (
	"net/url"
	"strings"

	m "remirror.dev/pkg/remirror/internal/model"
)

// aptOfficialHosts are the upstream archive hosts whose entries get
// repointed at the mirror. Third-party repository lines are never touched.
var aptOfficialHosts = map[string]bool{
	"deb.debian.org":          true,
	"ftp.debian.org":          true,
	"security.debian.org":     true,
	"httpredir.debian.org":    true,
	"archive.ubuntu.com":      true,
	"security.ubuntu.com":     true,
	"ports.ubuntu.com":        true,
	"old-releases.ubuntu.com": true,
}

var aptOfficialSuffixes = []string{
	".archive.ubuntu.com", // country mirrors such as de.archive.ubuntu.com
	".debian.org",
}

// aptAdapter rewrites /etc/apt/sources.list. Every deb/deb-src line whose
// URI points at an official Debian or Ubuntu archive host has its scheme
// and host replaced by the target base while the repository path, suite
// and components are kept. The target here is the mirror base URL without
// a path, e.g. https://mirrors.example.org.
type aptAdapter struct{}

// NewApt returns the adapter for Debian/Ubuntu's apt.
func NewApt() Adapter {
	return &aptAdapter{}
}

func (a *aptAdapter) Kind() string {
	return "sources.list"
}

func (a *aptAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	doc := parseLineDocument(data)

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		if _, ok := aptSourceURI(line); !ok {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: "expected deb or deb-src entry"}
		}
	}

	return doc, nil
}

func (a *aptAdapter) Empty() ParsedConfig {
	return &lineDocument{}
}

func (a *aptAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	doc := cfg.(*lineDocument)
	first := ""

	for _, line := range doc.lines {
		uri, ok := aptSourceURI(line)
		if !ok || isBlankOrComment(line) {
			continue
		}

		base, host, ok := splitURIBase(uri)
		if !ok {
			continue
		}

		if first == "" {
			first = base
		}

		// An entry still pointing upstream wins: it is what a rewrite
		// would change, so it is "the configured source" for comparison.
		if isAptOfficialHost(host) {
			return base, true
		}
	}

	if first != "" {
		return first, true
	}

	return "", false
}

func (a *aptAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cfg.(*lineDocument).clone()
	target = strings.TrimSuffix(target, "/")

	for i, line := range doc.lines {
		if isBlankOrComment(line) {
			continue
		}

		uri, ok := aptSourceURI(line)
		if !ok {
			continue
		}

		_, host, ok := splitURIBase(uri)
		if !ok || !isAptOfficialHost(host) {
			continue
		}

		parsed, err := url.Parse(uri)
		if err != nil {
			continue
		}

		doc.lines[i] = strings.Replace(line, uri, target+parsed.Path, 1)
	}

	return doc
}

// aptSourceURI extracts the URI token of a deb/deb-src line, skipping an
// optional [arch=...] options block (which may itself contain spaces).
func aptSourceURI(line string) (string, bool) {
	if isBlankOrComment(line) {
		return "", false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || (fields[0] != "deb" && fields[0] != "deb-src") {
		return "", false
	}

	i := 1
	if strings.HasPrefix(fields[i], "[") {
		for i < len(fields) && !strings.HasSuffix(fields[i], "]") {
			i++
		}

		i++
	}

	if i >= len(fields) || !strings.Contains(fields[i], ":") {
		return "", false
	}

	return fields[i], true
}

// splitURIBase returns scheme://host for an absolute URI.
func splitURIBase(uri string) (base, host string, ok bool) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", "", false
	}

	return parsed.Scheme + "://" + parsed.Host, parsed.Hostname(), true
}

func isAptOfficialHost(host string) bool {
	if aptOfficialHosts[host] {
		return true
	}

	for _, suffix := range aptOfficialSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}

	return false
}
