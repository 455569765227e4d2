package formats

import (
	"errors"
	"strings"
	"testing"
)

const aptTarget = "https://mirrors.example.org"

const sourcesList = "# Ubuntu sources\n" +
	"deb http://archive.ubuntu.com/ubuntu noble main restricted\n" +
	"deb http://archive.ubuntu.com/ubuntu noble-updates main restricted\n" +
	"deb-src http://security.ubuntu.com/ubuntu noble-security main\n" +
	"\n" +
	"# third-party repository, must stay untouched\n" +
	"deb [arch=amd64 signed-by=/usr/share/keyrings/docker.gpg] https://download.docker.com/linux/ubuntu noble stable\n"

func TestAptApplyRewritesOfficialHostsOnly(t *testing.T) {
	adapter := NewApt()

	cfg, err := adapter.Parse("sources.list", []byte(sourcesList))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, aptTarget).Serialize())

	wants := []string{
		"deb " + aptTarget + "/ubuntu noble main restricted\n",
		"deb " + aptTarget + "/ubuntu noble-updates main restricted\n",
		"deb-src " + aptTarget + "/ubuntu noble-security main\n",
		"deb [arch=amd64 signed-by=/usr/share/keyrings/docker.gpg] https://download.docker.com/linux/ubuntu noble stable\n",
		"# third-party repository, must stay untouched\n",
	}

	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("ApplyMirror() missing %q in:\n%s", want, got)
		}
	}

	if strings.Contains(got, "archive.ubuntu.com") || strings.Contains(got, "security.ubuntu.com") {
		t.Errorf("ApplyMirror() left an official host in place:\n%s", got)
	}
}

func TestAptApplyIsIdempotent(t *testing.T) {
	adapter := NewApt()

	cfg, err := adapter.Parse("sources.list", []byte(sourcesList))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	once := adapter.ApplyMirror(cfg, aptTarget)
	twice := adapter.ApplyMirror(once, aptTarget)

	if string(once.Serialize()) != string(twice.Serialize()) {
		t.Fatalf("second apply changed bytes")
	}
}

func TestAptCurrentMirrorPrefersUpstreamEntries(t *testing.T) {
	adapter := NewApt()

	mixed := "deb https://mirrors.example.org/ubuntu noble main\n" +
		"deb http://archive.ubuntu.com/ubuntu noble-updates main\n"

	cfg, err := adapter.Parse("sources.list", []byte(mixed))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	mirror, ok := adapter.CurrentMirror(cfg)
	if !ok || mirror != "http://archive.ubuntu.com" {
		t.Fatalf("CurrentMirror() = %q, %v; want the upstream entry", mirror, ok)
	}
}

func TestAptCurrentMirrorFallsBackToFirstEntry(t *testing.T) {
	adapter := NewApt()

	cfg, err := adapter.Parse("sources.list", []byte("deb https://mirrors.example.org/ubuntu noble main\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	mirror, ok := adapter.CurrentMirror(cfg)
	if !ok || mirror != aptTarget {
		t.Fatalf("CurrentMirror() = %q, %v", mirror, ok)
	}
}

func TestAptDebianSecurityPathIsKept(t *testing.T) {
	adapter := NewApt()

	cfg, err := adapter.Parse("sources.list", []byte("deb http://security.debian.org/debian-security bookworm-security main\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, aptTarget).Serialize())
	want := "deb " + aptTarget + "/debian-security bookworm-security main\n"

	if got != want {
		t.Fatalf("ApplyMirror() = %q, want %q", got, want)
	}
}

func TestAptParseRejectsBadGrammar(t *testing.T) {
	adapter := NewApt()

	_, err := adapter.Parse("sources.list", []byte("this is not an apt source line\n"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
}

func TestAptSourceURI(t *testing.T) {
	cases := []struct {
		name string
		line string
		uri  string
		ok   bool
	}{
		{"plain deb", "deb http://deb.debian.org/debian bookworm main", "http://deb.debian.org/debian", true},
		{"deb-src", "deb-src http://deb.debian.org/debian bookworm main", "http://deb.debian.org/debian", true},
		{"options block", "deb [arch=amd64] https://x.example/repo stable main", "https://x.example/repo", true},
		{"options block with spaces", "deb [arch=amd64 trusted=yes] https://x.example/repo stable main", "https://x.example/repo", true},
		{"comment", "# deb http://deb.debian.org/debian bookworm main", "", false},
		{"garbage", "garbage line", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uri, ok := aptSourceURI(tc.line)
			if ok != tc.ok || uri != tc.uri {
				t.Fatalf("aptSourceURI(%q) = %q, %v; want %q, %v", tc.line, uri, ok, tc.uri, tc.ok)
			}
		})
	}
}
