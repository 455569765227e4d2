package formats

import (
	"errors"
	"strings"
	"testing"
)

const pipTarget = "https://mirrors.example.org/pypi/web/simple"

func TestPipApplyReplacesIndexURL(t *testing.T) {
	original := "# pip configuration\n" +
		"[global]\n" +
		"timeout = 60\n" +
		"index-url = https://pypi.org/simple\n" +
		"\n" +
		"[install]\n" +
		"no-compile = yes\n"

	adapter := NewPip()

	cfg, err := adapter.Parse("pip.conf", []byte(original))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if mirror, ok := adapter.CurrentMirror(cfg); !ok || mirror != "https://pypi.org/simple" {
		t.Fatalf("CurrentMirror() = %q, %v", mirror, ok)
	}

	got := string(adapter.ApplyMirror(cfg, pipTarget).Serialize())
	want := strings.Replace(original, "index-url = https://pypi.org/simple", "index-url = "+pipTarget, 1)

	if got != want {
		t.Fatalf("ApplyMirror() =\n%q\nwant\n%q", got, want)
	}
}

func TestPipApplyCreatesGlobalSection(t *testing.T) {
	original := "[install]\nno-compile = yes\n"

	adapter := NewPip()

	cfg, err := adapter.Parse("pip.conf", []byte(original))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, pipTarget).Serialize())
	want := "[install]\nno-compile = yes\n\n[global]\nindex-url = " + pipTarget + "\n"

	if got != want {
		t.Fatalf("ApplyMirror() =\n%q\nwant\n%q", got, want)
	}
}

func TestPipApplyOnEmptyConfig(t *testing.T) {
	adapter := NewPip()

	next := adapter.ApplyMirror(adapter.Empty(), pipTarget)

	want := "[global]\nindex-url = " + pipTarget + "\n"
	if got := string(next.Serialize()); got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}

	if mirror, ok := adapter.CurrentMirror(next); !ok || mirror != pipTarget {
		t.Fatalf("CurrentMirror() after apply = %q, %v", mirror, ok)
	}
}

func TestPipApplyIsIdempotent(t *testing.T) {
	adapter := NewPip()

	once := adapter.ApplyMirror(adapter.Empty(), pipTarget)
	twice := adapter.ApplyMirror(once, pipTarget)

	if string(once.Serialize()) != string(twice.Serialize()) {
		t.Fatalf("second apply changed bytes:\n%q\nvs\n%q", once.Serialize(), twice.Serialize())
	}
}

func TestPipParseRejectsBadGrammar(t *testing.T) {
	adapter := NewPip()

	_, err := adapter.Parse("pip.conf", []byte("[global]\nthis is not a key value pair\n"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}

	if parseErr.Line != 2 {
		t.Fatalf("ParseError.Line = %d, want 2", parseErr.Line)
	}
}

func TestPipApplyDoesNotTouchOtherSections(t *testing.T) {
	original := "[freeze]\ntimeout = 10\n\n[global]\nindex-url = https://pypi.org/simple\nretries = 3\n"

	adapter := NewPip()

	cfg, err := adapter.Parse("pip.conf", []byte(original))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, pipTarget).Serialize())

	for _, kept := range []string{"[freeze]", "timeout = 10", "retries = 3"} {
		if !strings.Contains(got, kept) {
			t.Errorf("ApplyMirror() dropped %q:\n%s", kept, got)
		}
	}

	if strings.Contains(got, "pypi.org") {
		t.Errorf("ApplyMirror() left the old index url in place:\n%s", got)
	}
}
