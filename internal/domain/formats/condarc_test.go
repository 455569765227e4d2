package formats

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const condaTarget = "https://mirrors.example.org/anaconda/pkgs/main/"

func TestCondaApplyInsertsChannelAtHead(t *testing.T) {
	original := "# conda configuration\n" +
		"channels:\n" +
		"  - conda-forge\n" +
		"  - defaults\n" +
		"ssl_verify: true\n"

	adapter := NewConda()

	cfg, err := adapter.Parse(".condarc", []byte(original))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, condaTarget).Serialize())

	var parsed struct {
		Channels  []string `yaml:"channels"`
		SSLVerify bool     `yaml:"ssl_verify"`
	}

	if err := yaml.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, got)
	}

	if len(parsed.Channels) != 3 || parsed.Channels[0] != condaTarget {
		t.Fatalf("channels = %v, want target first", parsed.Channels)
	}

	if parsed.Channels[1] != "conda-forge" || parsed.Channels[2] != "defaults" {
		t.Fatalf("existing channels reordered: %v", parsed.Channels)
	}

	if !parsed.SSLVerify {
		t.Fatalf("unrelated key dropped:\n%s", got)
	}

	if !strings.Contains(got, "# conda configuration") {
		t.Errorf("ApplyMirror() dropped the header comment:\n%s", got)
	}
}

func TestCondaApplyRemovesDuplicateTarget(t *testing.T) {
	original := "channels:\n" +
		"  - defaults\n" +
		"  - " + condaTarget + "\n"

	adapter := NewConda()

	cfg, err := adapter.Parse(".condarc", []byte(original))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, condaTarget).Serialize())

	if strings.Count(got, condaTarget) != 1 {
		t.Fatalf("target listed more than once:\n%s", got)
	}

	var parsed struct {
		Channels []string `yaml:"channels"`
	}

	if err := yaml.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if len(parsed.Channels) != 2 || parsed.Channels[0] != condaTarget || parsed.Channels[1] != "defaults" {
		t.Fatalf("channels = %v", parsed.Channels)
	}
}

func TestCondaApplyCreatesChannelsKey(t *testing.T) {
	adapter := NewConda()

	cfg, err := adapter.Parse(".condarc", []byte("ssl_verify: true\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := string(adapter.ApplyMirror(cfg, condaTarget).Serialize())

	var parsed struct {
		Channels []string `yaml:"channels"`
	}

	if err := yaml.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if len(parsed.Channels) != 1 || parsed.Channels[0] != condaTarget {
		t.Fatalf("channels = %v, want just the target", parsed.Channels)
	}
}

func TestCondaApplyOnEmptyConfig(t *testing.T) {
	adapter := NewConda()

	next := adapter.ApplyMirror(adapter.Empty(), condaTarget)

	mirror, ok := adapter.CurrentMirror(next)
	if !ok || mirror != condaTarget {
		t.Fatalf("CurrentMirror() after apply = %q, %v", mirror, ok)
	}
}

func TestCondaApplyDoesNotMutateInput(t *testing.T) {
	adapter := NewConda()

	cfg, err := adapter.Parse(".condarc", []byte("channels:\n  - defaults\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	before := string(cfg.Serialize())
	adapter.ApplyMirror(cfg, condaTarget)

	if after := string(cfg.Serialize()); after != before {
		t.Fatalf("ApplyMirror() mutated its input:\n%q\nvs\n%q", before, after)
	}
}

func TestCondaCurrentMirrorIgnoresNamedChannels(t *testing.T) {
	adapter := NewConda()

	cfg, err := adapter.Parse(".condarc", []byte("channels:\n  - conda-forge\n  - defaults\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if mirror, ok := adapter.CurrentMirror(cfg); ok {
		t.Fatalf("CurrentMirror() = %q, want no URL channel", mirror)
	}
}

func TestCondaParseRejectsNonMapping(t *testing.T) {
	adapter := NewConda()

	_, err := adapter.Parse(".condarc", []byte("- just\n- a\n- sequence\n"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
}
