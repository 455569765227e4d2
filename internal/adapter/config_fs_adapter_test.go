package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	m "remirror.dev/pkg/remirror/internal/model"
)

func TestWriteFileAtomicCreatesParentDirs(t *testing.T) {
	fs := NewConfigFS(afero.NewMemMapFs())

	path := m.Path("/home/tester/.config/pip/pip.conf")

	if err := fs.WriteFileAtomic(path, []byte("[global]\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "[global]\n" {
		t.Fatalf("ReadFile() = %q", data)
	}
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	fs := NewConfigFS(afero.NewMemMapFs())

	path := m.Path("/etc/pip.conf")

	if err := fs.WriteFileAtomic(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("first write error = %v", err)
	}

	if err := fs.WriteFileAtomic(path, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("second write error = %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "new\n" {
		t.Fatalf("ReadFile() = %q, want replaced content", data)
	}
}

func TestWriteFileAtomicLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalConfigFS()

	path := m.Path(filepath.Join(dir, "mirrorlist"))

	if err := fs.WriteFileAtomic(path, []byte("Server = https://mirrors.example.org\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	if len(entries) != 1 || entries[0].Name() != "mirrorlist" {
		t.Fatalf("directory contains %v, want just mirrorlist", entries)
	}
}

func TestWriteFileAtomicFailureKeepsOriginal(t *testing.T) {
	base := afero.NewMemMapFs()

	if err := afero.WriteFile(base, "/etc/pip.conf", []byte("original\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fs := NewConfigFS(afero.NewReadOnlyFs(base))

	if err := fs.WriteFileAtomic("/etc/pip.conf", []byte("changed\n"), 0o644); err == nil {
		t.Fatalf("WriteFileAtomic() on a read-only filesystem succeeded")
	}

	data, err := afero.ReadFile(base, "/etc/pip.conf")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "original\n" {
		t.Fatalf("failed write modified the file: %q", data)
	}
}

func TestExists(t *testing.T) {
	memFs := afero.NewMemMapFs()

	if err := afero.WriteFile(memFs, "/etc/pip.conf", []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := memFs.MkdirAll("/etc/apt", 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	fs := NewConfigFS(memFs)

	if ok, err := fs.Exists("/etc/pip.conf"); err != nil || !ok {
		t.Fatalf("Exists(file) = %v, %v", ok, err)
	}

	if ok, err := fs.Exists("/etc/apt"); err != nil || ok {
		t.Fatalf("Exists(dir) = %v, %v; directories are not config files", ok, err)
	}

	if ok, err := fs.Exists("/nope"); err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
}

func TestReadFileMissing(t *testing.T) {
	fs := NewConfigFS(afero.NewMemMapFs())

	_, err := fs.ReadFile("/nope")
	if !os.IsNotExist(err) {
		t.Fatalf("ReadFile() error = %v, want not-exist", err)
	}
}
