package adapter

import (
	"os"
	"os/exec"

	m "remirror.dev/pkg/remirror/internal/model"
)

// SystemProbe abstracts the cheap, read-only host signals the detector
// uses: executable lookup, directory presence and the home directory.
type SystemProbe interface {
	// LookPath reports whether an executable is on the search path.
	LookPath(name string) bool

	// DirExists reports whether a directory exists at path.
	DirExists(path m.Path) bool

	// HomeDir returns the invoking user's home directory.
	HomeDir() m.Path
}

// LocalSystemProbe implements SystemProbe against the host.
type LocalSystemProbe struct{}

// NewLocalSystemProbe constructs a LocalSystemProbe.
func NewLocalSystemProbe() *LocalSystemProbe {
	return &LocalSystemProbe{}
}

// LookPath checks the executable search path.
func (p *LocalSystemProbe) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// DirExists checks for a directory at path.
func (p *LocalSystemProbe) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

// HomeDir returns the user's home directory, or "." when unknown.
func (p *LocalSystemProbe) HomeDir() m.Path {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return m.Path(home)
}
