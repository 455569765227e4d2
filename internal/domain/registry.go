// Package domain contains the mirror rewrite engine: the supported
// manager registry, detection, and the rewrite orchestration.
package domain

import (
	"path/filepath"
	"strings"

	"remirror.dev/pkg/remirror/internal/adapter"
	"remirror.dev/pkg/remirror/internal/domain/formats"
	m "remirror.dev/pkg/remirror/internal/model"
)

// DefaultMirrorRoot is the mirror network used unless overridden by the
// --mirror flag or the mirror.root config key.
const DefaultMirrorRoot = "mirrors.tuna.tsinghua.edu.cn"

// ManagerDescriptor statically describes one supported package manager:
// how to detect it, where its configuration lives per scope, the mirror
// URL to install and the format adapter that understands the file.
// Descriptors are built once per run and never mutated.
type ManagerDescriptor struct {
	Name        string
	DisplayName string

	// Executables mark the manager as installed when any is on PATH.
	Executables []string
	// ProbeDirs mark the manager as installed when any directory exists.
	ProbeDirs []m.Path

	// Candidate config paths per scope, most specific first. The first
	// existing file wins; otherwise the first entry is the canonical
	// location for creation. An empty list means the manager has no
	// configuration at that scope.
	UserPaths   []m.Path
	SystemPaths []m.Path

	// MirrorTemplate is the target mirror URL with a {root} placeholder.
	MirrorTemplate string

	Format formats.Adapter
}

// MirrorURL resolves the descriptor's template against a mirror root.
func (d ManagerDescriptor) MirrorURL(root string) string {
	return strings.ReplaceAll(d.MirrorTemplate, "{root}", root)
}

// SupportedManagers builds the fixed, ordered set of descriptors. The
// probe supplies the home directory for user-scope candidates.
func SupportedManagers(probe adapter.SystemProbe) []ManagerDescriptor {
	home := string(probe.HomeDir())

	brewRepos := []string{
		"/opt/homebrew",
		"/usr/local/Homebrew",
		"/home/linuxbrew/.linuxbrew/Homebrew",
		filepath.Join(home, ".linuxbrew", "Homebrew"),
	}

	brewConfigs := make([]m.Path, 0, len(brewRepos))
	brewDirs := make([]m.Path, 0, len(brewRepos))

	for _, repo := range brewRepos {
		brewConfigs = append(brewConfigs, m.Path(filepath.Join(repo, ".git", "config")))
		brewDirs = append(brewDirs, m.Path(repo))
	}

	return []ManagerDescriptor{
		{
			Name:        "anaconda",
			DisplayName: "Anaconda",
			Executables: []string{"conda"},
			ProbeDirs: []m.Path{
				m.Path(filepath.Join(home, "miniconda3")),
				m.Path(filepath.Join(home, "anaconda3")),
				"/opt/conda",
			},
			UserPaths:      []m.Path{m.Path(filepath.Join(home, ".condarc"))},
			SystemPaths:    []m.Path{"/etc/conda/.condarc"},
			MirrorTemplate: "https://{root}/anaconda/pkgs/main",
			Format:         formats.NewConda(),
		},
		{
			Name:        "pacman",
			DisplayName: "Arch Linux (pacman)",
			Executables: []string{"pacman"},
			ProbeDirs:   []m.Path{"/etc/pacman.d"},
			SystemPaths: []m.Path{"/etc/pacman.d/mirrorlist"},
			// $repo and $arch are expanded by pacman, not by this tool.
			MirrorTemplate: "https://{root}/archlinux/$repo/os/$arch",
			Format:         formats.NewPacman(),
		},
		{
			Name:        "ctan",
			DisplayName: "CTAN",
			Executables: []string{"tlmgr", "kpsewhich"},
			UserPaths:   []m.Path{m.Path(filepath.Join(home, ".ctan-mirror"))},
			SystemPaths: []m.Path{"/etc/ctan-mirror"},
			MirrorTemplate: "https://{root}/CTAN",
			Format:         formats.NewCTAN(),
		},
		{
			Name:        "apt",
			DisplayName: "Debian/Ubuntu (apt)",
			Executables: []string{"apt-get"},
			ProbeDirs:   []m.Path{"/etc/apt"},
			SystemPaths: []m.Path{"/etc/apt/sources.list"},
			// Base URL only: entries keep their repository path, suite
			// and components.
			MirrorTemplate: "https://{root}",
			Format:         formats.NewApt(),
		},
		{
			Name:        "homebrew",
			DisplayName: "Homebrew",
			Executables: []string{"brew"},
			ProbeDirs:   brewDirs,
			// The brew repository is owned by whoever installed it, so
			// both scopes share the same candidates.
			UserPaths:      brewConfigs,
			SystemPaths:    brewConfigs,
			MirrorTemplate: "https://{root}/git/homebrew/brew.git",
			Format:         formats.NewHomebrew(),
		},
		{
			Name:        "pip",
			DisplayName: "PyPI (pip)",
			Executables: []string{"pip", "pip3"},
			UserPaths: []m.Path{
				m.Path(filepath.Join(home, ".config", "pip", "pip.conf")),
				m.Path(filepath.Join(home, ".pip", "pip.conf")),
			},
			SystemPaths:    []m.Path{"/etc/pip.conf"},
			MirrorTemplate: "https://{root}/pypi/web/simple",
			Format:         formats.NewPip(),
		},
		{
			Name:        "tlmgr",
			DisplayName: "TeX Live (tlmgr)",
			Executables: []string{"tlmgr"},
			UserPaths: []m.Path{
				m.Path(filepath.Join(home, ".texlive", "texmf-config", "tlmgr", "config")),
			},
			SystemPaths: []m.Path{
				"/usr/local/texlive/texmf-config/tlmgr/config",
			},
			MirrorTemplate: "https://{root}/CTAN/systems/texlive/tlnet",
			Format:         formats.NewTlmgr(),
		},
	}
}
