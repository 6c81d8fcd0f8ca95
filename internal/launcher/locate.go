package launcher

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"igdm/internal/logging"
)

// SourceKind records which kind of candidate produced a Reference.
type SourceKind int

const (
	KindExplicitBundled SourceKind = iota
	KindProjectLocal
	KindSystemWellKnown
	KindBareCommand
)

func (k SourceKind) String() string {
	switch k {
	case KindExplicitBundled:
		return "bundled"
	case KindProjectLocal:
		return "project"
	case KindSystemWellKnown:
		return "system"
	default:
		return "path-lookup"
	}
}

// Reference is the located launcher binary. A KindBareCommand reference
// holds only the command name; the OS search path resolves it at spawn time.
type Reference struct {
	ResolvedPath string
	Kind         SourceKind
}

// Candidate is one place to look. Pattern may contain glob metacharacters.
type Candidate struct {
	Pattern string
	Kind    SourceKind
}

// Locator searches candidate paths for the launcher binary.
type Locator struct {
	ExeDir  string
	WorkDir string
	HomeDir string
	// Extra patterns are searched first, as bundled candidates.
	Extra []string
	// SystemDirs overrides the well-known system prefixes; nil means defaults.
	SystemDirs []string
}

// defaultSystemDirs lists well-known install prefixes, most specific first.
var defaultSystemDirs = []string{
	"/Library/Frameworks/Python.framework/Versions/*/bin",
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/usr/bin",
}

// Candidates returns the ordered candidate list for name.
func (l *Locator) Candidates(name string) []Candidate {
	var out []Candidate
	for _, p := range l.Extra {
		out = append(out, Candidate{Pattern: p, Kind: KindExplicitBundled})
	}
	if l.ExeDir != "" {
		out = append(out, Candidate{Pattern: filepath.Join(l.ExeDir, "bin", name), Kind: KindExplicitBundled})
	}
	if l.WorkDir != "" {
		out = append(out,
			Candidate{Pattern: filepath.Join(l.WorkDir, "bin", name), Kind: KindProjectLocal},
			Candidate{Pattern: filepath.Join(l.WorkDir, ".venv", "bin", name), Kind: KindProjectLocal},
		)
	}
	if l.HomeDir != "" {
		out = append(out, Candidate{Pattern: filepath.Join(l.HomeDir, ".local", "bin", name), Kind: KindSystemWellKnown})
	}
	systemDirs := l.SystemDirs
	if systemDirs == nil {
		systemDirs = defaultSystemDirs
	}
	for _, dir := range systemDirs {
		out = append(out, Candidate{Pattern: filepath.Join(dir, name), Kind: KindSystemWellKnown})
	}
	return out
}

// Locate returns the first existing candidate for name, or a bare-name
// reference when nothing on disk matches. Results are not cached.
func (l *Locator) Locate(name string) Reference {
	for _, c := range l.Candidates(name) {
		for _, path := range expand(c.Pattern) {
			if isFile(path) {
				logging.Status("Using %s at: %s", name, path)
				logging.Debug("launcher located", "path", path, "kind", c.Kind.String())
				return Reference{ResolvedPath: path, Kind: c.Kind}
			}
		}
	}
	logging.Debug("launcher not found on disk, deferring to PATH", "name", name)
	return Reference{ResolvedPath: name, Kind: KindBareCommand}
}

// expand resolves glob patterns, newest version first.
func expand(pattern string) []string {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		logging.Debug("bad launcher glob", "pattern", pattern, "error", err)
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return versionLess(matches[j], matches[i])
	})
	return matches
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
