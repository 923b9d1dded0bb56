package java

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jswitch/internal/logging"
)

// RootMode says how a candidate root is searched
type RootMode int

const (
	// Exact probes the root itself (e.g. a JAVA_HOME value)
	Exact RootMode = iota
	// Children probes every immediate subdirectory
	Children
	// ChildrenAndSelf probes every immediate subdirectory, then the root itself
	ChildrenAndSelf
	// Bundles probes <child>/Contents/Home, the macOS JavaVirtualMachines layout
	Bundles
)

// Root is a candidate location to search for Java installations
type Root struct {
	Path string
	Mode RootMode
}

// Platform supplies the launcher layout and the default roots to scan
type Platform interface {
	Layout() Layout
	CandidateRoots(extraRoot string) []Root
}

// Detector finds Java installations on the system
type Detector struct {
	platform    Platform
	searchPaths []string
}

type candidate struct {
	name string
	path string
}

// NewDetector creates a new Java detector
func NewDetector(p Platform) *Detector {
	return &Detector{platform: p}
}

// WithSearchPaths adds user-configured directories, scanned after the platform defaults
func (d *Detector) WithSearchPaths(paths ...string) *Detector {
	d.searchPaths = append(d.searchPaths, paths...)
	return d
}

// Roots returns every root Scan would visit, in order
func (d *Detector) Roots(extraRoot string) []Root {
	roots := d.platform.CandidateRoots(extraRoot)
	for _, p := range d.searchPaths {
		roots = append(roots, Root{Path: p, Mode: Children})
	}
	return roots
}

// Scan returns the installations found under all roots, deduplicated by
// resolved path and ordered newest first. Discovery order breaks ties.
func (d *Detector) Scan(extraRoot string) []JdkRecord {
	logger := logging.GetLogger("detector")
	layout := d.platform.Layout()

	records := make([]JdkRecord, 0)
	seen := make(map[string]bool)

	for _, root := range d.Roots(extraRoot) {
		if strings.TrimSpace(root.Path) == "" {
			continue
		}

		for _, c := range d.candidates(root) {
			if !layout.IsValidJdkRoot(c.path) {
				continue
			}
			key := layout.Key(c.path)
			if seen[key] {
				logger.Trace().Str("path", c.path).Msg("Skipping duplicate installation")
				continue
			}
			seen[key] = true
			records = append(records, JdkRecord{Name: c.name, InstallPath: filepath.Clean(c.path)})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return SortKey(records[i].Name).Compare(SortKey(records[j].Name)) > 0
	})

	logger.Debug().Int("found", len(records)).Msg("Scan complete")
	return records
}

// candidates lists the directories a root contributes. Unreadable roots contribute nothing.
func (d *Detector) candidates(root Root) []candidate {
	logger := logging.GetLogger("detector")
	base := filepath.Clean(root.Path)

	if root.Mode == Exact {
		return []candidate{{name: filepath.Base(base), path: base}}
	}

	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		logger.Trace().Str("root", base).Msg("Root does not exist")
		return nil
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		logger.Debug().Err(err).Str("root", base).Msg("Cannot read root")
		return nil
	}

	found := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if root.Mode == Bundles {
			found = append(found, candidate{name: entry.Name(), path: filepath.Join(dir, "Contents", "Home")})
			continue
		}
		found = append(found, candidate{name: entry.Name(), path: dir})
	}

	if root.Mode == ChildrenAndSelf {
		found = append(found, candidate{name: filepath.Base(base), path: base})
	}
	return found
}
