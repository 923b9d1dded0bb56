package java

import (
	"os"
	"path/filepath"
	"strings"
)

// Layout describes where a platform keeps the java launcher inside a JDK
type Layout struct {
	Launcher string // File name under bin/
	FoldCase bool   // Paths compare case-insensitively
}

var (
	WindowsLayout = Layout{Launcher: "java.exe", FoldCase: true}
	UnixLayout    = Layout{Launcher: "java"}
)

// LauncherPath returns the launcher location for a JDK root
func (l Layout) LauncherPath(root string) string {
	return filepath.Join(root, "bin", l.Launcher)
}

// IsValidJdkRoot checks if a path is a valid Java installation
func (l Layout) IsValidJdkRoot(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(l.LauncherPath(path))
	return err == nil && !info.IsDir()
}

// Key normalizes a path for identity comparisons.
func (l Layout) Key(path string) string {
	key := filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(key); err == nil {
		key = resolved
	}
	if l.FoldCase {
		key = strings.ToLower(key)
	}
	return key
}

// SamePath reports whether two paths name the same installation
func (l Layout) SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return l.Key(a) == l.Key(b)
}
