package env

import (
	"strings"
)

// WindowsListSeparator separates search path entries on Windows
const WindowsListSeparator = ";"

// SplitPathList splits a search path value, trimming entries and dropping empty ones
func SplitPathList(value, sep string) []string {
	parts := strings.Split(value, sep)
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		entries = append(entries, p)
	}
	return entries
}

// RebuildPath removes every entry containing oldHome and puts newBin first.
// An empty oldHome removes nothing. Existing copies of newBin are dropped so
// applying the same rewrite twice gives the same result.
func RebuildPath(current, oldHome, newBin, sep string, foldCase bool) string {
	entries := SplitPathList(current, sep)
	rebuilt := make([]string, 0, len(entries)+1)
	rebuilt = append(rebuilt, newBin)

	oldHome = strings.TrimSpace(oldHome)
	for _, p := range entries {
		if oldHome != "" && contains(p, oldHome, foldCase) {
			continue
		}
		if sameEntry(p, newBin, foldCase) {
			continue
		}
		rebuilt = append(rebuilt, p)
	}

	return strings.Join(rebuilt, sep)
}

// HasEntry reports whether value lists entry as one of its directories
func HasEntry(value, entry, sep string, foldCase bool) bool {
	for _, p := range SplitPathList(value, sep) {
		if sameEntry(p, entry, foldCase) {
			return true
		}
	}
	return false
}

func sameEntry(a, b string, foldCase bool) bool {
	a = strings.TrimRight(strings.Trim(a, `"`), `\/`)
	b = strings.TrimRight(strings.Trim(b, `"`), `\/`)
	if foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func contains(s, substr string, foldCase bool) bool {
	if foldCase {
		return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
	}
	return strings.Contains(s, substr)
}

// windowsBinDir joins root and bin with a backslash whatever the host OS is
func windowsBinDir(root string) string {
	return strings.TrimRight(root, `\/`) + `\bin`
}
