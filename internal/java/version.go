package java

import (
	"regexp"
	"strconv"
	"strings"
)

// JdkRecord represents a Java installation
type JdkRecord struct {
	Name        string `json:"name" yaml:"name"`                 // Display label, defaults to the directory name
	InstallPath string `json:"install_path" yaml:"install_path"` // JDK root (parent of bin)
}

// VersionKey is the ordering key derived from a directory name.
// Only major and minor are kept.
type VersionKey struct {
	Major int
	Minor int
}

// Compare returns -1, 0 or 1 as k is lower than, equal to or higher than other
func (k VersionKey) Compare(other VersionKey) int {
	switch {
	case k.Major != other.Major:
		if k.Major < other.Major {
			return -1
		}
		return 1
	case k.Minor != other.Minor:
		if k.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// IsZero reports whether the key carries no version information
func (k VersionKey) IsZero() bool {
	return k.Major == 0 && k.Minor == 0
}

var (
	nonVersionChars = regexp.MustCompile(`[^\d.]`)
	quotedVersion   = regexp.MustCompile(`"([^"]+)"`)
	firstDigitRun   = regexp.MustCompile(`\d+`)
)

// ParseVersionKey extracts major.minor from text like "jdk1.8.0_321" or "17.0.2".
// Anything unparseable yields the zero key.
func ParseVersionKey(text string) VersionKey {
	numeric := nonVersionChars.ReplaceAllString(text, "")
	if numeric == "" {
		return VersionKey{}
	}

	parts := strings.Split(numeric, ".")
	if len(parts) < 2 {
		return VersionKey{}
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return VersionKey{}
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return VersionKey{}
	}

	return VersionKey{Major: major, Minor: minor}
}

// SortKey is the key the detector orders by. Names with a single number
// such as "jdk-17" fall back to that number as the major version.
func SortKey(name string) VersionKey {
	if key := ParseVersionKey(name); !key.IsZero() {
		return key
	}

	run := firstDigitRun.FindString(name)
	if run == "" {
		return VersionKey{}
	}
	major, err := strconv.Atoi(run)
	if err != nil {
		return VersionKey{}
	}
	return VersionKey{Major: major}
}

// ExtractVersionFromBanner returns the quoted version from 'java -version' output,
// e.g. 17.0.2 from: openjdk version "17.0.2" 2022-01-18
func ExtractVersionFromBanner(output string) (string, bool) {
	if strings.TrimSpace(output) == "" {
		return "", false
	}

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "version") {
			continue
		}
		if matches := quotedVersion.FindStringSubmatch(line); len(matches) > 1 {
			return matches[1], true
		}
	}

	return "", false
}
