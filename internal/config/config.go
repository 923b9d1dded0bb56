package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const (
	// AppDir is the directory name under the XDG config home
	AppDir = "jswitch"

	// FileName is the config file name inside AppDir
	FileName = "config.toml"

	// EnvConfigPath overrides the config file location
	EnvConfigPath = "JSWITCH_CONFIG"
)

var (
	// ErrJdkExists is returned when a JDK path is already registered
	ErrJdkExists = errors.New("jdk already registered")

	// ErrJdkNotFound is returned when no entry matches a name or path
	ErrJdkNotFound = errors.New("jdk not registered")
)

// Config holds the persisted JDK list and tool settings
type Config struct {
	Jdks        []JdkEntry   `toml:"jdks"`         // Known JDKs, in display order
	SearchPaths []string     `toml:"search_paths"` // Extra parent directories to scan
	Update      UpdateConfig `toml:"update"`
	path        string
}

// JdkEntry is a named JDK root
type JdkEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// UpdateConfig holds settings for the self update check
type UpdateConfig struct {
	Enabled     bool      `toml:"enabled"`
	AutoCheck   bool      `toml:"auto_check"`
	LastCheck   time.Time `toml:"last_check"`
	SkipVersion string    `toml:"skip_version"`
}

// DefaultPath returns $JSWITCH_CONFIG or the XDG config location
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppDir, FileName)
}

// Default returns an empty configuration bound to path
func Default(path string) *Config {
	return &Config{
		Jdks:        make([]JdkEntry, 0),
		SearchPaths: make([]string, 0),
		Update: UpdateConfig{
			Enabled:   true,
			AutoCheck: true,
		},
		path: path,
	}
}

// Load reads the config at path, or DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Files written by PowerShell's Set-Content -Encoding UTF8 start with a BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.sanitize()
	cfg.path = path
	return cfg, nil
}

// Path returns the file the config is saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration, creating its directory
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}

func (c *Config) sanitize() {
	jdks := make([]JdkEntry, 0, len(c.Jdks))
	for _, j := range c.Jdks {
		j.Path = normalize(j.Path)
		if j.Path == "" || containsPath(jdks, j.Path) {
			continue
		}
		j.Name = strings.TrimSpace(j.Name)
		if j.Name == "" {
			j.Name = filepath.Base(j.Path)
		}
		jdks = append(jdks, j)
	}
	c.Jdks = jdks

	paths := make([]string, 0, len(c.SearchPaths))
	for _, p := range c.SearchPaths {
		p = normalize(p)
		if p == "" || hasFold(paths, p) {
			continue
		}
		paths = append(paths, p)
	}
	c.SearchPaths = paths
}

// AddJdk registers a JDK root. An empty name defaults to the directory name.
func (c *Config) AddJdk(name, path string) error {
	path = normalize(path)
	if path == "" {
		return fmt.Errorf("empty jdk path")
	}
	if containsPath(c.Jdks, path) {
		return fmt.Errorf("%s: %w", path, ErrJdkExists)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(path)
	}
	c.Jdks = append(c.Jdks, JdkEntry{Name: name, Path: path})
	return nil
}

// RemoveJdk drops the entry matching a name or path
func (c *Config) RemoveJdk(nameOrPath string) bool {
	i := c.indexOf(nameOrPath)
	if i < 0 {
		return false
	}
	c.Jdks = append(c.Jdks[:i], c.Jdks[i+1:]...)
	return true
}

// RenameJdk changes the display name of the entry matching a name or path
func (c *Config) RenameJdk(nameOrPath, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("empty jdk name")
	}
	i := c.indexOf(nameOrPath)
	if i < 0 {
		return fmt.Errorf("%s: %w", nameOrPath, ErrJdkNotFound)
	}
	c.Jdks[i].Name = newName
	return nil
}

// FindJdk looks an entry up by path first, then by name
func (c *Config) FindJdk(nameOrPath string) (JdkEntry, bool) {
	i := c.indexOf(nameOrPath)
	if i < 0 {
		return JdkEntry{}, false
	}
	return c.Jdks[i], true
}

// HasJdk checks if a JDK path is registered
func (c *Config) HasJdk(path string) bool {
	return containsPath(c.Jdks, normalize(path))
}

// SetJdks replaces the JDK list, keeping the first of any duplicate paths
func (c *Config) SetJdks(entries []JdkEntry) {
	c.Jdks = append([]JdkEntry(nil), entries...)
	c.sanitize()
}

func (c *Config) indexOf(nameOrPath string) int {
	key := strings.TrimSpace(nameOrPath)
	if key == "" {
		return -1
	}
	path := normalize(key)
	for i, j := range c.Jdks {
		if strings.EqualFold(j.Path, path) {
			return i
		}
	}
	for i, j := range c.Jdks {
		if strings.EqualFold(j.Name, key) {
			return i
		}
	}
	return -1
}

// AddSearchPath adds a parent directory scanned for JDKs
func (c *Config) AddSearchPath(path string) bool {
	path = normalize(path)
	if path == "" || hasFold(c.SearchPaths, path) {
		return false
	}
	c.SearchPaths = append(c.SearchPaths, path)
	return true
}

// RemoveSearchPath removes a search path
func (c *Config) RemoveSearchPath(path string) bool {
	path = normalize(path)
	for i, p := range c.SearchPaths {
		if strings.EqualFold(p, path) {
			c.SearchPaths = append(c.SearchPaths[:i], c.SearchPaths[i+1:]...)
			return true
		}
	}
	return false
}

// HasSearchPath checks if a path exists in search paths
func (c *Config) HasSearchPath(path string) bool {
	return hasFold(c.SearchPaths, normalize(path))
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = filepath.Clean(path)
	if path == "." {
		return ""
	}
	return path
}

func containsPath(jdks []JdkEntry, path string) bool {
	for _, j := range jdks {
		if strings.EqualFold(j.Path, path) {
			return true
		}
	}
	return false
}

func hasFold(list []string, s string) bool {
	for _, p := range list {
		if strings.EqualFold(p, s) {
			return true
		}
	}
	return false
}
