package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Scope is the visibility tier of an environment variable
type Scope int

const (
	User Scope = iota
	Machine
)

const (
	JavaHomeVar = "JAVA_HOME"
	PathVar     = "Path"
)

// ErrNotSet is returned by Store.Get when a variable has no value at that scope
var ErrNotSet = errors.New("variable not set")

func (s Scope) String() string {
	switch s {
	case User:
		return "user"
	case Machine:
		return "machine"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// ParseScope accepts "user" or "machine" ("system" is an alias for machine)
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return User, nil
	case "machine", "system":
		return Machine, nil
	default:
		return 0, fmt.Errorf("unknown scope %q (want user or machine)", s)
	}
}

// Store reads and writes environment variables by scope
type Store interface {
	Get(scope Scope, name string) (string, error)
	Set(scope Scope, name, value string) error
}

// MemoryStore is an in-memory Store. Variable names are case-insensitive.
type MemoryStore struct {
	mu     sync.Mutex
	vars   map[Scope]map[string]string
	denied map[Scope]bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vars:   make(map[Scope]map[string]string),
		denied: make(map[Scope]bool),
	}
}

// Deny makes every write to scope fail, as a non-admin write to machine scope does
func (m *MemoryStore) Deny(scope Scope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[scope] = true
}

func (m *MemoryStore) Get(scope Scope, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.vars[scope][strings.ToUpper(name)]
	if !ok {
		return "", fmt.Errorf("%s %s: %w", scope, name, ErrNotSet)
	}
	return value, nil
}

func (m *MemoryStore) Set(scope Scope, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.denied[scope] {
		return fmt.Errorf("write %s %s: %w", scope, name, os.ErrPermission)
	}
	if m.vars[scope] == nil {
		m.vars[scope] = make(map[string]string)
	}
	m.vars[scope][strings.ToUpper(name)] = value
	return nil
}

// ProcessStore reads the current process environment for every scope.
// It cannot persist anything.
type ProcessStore struct{}

func (ProcessStore) Get(scope Scope, name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("%s %s: %w", scope, name, ErrNotSet)
	}
	return value, nil
}

func (ProcessStore) Set(scope Scope, name, value string) error {
	return fmt.Errorf("cannot persist %s at %s scope on this platform", name, scope)
}

// lookup returns the value or "" when unset; other errors are returned
func lookup(store Store, scope Scope, name string) (string, error) {
	value, err := store.Get(scope, name)
	if errors.Is(err, ErrNotSet) {
		return "", nil
	}
	return value, err
}
