package env

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	userEnvRegPath   = `Environment`
	systemEnvRegPath = `System\CurrentControlSet\Control\Session Manager\Environment`
)

// RegistryStore keeps user variables under HKCU\Environment and machine
// variables under HKLM, the places Windows reads them from at logon.
type RegistryStore struct{}

// NewSystemStore returns the Store backing persistent environment variables
func NewSystemStore() Store {
	return RegistryStore{}
}

func (RegistryStore) location(scope Scope) (registry.Key, string) {
	if scope == Machine {
		return registry.LOCAL_MACHINE, systemEnvRegPath
	}
	return registry.CURRENT_USER, userEnvRegPath
}

func (r RegistryStore) Get(scope Scope, name string) (string, error) {
	root, path := r.location(scope)
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open %s environment key: %w", scope, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", fmt.Errorf("%s %s: %w", scope, name, ErrNotSet)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s: %w", scope, name, err)
	}
	return value, nil
}

func (r RegistryStore) Set(scope Scope, name, value string) error {
	root, path := r.location(scope)
	key, err := registry.OpenKey(root, path, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		if scope == Machine {
			return fmt.Errorf("failed to open machine environment key (run as administrator): %w", err)
		}
		return fmt.Errorf("failed to open %s environment key: %w", scope, err)
	}
	defer key.Close()

	// Path keeps %VAR% references, so it must stay an expandable string
	if strings.EqualFold(name, PathVar) {
		err = key.SetExpandStringValue(name, value)
	} else {
		err = key.SetStringValue(name, value)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s %s: %w", scope, name, err)
	}
	return nil
}
