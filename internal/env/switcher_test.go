package env

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T, scope Scope, javaHome, path string) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	if javaHome != "" {
		require.NoError(t, store.Set(scope, JavaHomeVar, javaHome))
	}
	require.NoError(t, store.Set(scope, PathVar, path))
	return store
}

func TestSetActiveReplacesOldEntries(t *testing.T) {
	store := seededStore(t, Machine, `C:\Java\jdk-11`, `C:\Java\jdk-11\bin;C:\Windows;C:\Java\jdk-11\jre\bin;C:\tools`)
	s := NewSwitcher(store)

	out := s.SetActive(`C:\Java\jdk-17`, Machine)
	require.True(t, out.OK(), out.String())
	assert.Equal(t, Machine, out.Scope)

	home, err := store.Get(Machine, JavaHomeVar)
	require.NoError(t, err)
	assert.Equal(t, `C:\Java\jdk-17`, home)

	path, err := store.Get(Machine, PathVar)
	require.NoError(t, err)
	assert.Equal(t, `C:\Java\jdk-17\bin;C:\Windows;C:\tools`, path)
}

func TestSetActiveIsIdempotent(t *testing.T) {
	store := seededStore(t, User, `C:\Java\jdk-11`, `C:\Java\jdk-11\bin;C:\Windows`)
	s := NewSwitcher(store)

	require.True(t, s.SetActive(`C:\Java\jdk-17`, User).OK())
	first, _ := store.Get(User, PathVar)

	require.True(t, s.SetActive(`C:\Java\jdk-17`, User).OK())
	second, _ := store.Get(User, PathVar)

	assert.Equal(t, first, second)
	assert.Equal(t, `C:\Java\jdk-17\bin;C:\Windows`, second)
}

func TestSetActiveWithoutPreviousJavaHome(t *testing.T) {
	store := NewMemoryStore()
	s := NewSwitcher(store)

	out := s.SetActive(`C:\Java\jdk-21`, User)
	require.True(t, out.OK(), out.String())

	path, err := store.Get(User, PathVar)
	require.NoError(t, err)
	assert.Equal(t, `C:\Java\jdk-21\bin`, path)
}

func TestSetActiveDeniedScopeReportsError(t *testing.T) {
	store := seededStore(t, Machine, `C:\Java\jdk-11`, `C:\Windows`)
	store.Deny(Machine)
	s := NewSwitcher(store)

	var out Outcome
	assert.NotPanics(t, func() { out = s.SetActive(`C:\Java\jdk-17`, Machine) })
	assert.Equal(t, Error, out.Status)
	assert.Contains(t, out.Message, "permission denied")
	assert.Contains(t, out.Message, "machine")

	home, _ := store.Get(Machine, JavaHomeVar)
	assert.Equal(t, `C:\Java\jdk-11`, home, "denied write must not change state")
}

type readFailStore struct{ *MemoryStore }

func (r readFailStore) Get(scope Scope, name string) (string, error) {
	return "", errors.New("registry unavailable")
}

func TestSetActiveReadFailureReportsError(t *testing.T) {
	s := NewSwitcher(readFailStore{NewMemoryStore()})

	out := s.SetActive(`C:\Java\jdk-17`, User)
	assert.Equal(t, Error, out.Status)
	assert.Contains(t, out.Message, "registry unavailable")
}

// dropStore accepts writes but never persists JAVA_HOME
type dropStore struct{ *MemoryStore }

func (d dropStore) Set(scope Scope, name, value string) error {
	if name == JavaHomeVar {
		return nil
	}
	return d.MemoryStore.Set(scope, name, value)
}

func TestSetActiveVerificationMismatchWarns(t *testing.T) {
	s := NewSwitcher(dropStore{NewMemoryStore()})

	out := s.SetActive(`C:\Java\jdk-17`, User)
	assert.Equal(t, Warning, out.Status)
	assert.Contains(t, out.Message, "JAVA_HOME")
}

func TestSetActiveBothScopes(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(User, PathVar, `C:\Users\me\bin`))
	require.NoError(t, store.Set(Machine, PathVar, `C:\Windows`))
	s := NewSwitcher(store)

	out := s.SetActiveBothScopes(`C:\Java\jdk-17`)
	require.True(t, out.OK(), out.String())
	assert.Equal(t, Machine, out.Scope)
	require.Len(t, out.Log, 2)
	assert.Contains(t, out.Log[0], "user")
	assert.Contains(t, out.Log[1], "machine")

	userPath, _ := store.Get(User, PathVar)
	machinePath, _ := store.Get(Machine, PathVar)
	assert.Equal(t, `C:\Java\jdk-17\bin;C:\Users\me\bin`, userPath)
	assert.Equal(t, `C:\Java\jdk-17\bin;C:\Windows`, machinePath)
}

func TestSetActiveBothScopesMachineDenied(t *testing.T) {
	store := NewMemoryStore()
	store.Deny(Machine)
	s := NewSwitcher(store)

	out := s.SetActiveBothScopes(`C:\Java\jdk-17`)
	assert.Equal(t, Error, out.Status)
	assert.Equal(t, Machine, out.Scope)

	home, err := store.Get(User, JavaHomeVar)
	require.NoError(t, err)
	assert.Equal(t, `C:\Java\jdk-17`, home)
}

func TestPlanDoesNotWrite(t *testing.T) {
	store := seededStore(t, User, `C:\Java\jdk-11`, `C:\Java\jdk-11\bin;C:\Windows`)
	s := NewSwitcher(store)

	change, err := s.Plan(`C:\Java\jdk-17`, User)
	require.NoError(t, err)
	assert.Equal(t, `C:\Java\jdk-11`, change.OldHome)
	assert.Equal(t, `C:\Java\jdk-11\bin;C:\Windows`, change.Before)
	assert.Equal(t, `C:\Java\jdk-17\bin;C:\Windows`, change.After)

	home, _ := store.Get(User, JavaHomeVar)
	assert.Equal(t, `C:\Java\jdk-11`, home)
}
