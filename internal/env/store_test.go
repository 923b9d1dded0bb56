package env

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{"user": User, "Machine": Machine, " system ": Machine} {
		got, err := ParseScope(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseScope("both")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(User, "JAVA_HOME")
	assert.True(t, errors.Is(err, ErrNotSet))

	require.NoError(t, store.Set(User, "Path", "a;b"))
	got, err := store.Get(User, "PATH")
	require.NoError(t, err)
	assert.Equal(t, "a;b", got, "names are case-insensitive")

	_, err = store.Get(Machine, "Path")
	assert.True(t, errors.Is(err, ErrNotSet), "scopes are independent")

	store.Deny(Machine)
	err = store.Set(Machine, "Path", "x")
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestProcessStore(t *testing.T) {
	t.Setenv("JSWITCH_TEST_VAR", "value")

	var store ProcessStore
	got, err := store.Get(Machine, "JSWITCH_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = store.Get(User, "JSWITCH_TEST_UNSET")
	assert.True(t, errors.Is(err, ErrNotSet))

	assert.Error(t, store.Set(User, "JSWITCH_TEST_VAR", "other"))
}

func TestOutcomeString(t *testing.T) {
	out := Outcome{Status: Warning, Log: []string{"one", "two"}}
	assert.Equal(t, "one\ntwo", out.String())
	assert.False(t, out.OK())
	assert.Equal(t, "warning", out.Status.String())
}
