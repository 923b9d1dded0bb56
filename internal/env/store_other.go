//go:build !windows

package env

// NewSystemStore returns the Store backing persistent environment variables.
// Outside Windows there is no scoped store, so the process environment is read.
func NewSystemStore() Store {
	return ProcessStore{}
}
