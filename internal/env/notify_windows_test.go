package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingChangeBroadcast(t *testing.T) {
	n := NewNotifier()
	assert.IsType(t, SettingChangeNotifier{}, n)
	assert.NotPanics(t, n.Broadcast)
}
