package env

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"jswitch/internal/logging"
)

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002

	broadcastTimeoutMillis = 5000
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	sendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

// SettingChangeNotifier broadcasts WM_SETTINGCHANGE to all top-level windows
type SettingChangeNotifier struct{}

// NewNotifier returns the platform notifier
func NewNotifier() Notifier {
	return SettingChangeNotifier{}
}

// Broadcast sends WM_SETTINGCHANGE with "Environment". Hung windows are skipped.
func (SettingChangeNotifier) Broadcast() {
	logger := logging.GetLogger("notify")

	if err := sendMessageTimeoutW.Find(); err != nil {
		logger.Debug().Err(err).Msg("SendMessageTimeoutW unavailable")
		return
	}

	env, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}

	var result uintptr
	ret, _, callErr := sendMessageTimeoutW.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(smtoAbortIfHung),
		uintptr(broadcastTimeoutMillis),
		uintptr(unsafe.Pointer(&result)),
	)
	if ret == 0 {
		logger.Debug().Err(callErr).Msg("WM_SETTINGCHANGE broadcast did not complete")
		return
	}
	logger.Debug().Msg("Broadcast WM_SETTINGCHANGE")
}
