//go:build windows

package action

import "golang.org/x/sys/windows"

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procMouseEvent      = user32.NewProc("mouse_event")
	procGetWindowText   = user32.NewProc("GetWindowTextW")
	procAsyncKeyState   = user32.NewProc("GetAsyncKeyState")
	procEnumWindows     = user32.NewProc("EnumWindows")
	procIsWindowVisible = user32.NewProc("IsWindowVisible")
)

const (
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

// LeftButton drives the left mouse button at the current cursor position.
type LeftButton struct{}

// Press sends a left button down.
func (LeftButton) Press() error {
	if err := procMouseEvent.Find(); err != nil {
		return err
	}
	_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
	return nil
}

// Release sends a left button up.
func (LeftButton) Release() error {
	if err := procMouseEvent.Find(); err != nil {
		return err
	}
	_, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0)
	return nil
}
