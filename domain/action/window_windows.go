//go:build windows

package action

import (
	"fmt"
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/soocke/pixel-reel/domain/autopause"
)

const maxTitleChars = 256

// ForegroundWindow reports the title and executable name of the foreground
// window. With no foreground window it returns a zero WindowInfo. A process
// that cannot be opened (e.g. elevated) leaves Process empty.
func ForegroundWindow() (autopause.WindowInfo, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return autopause.WindowInfo{}, nil
	}
	info := autopause.WindowInfo{Title: windowText(uintptr(hwnd))}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return info, fmt.Errorf("window process id: %w", err)
	}
	if pid == 0 {
		return info, nil
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return info, nil
	}
	defer windows.CloseHandle(h)
	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return info, fmt.Errorf("process image name: %w", err)
	}
	info.Process = filepath.Base(windows.UTF16ToString(buf[:size]))
	return info, nil
}

// ListWindows returns titles of top-level visible windows. Empty titles are
// skipped.
func ListWindows() ([]string, error) {
	var titles []string
	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if vis, _, _ := procIsWindowVisible.Call(hwnd); vis == 0 {
			return 1
		}
		if title := windowText(hwnd); title != "" {
			titles = append(titles, title)
		}
		return 1
	})
	if r, _, err := procEnumWindows.Call(cb, 0); r == 0 {
		return nil, fmt.Errorf("enum windows: %w", err)
	}
	return titles, nil
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, maxTitleChars)
	r, _, _ := procGetWindowText.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return ""
	}
	return strings.TrimSpace(windows.UTF16ToString(buf[:r]))
}

// WindowProbe adapts ForegroundWindow to autopause.FocusProbe.
type WindowProbe struct{}

func (WindowProbe) Foreground() (autopause.WindowInfo, error) { return ForegroundWindow() }
