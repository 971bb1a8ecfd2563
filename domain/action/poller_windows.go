//go:build windows

package action

import (
	"context"
	"time"

	"github.com/soocke/pixel-reel/domain/autopause"
)

const (
	defaultKeyPollInterval = 15 * time.Millisecond
	firstKeyboardVK        = 0x08 // skip mouse buttons
	lastKeyboardVK         = 0xFE
)

// KeyPoller emits key-down transitions by polling GetAsyncKeyState. Each
// Listen call runs its own polling goroutine.
type KeyPoller struct {
	Interval time.Duration
	// Keys limits polling to these virtual-key codes. Empty polls every
	// keyboard key.
	Keys []byte
}

// Listen polls until ctx is done, then closes the returned channel. Events
// are dropped when the consumer falls behind.
func (p KeyPoller) Listen(ctx context.Context) (<-chan autopause.KeyEvent, error) {
	if err := procAsyncKeyState.Find(); err != nil {
		return nil, err
	}
	interval := p.Interval
	if interval <= 0 {
		interval = defaultKeyPollInterval
	}
	keys := p.Keys
	if len(keys) == 0 {
		for vk := firstKeyboardVK; vk <= lastKeyboardVK; vk++ {
			keys = append(keys, byte(vk))
		}
	}
	out := make(chan autopause.KeyEvent, 16)
	go func() {
		defer close(out)
		down := make(map[byte]bool, len(keys))
		for _, vk := range keys {
			down[vk] = keyDown(vk)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				for _, vk := range keys {
					isDown := keyDown(vk)
					if isDown && !down[vk] {
						select {
						case out <- autopause.KeyEvent{Code: uint16(vk), At: now}:
						default:
						}
					}
					down[vk] = isDown
				}
			}
		}
	}()
	return out, nil
}

func keyDown(vk byte) bool {
	r, _, _ := procAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}
