//go:build !windows

package debug

import "errors"

func residentSetSize() (uint64, error) { return 0, errors.ErrUnsupported }
