//go:build !windows

package capture

import "log/slog"

// NewPlatformSamplerFactory returns the preferred SamplerFactory for this
// platform. Outside Windows that is the screenshot library.
func NewPlatformSamplerFactory(logger *slog.Logger) SamplerFactory {
	return NewScreenSamplerFactory(logger)
}
