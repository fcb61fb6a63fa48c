//go:build windows

package inputcapture

// platformScaleFactorSource is structured to be filled in with a real
// GetDpiForMonitor call without changing the ScaleFactorSource interface.
// Unlike the macOS backingScaleFactor lookup (see scale_darwin.go), no
// Windows DPI query appears anywhere in the retrieved pack, so this returns
// the safe default until that lookup is implemented.
type platformScaleFactorSource struct{}

func (platformScaleFactorSource) ScaleFactor() float64 {
	return 1.0
}
