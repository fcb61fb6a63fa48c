package inputcapture

// DefaultScaleFactorSource is the platform-appropriate ScaleFactorSource
// implementation (see scale_darwin.go/scale_windows.go/scale_other.go).
func DefaultScaleFactorSource() ScaleFactorSource {
	return platformScaleFactorSource{}
}
