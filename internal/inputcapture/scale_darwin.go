//go:build darwin

package inputcapture

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit

#import <AppKit/AppKit.h>

static double mainScreenBackingScaleFactor(void) {
	NSScreen *screen = [NSScreen mainScreen];
	if (screen == nil) {
		return 1.0;
	}
	return (double)[screen backingScaleFactor];
}
*/
import "C"

// platformScaleFactorSource reads NSScreen's backingScaleFactor via cgo,
// ported from the NSScreen lookup the remote-desktop capturer's
// getScreenBounds uses to convert points to pixels on Retina displays.
type platformScaleFactorSource struct{}

func (platformScaleFactorSource) ScaleFactor() float64 {
	factor := float64(C.mainScreenBackingScaleFactor())
	if factor <= 0 {
		return 1.0
	}
	return factor
}
