//go:build darwin

package encoder

import "fmt"

func inputArgs() []string {
	device := discoverCaptureDevice()
	return []string{
		"-f", "avfoundation",
		"-capture_cursor", "1",
		"-i", fmt.Sprintf("%d:none", device),
	}
}
