//go:build darwin

package encoder

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/captureforge/engine/internal/logging"
)

var deviceLog = logging.L("encoder.device")

// discoverCaptureDevice scans ffmpeg's own avfoundation device listing for
// "Capture screen 0" and parses the bracketed device index. It defaults to
// device 1 if the listing can't be parsed.
func discoverCaptureDevice() int {
	return discoverCaptureDeviceFrom(binaryName())
}

func discoverCaptureDeviceFrom(binary string) int {
	const fallback = 1

	cmd := exec.CommandContext(context.Background(), binary,
		"-f", "avfoundation", "-list_devices", "true", "-i", "")
	stderr, err := cmd.StderrPipe()
	if err != nil {
		deviceLog.Warn("could not open device listing pipe", logging.KeyError, err)
		return fallback
	}

	if err := cmd.Start(); err != nil {
		deviceLog.Warn("could not list avfoundation devices", logging.KeyError, err)
		return fallback
	}
	defer cmd.Wait()

	device := fallback
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if idx, ok := parseCaptureScreenLine(scanner.Text()); ok {
			device = idx
		}
	}
	return device
}

// parseCaptureScreenLine extracts the device index from an avfoundation
// listing line containing "Capture screen 0", e.g.
// "[AVFoundation indev @ 0x...] [2] Capture screen 0".
func parseCaptureScreenLine(line string) (int, bool) {
	if !strings.Contains(line, "Capture screen 0") {
		return 0, false
	}
	end := strings.Index(line, "] Capture screen 0")
	if end < 0 {
		return 0, false
	}
	start := strings.LastIndex(line[:end], "[")
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[start+1 : end]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func binaryName() string {
	return defaultBinaryName
}
