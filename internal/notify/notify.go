// Package notify emits the engine's two host-shell notifications:
// recording_started and recording_complete. The transport to the embedding
// UI shell is out of scope for this engine; Notifier is the seam a host
// wires its own IPC/tray mechanism into.
package notify

import "github.com/captureforge/engine/internal/logging"

var log = logging.L("notify")

// Notifier emits a named notification with an optional human-readable
// payload.
type Notifier interface {
	Notify(event string, payload string)
}

// LogNotifier is the default Notifier: it just logs the notification. It
// exists so the controller always has a non-nil sink even when no host
// shell is attached (e.g. headless operation, tests).
type LogNotifier struct{}

func (LogNotifier) Notify(event string, payload string) {
	if payload == "" {
		log.Info("notification", "event", event)
		return
	}
	log.Info("notification", "event", event, "payload", payload)
}

// RecordingStarted emits the no-payload recording_started notification.
func RecordingStarted(n Notifier) {
	if n == nil {
		n = LogNotifier{}
	}
	n.Notify("recording_started", "")
}

// RecordingComplete emits recording_complete with a human-readable status.
func RecordingComplete(n Notifier, status string) {
	if n == nil {
		n = LogNotifier{}
	}
	n.Notify("recording_complete", status)
}
