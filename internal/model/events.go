// Package model defines the wire types shared between the capture engine
// and the remote ingest service: input events, the closed key/mouse/scroll
// vocabularies, and the upload request shapes.
package model

import (
	"time"

	"github.com/google/uuid"
)

// MouseAction identifies which mouse button produced an event. Other
// carries the raw platform button code for buttons outside left/right/middle.
type MouseAction struct {
	name string
	code uint8
}

var (
	MouseLeft   = MouseAction{name: "left"}
	MouseRight  = MouseAction{name: "right"}
	MouseMiddle = MouseAction{name: "middle"}
)

// MouseOther builds the escape-hatch variant for an unrecognized button code.
func MouseOther(code uint8) MouseAction {
	return MouseAction{name: "other", code: code}
}

func (m MouseAction) String() string { return m.name }
func (m MouseAction) Code() uint8     { return m.code }

// MarshalJSON renders the action as its lowercase display string (named
// actions, "other" otherwise).
func (m MouseAction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.name + `"`), nil
}

func (m *MouseAction) UnmarshalJSON(data []byte) error {
	s := string(data)
	s = s[1 : len(s)-1] // strip quotes
	switch s {
	case "left":
		*m = MouseLeft
	case "right":
		*m = MouseRight
	case "middle":
		*m = MouseMiddle
	default:
		*m = MouseOther(0)
	}
	return nil
}

// KeyboardAction reports a single key press with how long it was held.
type KeyboardAction struct {
	Key        KeyboardActionKey `json:"key"`
	DurationMs int32             `json:"duration"`
}

// ScrollAction reports a wheel/trackpad scroll delta.
type ScrollAction struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// InputEvent is the in-memory record the capture hook appends for every
// mouse click, key press, or scroll observed during a session; pointer
// moves are not recorded, they only update the position stamped on the
// next record. Exactly one of Mouse/Keyboard/Scroll is set per record.
type InputEvent struct {
	Timestamp time.Time
	MouseX    float64
	MouseY    float64
	Mouse     *MouseAction
	Keyboard  *KeyboardAction
	Scroll    *ScrollAction
}

// DeventRequest is a single input event on the wire, flattened to match the
// ingest endpoint's expected JSON shape: exactly one of MouseAction,
// KeyboardAction, ScrollAction is non-nil.
type DeventRequest struct {
	SessionID          uuid.UUID       `json:"session_id"`
	MouseAction        *MouseAction    `json:"mouse_action,omitempty"`
	KeyboardAction     *KeyboardAction `json:"keyboard_action,omitempty"`
	ScrollAction       *ScrollAction   `json:"scroll_action,omitempty"`
	MouseX             int32           `json:"mouse_x"`
	MouseY             int32           `json:"mouse_y"`
	EventTimestampNanos int64          `json:"event_timestamp_nanos"`
}

// DeventBatch wraps a set of events for the /devents/create endpoint.
type DeventBatch struct {
	Events []DeventRequest `json:"events"`
}

// ToDevent converts an in-memory InputEvent into its wire representation.
func ToDevent(sessionID uuid.UUID, e InputEvent) DeventRequest {
	return DeventRequest{
		SessionID:           sessionID,
		MouseAction:         e.Mouse,
		KeyboardAction:      e.Keyboard,
		ScrollAction:        e.Scroll,
		MouseX:              int32(e.MouseX),
		MouseY:              int32(e.MouseY),
		EventTimestampNanos: e.Timestamp.UnixNano(),
	}
}

// SaveRecordingRequest is posted once per uploaded segment to record its
// place in the session timeline. The fetch_save_url response itself is a
// plain-text signed URL, not JSON, so there is no corresponding response
// type here — see ingestclient.Client.FetchSaveURL.
type SaveRecordingRequest struct {
	RecordingID        uuid.UUID `json:"recording_id"`
	SessionID          uuid.UUID `json:"session_id"`
	StartTimestampNanos int64    `json:"start_timestamp_nanos"`
	DurationMs         uint64    `json:"duration_ms"`
}
