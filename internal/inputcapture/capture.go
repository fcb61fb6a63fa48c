// Package inputcapture subscribes to the OS global input stream and turns
// button/key/scroll events into model.InputEvent records, stamped with the
// last known (scaled) pointer position. Pure pointer moves never themselves
// produce a record — they only update the cached position.
package inputcapture

import (
	"context"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/captureforge/engine/internal/logging"
	"github.com/captureforge/engine/internal/model"
)

var log = logging.L("inputcapture")

// keyPressDurationMs is the fixed synthetic press duration recorded for
// every keyboard action (no key-up/key-down pairing; see DESIGN.md).
const keyPressDurationMs = 100

// rawEvent is the subset of a hook.Event this package's filter/transform
// pipeline depends on, isolated so the pipeline is testable without the
// OS hook adapter.
type rawEvent struct {
	kind     uint8
	button   uint8
	keychar  rune
	keycode  uint16
	rotation int16
	x        int16
	y        int16
}

// Kind values mirrored from github.com/robotn/gohook, duplicated here so
// the pure transform function (below) doesn't need to import the hook
// package at all.
const (
	kindKeyDown    = 4
	kindKeyUp      = 5
	kindMouseDown  = 7
	kindMouseUp    = 8
	kindMouseMove  = 9
	kindMouseDrag  = 10
	kindMouseWheel = 11
)

// Sink receives classified input events appended to the active session.
type Sink interface {
	// Append hands e to the session's event buffer. Implementations must
	// be safe to call from the capture goroutine.
	Append(e model.InputEvent) error
}

// ScaleFactorSource reports the host display's scale factor, defaulting to
// 1.0 on error (platform implementations live in scale_*.go).
type ScaleFactorSource interface {
	ScaleFactor() float64
}

// state holds the pure transform's mutable cursor-position cache. It is not
// safe for concurrent use; the capture goroutine owns it exclusively.
type state struct {
	lastX float64
	lastY float64
}

// Run subscribes to the OS global input hook and classifies events until
// ctx is canceled. Cancellation is best-effort: on platforms where the
// blocking listener cannot be externally interrupted, Run's goroutine may
// outlive ctx's cancellation (an accepted limitation of the underlying
// hook library).
func Run(ctx context.Context, sink Sink, scale ScaleFactorSource) {
	events := hook.Start()
	defer hook.End()

	st := &state{}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if ctx.Err() != nil {
				continue
			}

			raw := rawEvent{
				kind:     ev.Kind,
				button:   ev.Button,
				keychar:  ev.Keychar,
				keycode:  ev.Keycode,
				rotation: ev.Rotation,
				x:        ev.X,
				y:        ev.Y,
			}

			now := time.Now()
			sf := 1.0
			if scale != nil {
				sf = scale.ScaleFactor()
			}

			out, isMove := classify(st, raw, now, sf)
			if isMove {
				continue
			}
			if out == nil {
				continue
			}

			if err := sink.Append(*out); err != nil {
				log.Debug("dropping event, no active session", logging.KeyError, err)
			}
		}
	}
}

// classify is the pure filter/transform pipeline: it never performs I/O and
// is fully exercised by capture_test.go without any OS hook dependency. It
// returns (nil, true) for pointer moves (the cached position is updated,
// nothing is recorded), (event, false) for a classified action, or
// (nil, false) when the raw event is dropped (key-up, mouse-up, etc).
func classify(st *state, raw rawEvent, now time.Time, scaleFactor float64) (*model.InputEvent, bool) {
	if scaleFactor <= 0 {
		scaleFactor = 1.0
	}

	if raw.kind == kindMouseMove || raw.kind == kindMouseDrag {
		st.lastX = float64(raw.x) * scaleFactor
		st.lastY = float64(raw.y) * scaleFactor
		return nil, true
	}

	evt := model.InputEvent{
		Timestamp: now,
		MouseX:    st.lastX,
		MouseY:    st.lastY,
	}

	switch raw.kind {
	case kindMouseDown:
		action := mouseActionFor(raw.button)
		evt.Mouse = &action
		return &evt, false

	case kindKeyDown:
		key := keyFor(raw.keychar, raw.keycode)
		evt.Keyboard = &model.KeyboardAction{Key: key, DurationMs: keyPressDurationMs}
		return &evt, false

	case kindMouseWheel:
		// X stays 0: the hook event carries a single Rotation axis for
		// wheel events, no separate horizontal delta to read (see
		// DESIGN.md).
		scroll := model.ScrollAction{X: 0, Y: int32(raw.rotation)}
		evt.Scroll = &scroll
		return &evt, false

	default:
		// key-up, mouse-up, and anything unrecognized is dropped.
		return nil, false
	}
}

func mouseActionFor(button uint8) model.MouseAction {
	switch button {
	case 1:
		return model.MouseLeft
	case 2:
		return model.MouseRight
	case 3:
		return model.MouseMiddle
	default:
		return model.MouseOther(button)
	}
}
