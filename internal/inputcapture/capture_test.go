package inputcapture

import (
	"testing"
	"time"
)

func TestClassifyMouseMoveUpdatesCacheWithoutRecording(t *testing.T) {
	st := &state{}
	now := time.Now()

	evt, isMove := classify(st, rawEvent{kind: kindMouseMove, x: 100, y: 200}, now, 2.0)
	if !isMove {
		t.Fatal("expected mouse move to be reported as a move")
	}
	if evt != nil {
		t.Fatal("expected no recorded event for a pure pointer move")
	}
	if st.lastX != 200 || st.lastY != 400 {
		t.Fatalf("cached position = (%v, %v), want (200, 400) after scale", st.lastX, st.lastY)
	}
}

func TestClassifyKeyEventBeforeAnyMoveHasZeroPosition(t *testing.T) {
	st := &state{}
	evt, isMove := classify(st, rawEvent{kind: kindKeyDown, keychar: 'a'}, time.Now(), 1.0)
	if isMove {
		t.Fatal("key event should not be classified as a move")
	}
	if evt == nil {
		t.Fatal("expected a recorded keyboard event")
	}
	if evt.MouseX != 0 || evt.MouseY != 0 {
		t.Fatalf("MouseX/Y = (%v, %v), want (0, 0) before any move", evt.MouseX, evt.MouseY)
	}
	if evt.Keyboard == nil || evt.Keyboard.DurationMs != keyPressDurationMs {
		t.Fatalf("expected keyboard action with fixed duration, got %+v", evt.Keyboard)
	}
}

func TestClassifyStampsLastKnownPositionOnButtonPress(t *testing.T) {
	st := &state{}
	classify(st, rawEvent{kind: kindMouseMove, x: 50, y: 60}, time.Now(), 1.0)

	evt, isMove := classify(st, rawEvent{kind: kindMouseDown, button: 1}, time.Now(), 1.0)
	if isMove {
		t.Fatal("mouse button press should not be classified as a move")
	}
	if evt == nil {
		t.Fatal("expected a recorded mouse event")
	}
	if evt.MouseX != 50 || evt.MouseY != 60 {
		t.Fatalf("MouseX/Y = (%v, %v), want (50, 60)", evt.MouseX, evt.MouseY)
	}
	if evt.Mouse == nil || evt.Mouse.String() != "left" {
		t.Fatalf("expected left mouse action, got %+v", evt.Mouse)
	}
}

func TestClassifyDropsKeyUpAndMouseUp(t *testing.T) {
	st := &state{}
	for _, kind := range []uint8{kindKeyUp, kindMouseUp} {
		evt, isMove := classify(st, rawEvent{kind: kind}, time.Now(), 1.0)
		if isMove {
			t.Fatalf("kind %d should not be classified as a move", kind)
		}
		if evt != nil {
			t.Fatalf("kind %d should be dropped, got %+v", kind, evt)
		}
	}
}

func TestClassifyMouseWheelProducesScrollAction(t *testing.T) {
	st := &state{}
	evt, isMove := classify(st, rawEvent{kind: kindMouseWheel, rotation: -3}, time.Now(), 1.0)
	if isMove {
		t.Fatal("wheel event should not be classified as a move")
	}
	if evt == nil || evt.Scroll == nil {
		t.Fatalf("expected scroll action, got %+v", evt)
	}
	if evt.Scroll.Y != -3 {
		t.Fatalf("Scroll.Y = %d, want -3", evt.Scroll.Y)
	}
}

func TestClassifyZeroScaleFactorDefaultsToOne(t *testing.T) {
	st := &state{}
	classify(st, rawEvent{kind: kindMouseMove, x: 10, y: 10}, time.Now(), 0)
	if st.lastX != 10 || st.lastY != 10 {
		t.Fatalf("expected scale factor 0 to default to 1.0, got (%v, %v)", st.lastX, st.lastY)
	}
}

func TestMouseActionForUnknownButtonIsOther(t *testing.T) {
	a := mouseActionFor(9)
	if a.String() != "other" {
		t.Fatalf("String() = %q, want other", a.String())
	}
}
