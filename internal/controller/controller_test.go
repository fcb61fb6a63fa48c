package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/captureforge/engine/internal/inputcapture"
	"github.com/captureforge/engine/internal/model"
	"github.com/captureforge/engine/internal/session"
)

// writeFakeEncoder writes a script standing in for ffmpeg, mirroring
// encoder/supervisor_test.go's fake: it reads stdin and exits on "q".
func writeFakeEncoder(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake encoder script is POSIX shell only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-ffmpeg")
	script := "#!/bin/sh\nwhile c=$(dd bs=1 count=1 2>/dev/null) && [ -n \"$c\" ]; do\n  if [ \"$c\" = \"q\" ]; then\n    exit 0\n  fi\ndone\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake encoder: %v", err)
	}
	return path
}

// noopCapture stands in for the real OS global-input hook in tests; the
// classify() tests in the inputcapture package already exercise the
// filter/transform pipeline without one. It blocks until ctx is canceled,
// matching the real Run's cancellation contract.
func noopCapture(ctx context.Context, sink inputcapture.Sink, scale inputcapture.ScaleFactorSource) {
	<-ctx.Done()
}

func TestStopWithoutStartReturnsNotActive(t *testing.T) {
	binary := writeFakeEncoder(t)
	ctrl := New(Options{
		AppDataDir:    t.TempDir(),
		EncoderBinary: binary,
		BaseURL:       "http://127.0.0.1:0",
	})
	ctrl.captureFn = noopCapture

	if err := ctrl.Stop(context.Background()); !errors.Is(err, session.ErrNotActive) {
		t.Fatalf("Stop() error = %v, want ErrNotActive", err)
	}
}

func TestStartThenStopClearsSlot(t *testing.T) {
	binary := writeFakeEncoder(t)
	appData := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recordings/fetch_save_url":
			w.Write([]byte("https://signed.example/upload"))
		case "/devents/create":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctrl := New(Options{
		AppDataDir:     appData,
		EncoderBinary:  binary,
		FrameRate:      30,
		SegmentSeconds: 15,
		BaseURL:        srv.URL,
		UploadWorkers:  2,
		UploadQueue:    8,
	})
	ctrl.captureFn = noopCapture

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if active, _ := ctrl.Status(); !active {
		t.Fatal("expected session to be active after Start")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := ctrl.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if active, _ := ctrl.Status(); active {
		t.Fatal("expected session to be cleared after Stop")
	}

	ctrl.Shutdown(stopCtx)
}

func TestDoubleStartYieldsAlreadyActiveOnSecondCall(t *testing.T) {
	binary := writeFakeEncoder(t)
	appData := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctrl := New(Options{
		AppDataDir:    appData,
		EncoderBinary: binary,
		BaseURL:       srv.URL,
	})
	ctrl.captureFn = noopCapture

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}

	if err := ctrl.Start(ctx); !errors.Is(err, session.ErrAlreadyActive) {
		t.Fatalf("second Start error = %v, want ErrAlreadyActive", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := ctrl.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestStartReturnsEncoderUnavailableOnSpawnFailure(t *testing.T) {
	appData := t.TempDir()
	ctrl := New(Options{
		AppDataDir:    appData,
		EncoderBinary: filepath.Join(appData, "does-not-exist"),
		BaseURL:       "http://127.0.0.1:0",
	})
	ctrl.captureFn = noopCapture

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := ctrl.Start(ctx)
	if !errors.Is(err, ErrEncoderUnavailable) {
		t.Fatalf("Start error = %v, want ErrEncoderUnavailable", err)
	}

	if active, _ := ctrl.Status(); active {
		t.Fatal("expected slot to be empty after aborted start")
	}
}

func TestEmptySessionPostsEmptyEventBatch(t *testing.T) {
	binary := writeFakeEncoder(t)
	appData := t.TempDir()

	done := make(chan model.DeventBatch, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recordings/fetch_save_url":
			w.Write([]byte("https://signed.example/upload"))
		case "/devents/create":
			var batch model.DeventBatch
			json.NewDecoder(r.Body).Decode(&batch)
			done <- batch
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	ctrl := New(Options{
		AppDataDir:    appData,
		EncoderBinary: binary,
		BaseURL:       srv.URL,
	})
	ctrl.captureFn = noopCapture

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := ctrl.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case batch := <-done:
		if len(batch.Events) != 0 {
			t.Fatalf("expected empty event batch, got %d events", len(batch.Events))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for devents POST")
	}
}
