// Package uploader implements segment upload: for each segment handed off
// by the segment watcher, it requests a signed upload URL, PUTs the segment
// body, and logs the outcome. Errors at any step are logged and discarded —
// segments are independent, losing one does not corrupt the session event
// record.
package uploader

import (
	"bufio"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/captureforge/engine/internal/ingestclient"
	"github.com/captureforge/engine/internal/logging"
	"github.com/captureforge/engine/internal/model"
	"github.com/captureforge/engine/internal/workerpool"
)

var log = logging.L("uploader")

// Dispatcher submits fire-and-forget upload tasks, satisfied by
// *workerpool.Pool. Segment watcher fan-out goes through this rather than
// a bare `go func()` so uploads are bounded and panic-safe.
type Dispatcher interface {
	Submit(task workerpool.Task) bool
}

// Client is the subset of ingestclient.Client the uploader depends on.
type Client interface {
	FetchSaveURL(ctx context.Context, req model.SaveRecordingRequest) (string, error)
	PutSegment(ctx context.Context, signedURL string, body []byte) error
}

var _ Client = (*ingestclient.Client)(nil)

// Uploader is the watcher-facing handle: Upload(fileName) is called once
// per completed segment and dispatches the full fetch/PUT protocol as a
// task on Pool.
type Uploader struct {
	RecordingsDir string
	SegmentsCSV   string
	SessionID     uuid.UUID
	Client        Client
	Pool          Dispatcher
}

// Upload satisfies segments.Uploader: it enqueues the upload protocol for
// fileName on the worker pool and returns immediately.
func (u *Uploader) Upload(fileName string) {
	if ok := u.Pool.Submit(func() {
		u.run(fileName)
	}); !ok {
		log.Warn("upload task rejected, pool full or stopped", "file", fileName)
	}
}

// run executes the full protocol for one segment: request a save url, read
// the file, PUT it to the signed URL, log the outcome. Any failure is
// logged and the segment considered lost.
func (u *Uploader) run(fileName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start, duration := u.readSegmentTiming(fileName)

	req := model.SaveRecordingRequest{
		RecordingID:         uuid.New(),
		SessionID:           u.SessionID,
		StartTimestampNanos: start,
		DurationMs:          duration,
	}

	signedURL, err := u.Client.FetchSaveURL(ctx, req)
	if err != nil {
		log.Warn("failed to fetch save url", logging.KeyError, err, "file", fileName)
		return
	}

	path := filepath.Join(u.RecordingsDir, fileName)
	body, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read segment file", logging.KeyError, err, "file", fileName)
		return
	}

	if err := u.Client.PutSegment(ctx, signedURL, body); err != nil {
		log.Warn("failed to upload segment", logging.KeyError, err, "file", fileName)
		return
	}

	log.Info("segment uploaded", "file", fileName, "bytes", len(body), "recordingId", req.RecordingID)
}

// readSegmentTiming reads the matching row of segments.csv (filename,start,end,
// written by the encoder's -segment_list_type csv) and returns the start
// timestamp in nanoseconds and the segment duration in milliseconds. If the
// row isn't present yet — a race with the encoder's own CSV flush — both
// fields fall back to zero and a debug line is logged.
func (u *Uploader) readSegmentTiming(fileName string) (startNanos int64, durationMs uint64) {
	f, err := os.Open(u.SegmentsCSV)
	if err != nil {
		log.Debug("segment timing unavailable, csv not readable", logging.KeyError, err, "file", fileName)
		return 0, 0
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		if len(record) < 3 || !strings.HasSuffix(strings.TrimSpace(record[0]), fileName) {
			continue
		}

		startSec, errStart := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		endSec, errEnd := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if errStart != nil || errEnd != nil {
			continue
		}

		startNanos = int64(startSec * float64(time.Second))
		durationMs = uint64((endSec - startSec) * 1000)
		return startNanos, durationMs
	}

	log.Debug("segment timing row not found yet", "file", fileName)
	return 0, 0
}
