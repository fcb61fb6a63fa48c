// Package encoder supervises the external screen-recording process: it
// builds the platform-specific capture command, spawns and monitors it,
// forwards its stdio to the structured logger, and drives the graceful
// shutdown protocol.
package encoder

import (
	"path/filepath"
	"strconv"
)

// defaultBinaryName is the executable looked up on PATH when the config
// doesn't override it.
const defaultBinaryName = "ffmpeg"

// Paths are the filesystem locations the encoder command needs, mirroring
// session.Paths so this package doesn't import internal/session directly.
type Paths struct {
	RecordingsDir string
	SegmentsCSV   string
	TimestampsTxt string
}

// segmentTemplate returns the printf-style output template for video chunks.
func segmentTemplate(recordingsDir string) string {
	return filepath.Join(recordingsDir, "chunk_%04d.mkv")
}

// BuildArgs constructs the full ffmpeg argument vector for a session: the
// platform-specific input stanza (see command_darwin.go/command_windows.go/
// command_linux.go/command_other.go) followed by the common encode,
// segment-muxing, and companion-timestamp flags.
func BuildArgs(frameRate, segmentSeconds int, paths Paths) []string {
	args := inputArgs()

	args = append(args,
		"-framerate", strconv.Itoa(frameRate),
		"-vcodec", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-filter_complex", "settb=1/1000,setpts='RTCTIME/1000',mpdecimate,split=2[out][ts]",
		"-map", "[out]",
		"-vcodec", "libx264",
		"-pix_fmt", "yuv420p",
		"-threads", "0",
		"-force_key_frames", "expr:gte(t,n_forced*60)",
		"-f", "segment",
		"-segment_time", strconv.Itoa(segmentSeconds),
		"-reset_timestamps", "1",
		"-segment_format", "mkv",
		"-segment_list_type", "csv",
		"-segment_list", paths.SegmentsCSV,
		segmentTemplate(paths.RecordingsDir),
		"-map", "[ts]",
		"-f", "mkvtimestamp_v2",
		paths.TimestampsTxt,
		"-vsync", "0",
	)

	return args
}

