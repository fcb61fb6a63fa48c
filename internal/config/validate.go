package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the config for invalid values and returns all errors
// found. Dangerous zero-values that would cause panics downstream (zero
// segment length, zero frame rate) are clamped to safe defaults. Other
// validation errors are logged as warnings but do not prevent startup.
func (c *Config) Validate() []error {
	var errs []error

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("base_url %q is not a valid URL: %w", c.BaseURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme))
		}
	}

	if c.SegmentSeconds < 1 {
		errs = append(errs, fmt.Errorf("segment_seconds %d is below minimum 1, clamping", c.SegmentSeconds))
		c.SegmentSeconds = 15
	} else if c.SegmentSeconds > 3600 {
		errs = append(errs, fmt.Errorf("segment_seconds %d exceeds maximum 3600, clamping", c.SegmentSeconds))
		c.SegmentSeconds = 3600
	}

	if c.FrameRate < 1 {
		errs = append(errs, fmt.Errorf("frame_rate %d is below minimum 1, clamping", c.FrameRate))
		c.FrameRate = 30
	} else if c.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("frame_rate %d exceeds maximum 240, clamping", c.FrameRate))
		c.FrameRate = 240
	}

	if c.EncoderBinary == "" {
		c.EncoderBinary = "ffmpeg"
	}

	if c.UploadWorkers < 1 {
		errs = append(errs, fmt.Errorf("upload_workers %d is below minimum 1, clamping", c.UploadWorkers))
		c.UploadWorkers = 1
	} else if c.UploadWorkers > 64 {
		errs = append(errs, fmt.Errorf("upload_workers %d exceeds maximum 64, clamping", c.UploadWorkers))
		c.UploadWorkers = 64
	}

	if c.UploadQueueSize < 1 {
		errs = append(errs, fmt.Errorf("upload_queue_size %d is below minimum 1, clamping", c.UploadQueueSize))
		c.UploadQueueSize = 1
	} else if c.UploadQueueSize > 10000 {
		errs = append(errs, fmt.Errorf("upload_queue_size %d exceeds maximum 10000, clamping", c.UploadQueueSize))
		c.UploadQueueSize = 10000
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	for _, err := range errs {
		slog.Warn("config validation", "error", err)
	}

	return errs
}
