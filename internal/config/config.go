package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds the engine's runtime configuration: where the remote
// ingest/object-store endpoints live, where captured output is written,
// and the encoder/upload tuning knobs.
type Config struct {
	// BaseURL is the remote service root; POST /devents/create and
	// POST /recordings/fetch_save_url are resolved relative to it.
	BaseURL   string `mapstructure:"base_url"`
	AuthToken string `mapstructure:"auth_token"`

	// AppDataDir is the root directory under which per-session output
	// directories are created. Empty means use the OS default.
	AppDataDir string `mapstructure:"app_data_dir"`

	// EncoderBinary overrides the executable name/path looked up on PATH.
	EncoderBinary  string `mapstructure:"encoder_binary"`
	SegmentSeconds int    `mapstructure:"segment_seconds"`
	FrameRate      int    `mapstructure:"frame_rate"`

	// UploadWorkers/UploadQueueSize size the fire-and-forget task pool
	// shared by the segment uploader and the final event-batch POST.
	UploadWorkers   int `mapstructure:"upload_workers"`
	UploadQueueSize int `mapstructure:"upload_queue_size"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the engine's baseline configuration.
func Default() *Config {
	return &Config{
		EncoderBinary:   "ffmpeg",
		SegmentSeconds:  15,
		FrameRate:       30,
		UploadWorkers:   4,
		UploadQueueSize: 64,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads configuration from cfgFile (or the default search path) and
// layers environment variables (CAPTUREENGINE_*) on top.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("captureengine")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("CAPTUREENGINE")
	// Unmarshal only sees keys viper knows about, so bind each one
	// explicitly for env-only settings to be picked up.
	for _, key := range []string{"base_url", "auth_token", "app_data_dir", "encoder_binary", "segment_seconds",
		"frame_rate", "upload_workers", "upload_queue_size", "log_level", "log_format"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Validate()

	return cfg, nil
}

// Save writes cfg to the default config path, creating the directory if
// needed and restricting permissions (the file may carry an auth token).
func Save(cfg *Config) error {
	return SaveTo(cfg, "")
}

func SaveTo(cfg *Config, cfgFile string) error {
	v := viper.New()
	v.Set("base_url", cfg.BaseURL)
	v.Set("auth_token", cfg.AuthToken)
	v.Set("app_data_dir", cfg.AppDataDir)
	v.Set("encoder_binary", cfg.EncoderBinary)
	v.Set("segment_seconds", cfg.SegmentSeconds)
	v.Set("frame_rate", cfg.FrameRate)
	v.Set("upload_workers", cfg.UploadWorkers)
	v.Set("upload_queue_size", cfg.UploadQueueSize)
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_format", cfg.LogFormat)

	var cfgPath string
	if cfgFile != "" {
		cfgPath = cfgFile
		dir := filepath.Dir(cfgPath)
		if dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return err
			}
		}
	} else {
		cfgPath = filepath.Join(configDir(), "captureengine.yaml")
		if err := os.MkdirAll(configDir(), 0700); err != nil {
			return err
		}
	}

	if err := v.WriteConfigAs(cfgPath); err != nil {
		return err
	}

	return os.Chmod(cfgPath, 0600)
}

// DataDir returns the platform-specific app-data root used when
// cfg.AppDataDir is unset.
func (c *Config) DataDir() string {
	if c.AppDataDir != "" {
		return c.AppDataDir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CaptureEngine")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CaptureEngine")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "captureengine")
	}
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CaptureEngine")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CaptureEngine")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "captureengine")
	}
}
