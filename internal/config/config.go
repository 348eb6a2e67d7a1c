package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration settings.
type Config struct {
	Token       string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	Debug       bool   `envconfig:"CB_DEBUG" default:"false"`
	PollTimeout int    `envconfig:"CB_POLL_TIMEOUT" default:"60"`

	HTTPPort    int           `envconfig:"CB_HTTP_PORT" default:"8080"`
	HTTPTimeout time.Duration `envconfig:"CB_HTTP_TIMEOUT" default:"15s"`

	DownloadDir      string        `envconfig:"DOWNLOAD_PATH" default:"video_downloads"`
	MaxFileSize      int64         `envconfig:"CB_MAX_FILE_SIZE" default:"51380224"`
	DownloadTimeout  time.Duration `envconfig:"CB_DOWNLOAD_TIMEOUT" default:"10m"`
	DownloadAttempts int           `envconfig:"CB_DOWNLOAD_ATTEMPTS" default:"3"`
	RetryBackoff     time.Duration `envconfig:"CB_RETRY_BACKOFF" default:"5s"`
	MaxConcurrent    int64         `envconfig:"CB_MAX_CONCURRENT_DOWNLOADS" default:"3"`

	YtDlpPath  string `envconfig:"CB_YTDLP_PATH" default:"yt-dlp"`
	FFmpegPath string `envconfig:"CB_FFMPEG_PATH" default:""`

	YouTubeCookies   string `envconfig:"YOUTUBE_COOKIES_FILE" default:"cookies/youtube.txt"`
	InstagramCookies string `envconfig:"INSTAGRAM_COOKIES_FILE" default:"cookies/instagram.txt"`

	ShutdownTimeout time.Duration `envconfig:"CB_SHUTDOWN_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"CB_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"CB_LOG_FORMAT" default:"json"`
}

// Validate checks the configuration for invalid or missing values.
// Returns an error describing the first invalid setting found.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("bot token cannot be empty")
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.PollTimeout <= 0 {
		return fmt.Errorf("poll timeout must be positive: %d", c.PollTimeout)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive: %d", c.MaxFileSize)
	}

	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download timeout must be positive: %s", c.DownloadTimeout)
	}

	if c.DownloadAttempts < 1 {
		return fmt.Errorf("download attempts must be at least 1: %d", c.DownloadAttempts)
	}

	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max concurrent downloads must be at least 1: %d", c.MaxConcurrent)
	}

	if c.DownloadDir == "" {
		return fmt.Errorf("download directory cannot be empty")
	}

	if c.YtDlpPath == "" {
		return fmt.Errorf("yt-dlp path cannot be empty")
	}

	return nil
}

// MaxFileSizeMB returns the upload ceiling in whole megabytes, as used in the
// downloader's format selection.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSize / (1024 * 1024)
}
