// Package downloader wraps the yt-dlp binary: it builds the command line for
// a download request, runs it under a timeout with bounded retries, and
// locates the produced artifact.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/veranemoloko/clipbot/internal/config"
	"github.com/veranemoloko/clipbot/internal/domain"
	errpkg "github.com/veranemoloko/clipbot/internal/errors"
	"github.com/veranemoloko/clipbot/internal/metrics"
	"github.com/veranemoloko/clipbot/internal/storage"
)

// Outputs smaller than this are truncated junk, not videos.
const minArtifactSize = 1024

// User-facing descriptions for download failures. The bot relays these
// verbatim, so they are phrased for chat.
const (
	msgUnsupported = "❌ Sorry, this website or video URL is not supported."
	msgUnavailable = "❌ This video is unavailable or private."
	msgNoExtract   = "❌ Could not extract video information. The link might be broken or unsupported."
	msgNoFormat    = "⚠️ No version of this video fits under the Telegram size limit. Try a shorter segment."
	msgTimeout     = "⌛ The download took too long and was cancelled. Try a shorter segment."
	msgNoFile      = "❌ Download failed or no file was produced. Please check the URL or try again."
	msgCorrupted   = "❌ The downloaded file looks corrupted. Please try again."
	msgNoBinary    = "❌ The download engine is unavailable right now. Please try again later."
	msgGeneric     = "❌ Download failed or no file was produced. Please check the URL or try again."
)

// Downloader fetches videos with yt-dlp, optionally clipped to a time range,
// under the configured size ceiling.
type Downloader struct {
	cfg    *config.Config
	logger *slog.Logger
	runner runner
}

// New creates a Downloader. Missing cookie files are reported once here so
// operators notice before requests start failing.
func New(cfg *config.Config, logger *slog.Logger) *Downloader {
	warnMissingCookies(cfg, logger)
	return &Downloader{
		cfg:    cfg,
		logger: logger,
		runner: execRunner{},
	}
}

func warnMissingCookies(cfg *config.Config, logger *slog.Logger) {
	for site, path := range map[string]string{
		"youtube":   cfg.YouTubeCookies,
		"instagram": cfg.InstagramCookies,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			logger.Warn("cookie file not found, private videos may fail",
				"site", site, "path", path)
		} else {
			logger.Info("using cookie file", "site", site, "path", path)
		}
	}
}

// Download fetches req.URL into destDir and returns the located artifact.
// Each attempt runs under the configured wall-clock timeout; transient
// failures are retried with linear backoff up to the configured attempt
// count. On failure the returned result carries a user-facing Error text and
// the error wraps one of the package sentinels.
func (d *Downloader) Download(ctx context.Context, req *domain.DownloadRequest, destDir string, progress ProgressFunc) (*domain.DownloadResult, error) {
	result := &domain.DownloadResult{URL: req.URL}

	metrics.DownloadsTotal.Inc()
	if req.Clip != nil {
		metrics.ClipDownloads.Inc()
	}

	args := d.buildArgs(req, destDir)
	d.logger.Info("starting download",
		"url", req.URL, "clip", req.Clip != nil, "max_attempts", d.cfg.DownloadAttempts)

	started := time.Now()
	var last failure

	for attempt := 1; attempt <= d.cfg.DownloadAttempts; attempt++ {
		if attempt > 1 {
			metrics.DownloadRetries.Inc()
			if err := d.waitForRetry(ctx, attempt); err != nil {
				break
			}
			if err := storage.ClearDir(destDir); err != nil {
				d.logger.Warn("failed to clear partial files before retry",
					"dir", destDir, "error", err)
			}
			d.logger.Info("retrying download", "url", req.URL, "attempt", attempt)
		}

		f := d.attempt(ctx, args, destDir, result, progress)
		if f == nil {
			metrics.DownloadsSuccess.Inc()
			metrics.DownloadDuration.Observe(time.Since(started).Seconds())
			metrics.DownloadBytes.Add(float64(result.Size))
			d.logger.Info("download completed",
				"url", req.URL,
				"file_path", result.FilePath,
				"size_bytes", result.Size,
				"duration", time.Since(started).String())
			return result, nil
		}

		last = *f
		d.logger.Warn("download attempt failed",
			"url", req.URL, "attempt", attempt, "retryable", f.retryable, "error", f.err)
		if !f.retryable {
			break
		}
	}

	metrics.DownloadsFailed.Inc()
	result.Error = last.message
	d.logger.Error("download failed", "url", req.URL, "error", last.err)
	return result, last.err
}

// attempt performs a single yt-dlp run plus artifact checks. A nil return
// means success and result is populated.
func (d *Downloader) attempt(ctx context.Context, args []string, destDir string, result *domain.DownloadResult, progress ProgressFunc) *failure {
	runCtx, cancel := context.WithTimeout(ctx, d.cfg.DownloadTimeout)
	defer cancel()

	output, runErr := d.runner.Run(runCtx, progress, d.cfg.YtDlpPath, args...)
	if runErr != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return &failure{
				err:     fmt.Errorf("%w: timed out after %s", errpkg.ErrDownloadFailed, d.cfg.DownloadTimeout),
				message: msgTimeout,
			}
		}
		if errors.Is(runCtx.Err(), context.Canceled) {
			return &failure{
				err:     fmt.Errorf("%w: cancelled", errpkg.ErrDownloadFailed),
				message: msgGeneric,
			}
		}
		f := d.classify(output, runErr)
		return &f
	}

	// yt-dlp exits 0 when --max-filesize aborts the download, so the marker
	// has to be checked even on a clean exit.
	if strings.Contains(string(output), "larger than max-filesize") {
		return &failure{
			err:     fmt.Errorf("%w: exceeds max-filesize", errpkg.ErrFileTooLarge),
			message: d.tooLargeMessage(),
		}
	}

	path, size, err := storage.FindArtifact(destDir)
	if err != nil {
		return &failure{
			err:     fmt.Errorf("%w: no file was produced", errpkg.ErrDownloadFailed),
			message: msgNoFile,
		}
	}
	if size > d.cfg.MaxFileSize {
		if err := os.Remove(path); err != nil {
			d.logger.Warn("failed to remove oversized file", "path", path, "error", err)
		}
		return &failure{
			err:     fmt.Errorf("%w: %d bytes", errpkg.ErrFileTooLarge, size),
			message: d.oversizeMessage(size),
		}
	}
	if size < minArtifactSize {
		if err := os.Remove(path); err != nil {
			d.logger.Warn("failed to remove truncated file", "path", path, "error", err)
		}
		return &failure{
			err:       fmt.Errorf("%w: output truncated (%d bytes)", errpkg.ErrDownloadFailed, size),
			message:   msgCorrupted,
			retryable: true,
		}
	}

	result.FilePath = path
	result.Size = size
	result.Success = true
	return nil
}

// waitForRetry sleeps the backoff for the given attempt, scaled linearly,
// unless the context is cancelled first.
func (d *Downloader) waitForRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(d.cfg.RetryBackoff * time.Duration(attempt-1))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (d *Downloader) tooLargeMessage() string {
	return fmt.Sprintf(
		"⚠️ The video is too large for me to send via Telegram (max ~%dMB). Try downloading a shorter segment.",
		d.cfg.MaxFileSizeMB()+1)
}

func (d *Downloader) oversizeMessage(size int64) string {
	return fmt.Sprintf(
		"⚠️ The downloaded video is too large (%.2f MB) for me to send via Telegram (max ~%dMB). I tried to get a smaller version.",
		float64(size)/(1024*1024), d.cfg.MaxFileSizeMB()+1)
}

// failure pairs the wrapped sentinel error with the text shown to the user
// and whether another attempt is worth making.
type failure struct {
	err       error
	message   string
	retryable bool
}

// classify maps yt-dlp output and exit state to a failure. Known-permanent
// conditions (bad URL, gone video, nothing under the ceiling) are not
// retried; anything unrecognized is assumed transient.
func (d *Downloader) classify(output []byte, runErr error) failure {
	out := string(output)

	switch {
	case strings.Contains(out, "Unsupported URL"):
		return failure{
			err:     fmt.Errorf("%w: unsupported URL", errpkg.ErrDownloadFailed),
			message: msgUnsupported,
		}
	case strings.Contains(out, "Video unavailable"), strings.Contains(out, "Private video"):
		return failure{
			err:     fmt.Errorf("%w: video unavailable", errpkg.ErrDownloadFailed),
			message: msgUnavailable,
		}
	case strings.Contains(out, "Unable to extract"):
		return failure{
			err:     fmt.Errorf("%w: unable to extract video info", errpkg.ErrDownloadFailed),
			message: msgNoExtract,
		}
	case strings.Contains(out, "larger than max-filesize"):
		return failure{
			err:     fmt.Errorf("%w: exceeds max-filesize", errpkg.ErrFileTooLarge),
			message: d.tooLargeMessage(),
		}
	case strings.Contains(out, "Requested format is not available"):
		return failure{
			err:     fmt.Errorf("%w: no format under the size ceiling", errpkg.ErrFileTooLarge),
			message: msgNoFormat,
		}
	}

	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		return failure{
			err:     fmt.Errorf("%w: %v", errpkg.ErrDownloadFailed, runErr),
			message: msgNoBinary,
		}
	}

	return failure{
		err:       fmt.Errorf("%w: %v", errpkg.ErrDownloadFailed, runErr),
		message:   msgGeneric,
		retryable: true,
	}
}
