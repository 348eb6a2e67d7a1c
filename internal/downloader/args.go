package downloader

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/veranemoloko/clipbot/internal/domain"
)

// Title goes into the file name; .200B caps it so long titles do not blow
// past filesystem limits.
const outputTemplate = "%(title).200B.%(ext)s"

// buildArgs assembles the yt-dlp command line for one request. The format
// chain asks for the best mp4 expected to fit the size ceiling, falling back
// to the best anything under it.
func (d *Downloader) buildArgs(req *domain.DownloadRequest, destDir string) []string {
	maxMB := d.cfg.MaxFileSizeMB()

	args := []string{
		"--format", formatSelector(maxMB),
		"--max-filesize", fmt.Sprintf("%dM", maxMB),
		"--output", filepath.Join(destDir, outputTemplate),
		"--no-playlist",
		"--merge-output-format", "mp4",
		"--no-cache-dir",
		"--newline",
	}

	if req.Clip != nil {
		args = append(args,
			"--download-sections", sectionArg(req.Clip),
			"--force-keyframes-at-cuts",
		)
	}

	if cookies := d.cookieFile(req.URL); cookies != "" {
		args = append(args, "--cookies", cookies)
	}

	if d.cfg.FFmpegPath != "" {
		args = append(args, "--ffmpeg-location", d.cfg.FFmpegPath)
	}

	return append(args, req.URL)
}

func formatSelector(maxMB int64) string {
	return fmt.Sprintf(
		"bestvideo[ext=mp4][filesize<%dM]+bestaudio[ext=m4a]/best[ext=mp4][filesize<%dM]/best[filesize<%dM]",
		maxMB, maxMB, maxMB,
	)
}

// sectionArg renders a clip range in --download-sections syntax: "*10-20"
// for a bounded range, "*10-inf" for an open-ended one.
func sectionArg(c *domain.ClipRange) string {
	start := int64(c.Start.Seconds())
	if c.OpenEnded() {
		return fmt.Sprintf("*%d-inf", start)
	}
	return fmt.Sprintf("*%d-%d", start, int64(c.End.Seconds()))
}

// cookieFile picks the site cookie file for the URL, if one is configured
// and exists on disk.
func (d *Downloader) cookieFile(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	var path string
	switch {
	case isYouTubeHost(host):
		path = d.cfg.YouTubeCookies
	case isInstagramHost(host):
		path = d.cfg.InstagramCookies
	default:
		return ""
	}

	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func isYouTubeHost(host string) bool {
	return host == "youtube.com" || host == "youtu.be" || host == "youtube-nocookie.com" ||
		strings.HasSuffix(host, ".youtube.com")
}

func isInstagramHost(host string) bool {
	return host == "instagram.com" || strings.HasSuffix(host, ".instagram.com")
}
