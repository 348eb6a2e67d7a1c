package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipbot_commands_total",
		Help: "Total number of commands received, by command",
	}, []string{"command"})

	DownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_downloads_total",
		Help: "Total number of download requests",
	})

	DownloadsSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_downloads_success_total",
		Help: "Total number of successful downloads",
	})

	DownloadsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_downloads_failed_total",
		Help: "Total number of failed downloads",
	})

	DownloadRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_download_retries_total",
		Help: "Total number of download retry attempts",
	})

	ClipDownloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_clip_downloads_total",
		Help: "Total number of downloads requested with a clip range",
	})

	DownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipbot_download_duration_seconds",
		Help:    "Download duration in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	DownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_download_bytes_total",
		Help: "Total bytes downloaded",
	})

	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_uploads_total",
		Help: "Total number of videos uploaded to chats",
	})

	UploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipbot_upload_failures_total",
		Help: "Total number of failed chat uploads",
	})
)
